// File: internal/middleware/logger.go
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggingMiddleware logs incoming HTTP request & response details.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		zap.S().Infow("request handled",
			"method", r.Method,
			"path", r.RequestURI,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}
