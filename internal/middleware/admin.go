// File: internal/middleware/admin.go
package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// RequireAdmin guards the lawyer-only JSON routes. It MUST be used after
// WithSession. Requests without the admin flag get the JSON 403 body the
// portal's frontend expects.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFrom(r)
		if !s.IsAdmin {
			zap.S().Warnf("[AdminMiddleware] FORBIDDEN: non-admin request to %s", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
