// File: internal/middleware/session.go
package middleware

import (
	"context"
	"net/http"

	"github.com/iyunix/go-counsel/internal/session"
)

const SessionKey = "portalSession"

// WithSession decodes the signed session cookie into the request context.
// Anonymous requests get a zero session, so handlers can always read one.
func WithSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), SessionKey, manager.Decode(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom extracts the session placed in the context by WithSession.
func SessionFrom(r *http.Request) session.Session {
	s, _ := r.Context().Value(SessionKey).(session.Session)
	return s
}
