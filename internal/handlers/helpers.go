// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iyunix/go-counsel/internal/services/portal"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps a service error to an HTTP status. Store failures surface
// as 502: the portal is a thin layer and a broken store is an upstream fault.
func statusFor(err error) int {
	switch portal.TypeOf(err) {
	case portal.ErrTypeValidation:
		return http.StatusBadRequest
	case portal.ErrTypeNotFound:
		return http.StatusNotFound
	case portal.ErrTypeUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}
