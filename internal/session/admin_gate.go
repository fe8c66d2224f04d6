// File: internal/session/admin_gate.go
package session

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// AdminGate checks attempts against the firm's shared admin secret. The
// configured plaintext is hashed once at startup so the comparison never
// touches the raw secret again; a match still requires byte-exact equality
// with the configured value (case-sensitive, no trimming).
type AdminGate struct {
	passwordHash []byte
}

func NewAdminGate(adminPassword string) (*AdminGate, error) {
	if adminPassword == "" {
		return nil, errors.New("admin password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AdminGate{passwordHash: hash}, nil
}

// Authenticate reports whether the attempt equals the configured secret.
func (g *AdminGate) Authenticate(attempt string) bool {
	return bcrypt.CompareHashAndPassword(g.passwordHash, []byte(attempt)) == nil
}
