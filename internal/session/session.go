// File: internal/session/session.go
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName carries the signed session token.
const CookieName = "portal_session"

// Session is the per-browser state: which client email the browser belongs
// to, and whether the admin password has been presented. A zero Session is
// anonymous. The user email is set on intake and never cleared; admin logout
// clears only IsAdmin.
type Session struct {
	UserEmail string
	IsAdmin   bool
}

// Manager signs sessions into a JWT cookie and reads them back. The session
// lives outside process memory: the cookie is the only copy.
type Manager struct {
	secretKey []byte
	ttl       time.Duration
}

func NewManager(secretKey string) (*Manager, error) {
	if secretKey == "" {
		return nil, errors.New("session secret key cannot be empty")
	}
	return &Manager{
		secretKey: []byte(secretKey),
		ttl:       time.Hour * 24 * 7,
	}, nil
}

// Issue signs the session and sets it as an HttpOnly cookie. Called after
// every session mutation; the new cookie replaces the previous one.
func (m *Manager) Issue(w http.ResponseWriter, s Session) error {
	claims := jwt.MapClaims{
		"user":     s.UserEmail,
		"is_admin": s.IsAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Decode reads the session cookie. A missing, expired or tampered cookie
// yields the anonymous session, never an error: every request carries some
// session state.
func (m *Manager) Decode(r *http.Request) Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}
	}
	return m.Parse(cookie.Value)
}

// Parse validates a raw token string and extracts the session claims.
func (m *Manager) Parse(tokenString string) Session {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil || !token.Valid {
		return Session{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}
	}

	var s Session
	if user, ok := claims["user"].(string); ok {
		s.UserEmail = user
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		s.IsAdmin = isAdmin
	}
	return s
}
