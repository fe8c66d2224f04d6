// File: internal/handlers/case_handler.go
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/iyunix/go-counsel/internal/middleware"
	"github.com/iyunix/go-counsel/internal/services"
	"github.com/iyunix/go-counsel/internal/services/portal"
	"github.com/iyunix/go-counsel/internal/session"
)

type CaseHandler struct {
	caseService *services.CaseService
	sessions    *session.Manager
}

func NewCaseHandler(cs *services.CaseService, sm *session.Manager) *CaseHandler {
	return &CaseHandler{caseService: cs, sessions: sm}
}

// CreateCase handles the intake form: open a new case or resume the existing
// one for the submitted email, then identify the browser as that client.
// An empty email bounces back to the landing page with no message, matching
// the original portal's behavior.
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	title := r.PostFormValue("title")

	c, _, err := h.caseService.OpenOrResume(r.Context(), email, title)
	if err != nil {
		if portal.TypeOf(err) == portal.ErrTypeValidation {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		zap.S().Errorf("[CaseHandler] intake failed: %v", err)
		http.Error(w, "The case store did not respond. Please try again shortly.", http.StatusBadGateway)
		return
	}

	// Identify the browser as this client. The admin flag, if present,
	// survives the re-issue.
	s := middleware.SessionFrom(r)
	s.UserEmail = c.UserEmail
	if err := h.sessions.Issue(w, s); err != nil {
		zap.S().Errorf("[CaseHandler] could not issue session: %v", err)
		http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
