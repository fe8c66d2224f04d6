// File: internal/handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/iyunix/go-counsel/internal/middleware"
	"github.com/iyunix/go-counsel/internal/services/admin_services"
	"github.com/iyunix/go-counsel/internal/session"
)

type AdminHandler struct {
	adminService *admin_services.AdminService
	gate         *session.AdminGate
	sessions     *session.Manager
	pages        *PageHandler
}

func NewAdminHandler(as *admin_services.AdminService, gate *session.AdminGate, sm *session.Manager, pages *PageHandler) *AdminHandler {
	return &AdminHandler{
		adminService: as,
		gate:         gate,
		sessions:     sm,
		pages:        pages,
	}
}

// ShowAdminPortal serves GET /lawyer-admin: the full case list for an
// authenticated admin, the login form for everyone else.
func (h *AdminHandler) ShowAdminPortal(w http.ResponseWriter, r *http.Request) {
	s := middleware.SessionFrom(r)
	if !s.IsAdmin {
		renderTemplate(w, "admin_login.html", nil)
		return
	}

	cases, err := h.adminService.AllCases(r.Context())
	if err != nil {
		h.pages.showStoreErrorPage(w, err)
		return
	}

	renderTemplate(w, "admin_portal.html", map[string]interface{}{
		"Cases": cases,
	})
}

// Login handles POST /lawyer-admin. A wrong password is answered with the
// literal plain-text 401 the original portal used.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Unauthorized: Incorrect Password", http.StatusUnauthorized)
		return
	}

	attempt := r.PostFormValue("password")
	if !h.gate.Authenticate(attempt) {
		zap.S().Warnf("[AdminHandler] failed admin login from %s", r.RemoteAddr)
		http.Error(w, "Unauthorized: Incorrect Password", http.StatusUnauthorized)
		return
	}

	s := middleware.SessionFrom(r)
	s.IsAdmin = true
	if err := h.sessions.Issue(w, s); err != nil {
		zap.S().Errorf("[AdminHandler] could not issue session: %v", err)
		http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/lawyer-admin", http.StatusSeeOther)
}

// Logout clears the admin flag only: the client identity, if any, stays.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := middleware.SessionFrom(r)
	s.IsAdmin = false
	if err := h.sessions.Issue(w, s); err != nil {
		zap.S().Errorf("[AdminHandler] could not issue session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type adminReplyRequest struct {
	CaseID  string `json:"case_id"`
	Content string `json:"content"`
}

// Reply appends a message to a case with the sender forced to lawyer.
func (h *AdminHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req adminReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.adminService.Reply(r.Context(), req.CaseID, req.Content); err != nil {
		writeError(w, "Could not send reply", statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

type updateStatusRequest struct {
	CaseID string `json:"case_id"`
	Status string `json:"status"`
}

// UpdateStatus overwrites a case status with the admin-supplied text.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.adminService.UpdateStatus(r.Context(), req.CaseID, req.Status); err != nil {
		writeError(w, "Could not update status", statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
