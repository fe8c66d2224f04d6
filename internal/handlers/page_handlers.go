// File: internal/handlers/page_handlers.go
package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/iyunix/go-counsel/internal/middleware"
	"github.com/iyunix/go-counsel/internal/services"
)

// Template cache to avoid parsing templates on every request
var (
	templateDir       = "web/templates"
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once
)

// loadTemplateCache creates separate template sets for each page
func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	templates := []string{"index.html", "dashboard.html", "case_room.html", "admin_portal.html", "admin_login.html", "error.html"}

	for _, tmpl := range templates {
		ts := template.New(tmpl)

		ts, err := ts.ParseFiles(templateDir + "/layout.html")
		if err != nil {
			zap.S().Fatalf("Error parsing layout for %s: %v", tmpl, err)
		}

		ts, err = ts.ParseFiles(templateDir + "/" + tmpl)
		if err != nil {
			zap.S().Fatalf("Error parsing %s: %v", tmpl, err)
		}

		templateCache[tmpl] = ts
	}
}

// renderTemplate uses individual template cache and injects security headers
func renderTemplate(w http.ResponseWriter, tmpl string, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	if data == nil {
		data = make(map[string]interface{})
	}

	t, ok := templateCache[tmpl]
	if !ok {
		zap.S().Errorf("Template %s not found in cache", tmpl)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	err := t.ExecuteTemplate(w, "layout.html", data)
	if err != nil {
		zap.S().Errorf("Template render error for %s: %v", tmpl, err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// renderMarkdown converts message content to HTML for the case room.
func renderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}

// messageView is the render shape of one chat entry.
type messageView struct {
	Sender    string
	Content   template.HTML
	CreatedAt time.Time
}

type PageHandler struct {
	caseService    *services.CaseService
	messageService *services.MessageService
}

func NewPageHandler(cs *services.CaseService, ms *services.MessageService) *PageHandler {
	return &PageHandler{caseService: cs, messageService: ms}
}

func (h *PageHandler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "index.html", nil)
}

// ShowDashboard lists the session user's cases. Anonymous browsers are sent
// back to the intake form.
func (h *PageHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	s := middleware.SessionFrom(r)
	if s.UserEmail == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	cases, err := h.caseService.CasesForUser(r.Context(), s.UserEmail)
	if err != nil {
		h.showStoreErrorPage(w, err)
		return
	}

	renderTemplate(w, "dashboard.html", map[string]interface{}{
		"UserEmail": s.UserEmail,
		"Cases":     cases,
	})
}

// ShowCaseRoom renders one case with its full message history.
func (h *PageHandler) ShowCaseRoom(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["id"]

	c, err := h.caseService.GetCase(r.Context(), caseID)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			h.ShowErrorPage(w, "404", "Case Not Found", "No case exists with that identifier.")
			return
		}
		h.showStoreErrorPage(w, err)
		return
	}

	messages, err := h.messageService.ListForCase(r.Context(), caseID)
	if err != nil {
		h.showStoreErrorPage(w, err)
		return
	}

	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageView{
			Sender:    m.Sender,
			Content:   renderMarkdown(m.Content),
			CreatedAt: m.CreatedAt,
		})
	}

	renderTemplate(w, "case_room.html", map[string]interface{}{
		"Case":     c,
		"Messages": views,
	})
}

func (h *PageHandler) ShowErrorPage(w http.ResponseWriter, code, message, description string) {
	data := map[string]interface{}{
		"Code":        code,
		"Message":     message,
		"Description": description,
	}
	renderTemplate(w, "error.html", data)
}

func (h *PageHandler) showStoreErrorPage(w http.ResponseWriter, err error) {
	zap.S().Errorf("[PageHandler] store failure: %v", err)
	w.WriteHeader(http.StatusBadGateway)
	h.ShowErrorPage(w, "502", "Service Unavailable", "The case store did not respond. Please try again shortly.")
}
