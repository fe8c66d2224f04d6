package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iyunix/go-counsel/internal/domain"
	"github.com/iyunix/go-counsel/internal/middleware"
	"github.com/iyunix/go-counsel/internal/repository/casefile"
	"github.com/iyunix/go-counsel/internal/repository/message"
	"github.com/iyunix/go-counsel/internal/services"
	"github.com/iyunix/go-counsel/internal/services/admin_services"
	"github.com/iyunix/go-counsel/internal/session"
)

const testAdminPassword = "@Loginlocal2452"

type testPortal struct {
	server      *httptest.Server
	client      *http.Client
	caseRepo    casefile.CaseRepository
	messageRepo message.MessageRepository
}

// newTestPortal wires the full router the way cmd/server does, backed by an
// in-memory store.
func newTestPortal(t *testing.T) *testPortal {
	t.Helper()
	templateDir = "../../web/templates"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Case{}, &domain.Message{}))

	caseRepo := casefile.NewCaseRepository(db)
	messageRepo := message.NewMessageRepository(db)

	sessionManager, err := session.NewManager("test-session-secret")
	require.NoError(t, err)
	adminGate, err := session.NewAdminGate(testAdminPassword)
	require.NoError(t, err)

	logger := &services.NoOpLogger{}
	caseService, err := services.NewCaseService(caseRepo, logger)
	require.NoError(t, err)
	messageService, err := services.NewMessageService(messageRepo, logger)
	require.NoError(t, err)
	adminService, err := admin_services.NewAdminService(caseRepo, messageRepo, logger)
	require.NoError(t, err)

	pageHandler := NewPageHandler(caseService, messageService)
	caseHandler := NewCaseHandler(caseService, sessionManager)
	messageHandler := NewMessageHandler(messageService)
	adminHandler := NewAdminHandler(adminService, adminGate, sessionManager, pageHandler)

	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.WithSession(sessionManager))

	r.HandleFunc("/", pageHandler.ShowIndexPage).Methods("GET")
	r.HandleFunc("/dashboard", pageHandler.ShowDashboard).Methods("GET")
	r.HandleFunc("/create-case", caseHandler.CreateCase).Methods("POST")
	r.HandleFunc("/case/{id}", pageHandler.ShowCaseRoom).Methods("GET")
	r.HandleFunc("/send-message", messageHandler.SendMessage).Methods("POST")
	r.HandleFunc("/lawyer-admin", adminHandler.ShowAdminPortal).Methods("GET")
	r.HandleFunc("/lawyer-admin", adminHandler.Login).Methods("POST")
	r.HandleFunc("/lawyer-logout", adminHandler.Logout).Methods("GET")

	adminApiRoutes := r.PathPrefix("/admin").Subrouter()
	adminApiRoutes.Use(middleware.RequireAdmin)
	adminApiRoutes.HandleFunc("/reply", adminHandler.Reply).Methods("POST")
	adminApiRoutes.HandleFunc("/update-status", adminHandler.UpdateStatus).Methods("POST")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := server.Client()
	client.Jar = jar

	return &testPortal{
		server:      server,
		client:      client,
		caseRepo:    caseRepo,
		messageRepo: messageRepo,
	}
}

func (p *testPortal) postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := p.client.Post(p.server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return res
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(data)
}

func (p *testPortal) loginAdmin(t *testing.T) {
	t.Helper()
	res, err := p.client.PostForm(p.server.URL+"/lawyer-admin", url.Values{"password": {testAdminPassword}})
	require.NoError(t, err)
	body := readBody(t, res)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "FIRM CASES")
}

func TestIntakeCreatesCaseAndShowsDashboard(t *testing.T) {
	p := newTestPortal(t)

	res, err := p.client.PostForm(p.server.URL+"/create-case", url.Values{
		"email": {" Jane@Law.com "},
		"title": {"Divorce"},
	})
	require.NoError(t, err)
	body := readBody(t, res)

	// Followed the redirect to the dashboard for the new session user.
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "/dashboard", res.Request.URL.Path)
	assert.Contains(t, body, "Divorce")
	assert.Contains(t, body, "jane@law.com")

	stored, err := p.caseRepo.FirstByUserEmail(context.Background(), "jane@law.com")
	require.NoError(t, err)
	assert.Equal(t, "jane@law.com", stored.UserEmail)
	assert.Equal(t, "Divorce", stored.Title)
	assert.Equal(t, domain.StatusReviewing, stored.Status)
}

func TestIntakeResumesExistingCase(t *testing.T) {
	p := newTestPortal(t)

	for _, email := range []string{"jane@law.com", " JANE@law.COM "} {
		res, err := p.client.PostForm(p.server.URL+"/create-case", url.Values{
			"email": {email},
			"title": {"Divorce"},
		})
		require.NoError(t, err)
		readBody(t, res)
	}

	cases, err := p.caseRepo.FindByUserEmail(context.Background(), "jane@law.com")
	require.NoError(t, err)
	assert.Len(t, cases, 1)
}

func TestIntakeWithEmptyEmailRedirectsHome(t *testing.T) {
	p := newTestPortal(t)

	res, err := p.client.PostForm(p.server.URL+"/create-case", url.Values{"email": {"   "}})
	require.NoError(t, err)
	readBody(t, res)

	assert.Equal(t, "/", res.Request.URL.Path)

	_, err = p.caseRepo.FirstByUserEmail(context.Background(), "")
	assert.Error(t, err)
}

func TestDashboardRedirectsAnonymousVisitors(t *testing.T) {
	p := newTestPortal(t)

	res, err := p.client.Get(p.server.URL + "/dashboard")
	require.NoError(t, err)
	body := readBody(t, res)

	assert.Equal(t, "/", res.Request.URL.Path)
	assert.Contains(t, body, "COUNSEL PORTAL")
}

func TestSendMessageAppearsInCaseRoom(t *testing.T) {
	p := newTestPortal(t)

	c, err := p.caseRepo.Create(context.Background(), &domain.Case{
		UserEmail: "jane@law.com",
		Title:     "Divorce",
		Status:    domain.StatusReviewing,
	})
	require.NoError(t, err)

	res := p.postJSON(t, "/send-message", map[string]string{
		"case_id": c.ID,
		"sender":  "client",
		"content": "Hello",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"sent"}`, readBody(t, res))

	room, err := p.client.Get(p.server.URL + "/case/" + c.ID)
	require.NoError(t, err)
	body := readBody(t, room)
	assert.Equal(t, http.StatusOK, room.StatusCode)
	assert.Contains(t, body, "Hello")
	assert.Contains(t, body, "client")
}

func TestSendMessageRejectsUnknownSender(t *testing.T) {
	p := newTestPortal(t)

	res := p.postJSON(t, "/send-message", map[string]string{
		"case_id": "11111111-1111-1111-1111-111111111111",
		"sender":  "judge",
		"content": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	readBody(t, res)
}

func TestCaseRoomUnknownCase(t *testing.T) {
	p := newTestPortal(t)

	res, err := p.client.Get(p.server.URL + "/case/3f1a0f6e-0000-0000-0000-000000000000")
	require.NoError(t, err)
	body := readBody(t, res)
	assert.Contains(t, body, "Case Not Found")
}

func TestAdminPortalShowsLoginFormWhenAnonymous(t *testing.T) {
	p := newTestPortal(t)

	res, err := p.client.Get(p.server.URL + "/lawyer-admin")
	require.NoError(t, err)
	body := readBody(t, res)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ADMIN ACCESS")
}

func TestWrongAdminPasswordThenForbidden(t *testing.T) {
	p := newTestPortal(t)

	res, err := p.client.PostForm(p.server.URL+"/lawyer-admin", url.Values{"password": {"not-the-password"}})
	require.NoError(t, err)
	body := readBody(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "Unauthorized: Incorrect Password")

	// The failed attempt must not have set the admin flag.
	res = p.postJSON(t, "/admin/update-status", map[string]string{
		"case_id": "11111111-1111-1111-1111-111111111111",
		"status":  "Closed",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, readBody(t, res))
}

func TestAdminReplyAndStatusUpdate(t *testing.T) {
	p := newTestPortal(t)

	c, err := p.caseRepo.Create(context.Background(), &domain.Case{
		UserEmail: "jane@law.com",
		Title:     "Divorce",
		Status:    domain.StatusReviewing,
	})
	require.NoError(t, err)

	p.loginAdmin(t)

	res := p.postJSON(t, "/admin/update-status", map[string]string{
		"case_id": c.ID,
		"status":  "Awaiting Court Date",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"updated"}`, readBody(t, res))

	updated, err := p.caseRepo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Awaiting Court Date", updated.Status)

	res = p.postJSON(t, "/admin/reply", map[string]string{
		"case_id": c.ID,
		"content": "We have filed the motion.",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"sent"}`, readBody(t, res))

	messages, err := p.messageRepo.FindByCaseID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.SenderLawyer, messages[0].Sender)
}

func TestAdminLogoutRevokesAccess(t *testing.T) {
	p := newTestPortal(t)
	p.loginAdmin(t)

	res, err := p.client.Get(p.server.URL + "/lawyer-logout")
	require.NoError(t, err)
	readBody(t, res)
	assert.Equal(t, "/", res.Request.URL.Path)

	forbidden := p.postJSON(t, "/admin/reply", map[string]string{
		"case_id": "11111111-1111-1111-1111-111111111111",
		"content": "still there?",
	})
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, readBody(t, forbidden))
}

func TestAdminLogoutKeepsClientSession(t *testing.T) {
	p := newTestPortal(t)

	res, err := p.client.PostForm(p.server.URL+"/create-case", url.Values{
		"email": {"jane@law.com"},
		"title": {"Divorce"},
	})
	require.NoError(t, err)
	readBody(t, res)

	p.loginAdmin(t)

	res, err = p.client.Get(p.server.URL + "/lawyer-logout")
	require.NoError(t, err)
	readBody(t, res)

	// Client identity survives the admin logout.
	res, err = p.client.Get(p.server.URL + "/dashboard")
	require.NoError(t, err)
	body := readBody(t, res)
	assert.Equal(t, "/dashboard", res.Request.URL.Path)
	assert.Contains(t, body, "jane@law.com")
}
