// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/iyunix/go-counsel/internal/config"
	"github.com/iyunix/go-counsel/internal/domain"
	"github.com/iyunix/go-counsel/internal/handlers"
	"github.com/iyunix/go-counsel/internal/middleware"
	"github.com/iyunix/go-counsel/internal/repository/casefile"
	"github.com/iyunix/go-counsel/internal/repository/message"
	"github.com/iyunix/go-counsel/internal/services"
	"github.com/iyunix/go-counsel/internal/services/admin_services"
	"github.com/iyunix/go-counsel/internal/session"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("go_counsel")

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.Case{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	caseRepo := casefile.NewCaseRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Session & Admin Gate ---
	sessionManager, err := session.NewManager(cfg.SessionSecretKey)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize session manager: %v", err)
	}
	adminGate, err := session.NewAdminGate(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize admin gate: %v", err)
	}

	// --- Services ---
	caseService, err := services.NewCaseService(caseRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Case Service: %v", err)
	}
	messageService, err := services.NewMessageService(messageRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Message Service: %v", err)
	}
	adminService, err := admin_services.NewAdminService(caseRepo, messageRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Admin Service: %v", err)
	}

	// --- Handlers ---
	pageHandler := handlers.NewPageHandler(caseService, messageService)
	caseHandler := handlers.NewCaseHandler(caseService, sessionManager)
	messageHandler := handlers.NewMessageHandler(messageService)
	adminHandler := handlers.NewAdminHandler(adminService, adminGate, sessionManager, pageHandler)

	// --- Router Setup ---
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.WithSession(sessionManager))

	// --- Public Routes ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/", pageHandler.ShowIndexPage).Methods("GET")
	r.HandleFunc("/dashboard", pageHandler.ShowDashboard).Methods("GET")
	r.HandleFunc("/create-case", caseHandler.CreateCase).Methods("POST")
	r.HandleFunc("/case/{id}", pageHandler.ShowCaseRoom).Methods("GET")
	r.HandleFunc("/send-message", messageHandler.SendMessage).Methods("POST")

	// --- Lawyer Admin Routes ---
	r.HandleFunc("/lawyer-admin", adminHandler.ShowAdminPortal).Methods("GET")
	r.HandleFunc("/lawyer-admin", adminHandler.Login).Methods("POST")
	r.HandleFunc("/lawyer-logout", adminHandler.Logout).Methods("GET")

	adminApiRoutes := r.PathPrefix("/admin").Subrouter()
	adminApiRoutes.Use(middleware.RequireAdmin)
	adminApiRoutes.HandleFunc("/reply", adminHandler.Reply).Methods("POST")
	adminApiRoutes.HandleFunc("/update-status", adminHandler.UpdateStatus).Methods("POST")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "404", "Page Not Found", "The page you are looking for does not exist.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "405", "Method Not Allowed", "The method is not allowed for this resource.")
	})

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	logger.Info("server starting",
		"port", port,
		"intake", "http://localhost"+port+"/",
		"admin_portal", "http://localhost"+port+"/lawyer-admin",
	)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
