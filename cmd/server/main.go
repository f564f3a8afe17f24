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

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/avelar/draftmail/internal/config"
	"github.com/avelar/draftmail/internal/domain"
	"github.com/avelar/draftmail/internal/handlers"
	"github.com/avelar/draftmail/internal/middleware"
	"github.com/avelar/draftmail/internal/ratelimit"
	chatrepo "github.com/avelar/draftmail/internal/repository/chat"
	emailrepo "github.com/avelar/draftmail/internal/repository/email"
	messagerepo "github.com/avelar/draftmail/internal/repository/message"
	templaterepo "github.com/avelar/draftmail/internal/repository/template"
	userrepo "github.com/avelar/draftmail/internal/repository/user"
	"github.com/avelar/draftmail/internal/services"
	"github.com/avelar/draftmail/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
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
	if cfg.JWTSecretKey == "" {
		log.Fatal("FATAL: JWT_SECRET_KEY is required")
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.Message{},
		&domain.Email{},
		&domain.EmailTemplate{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	messageRepo := messagerepo.NewMessageRepository(db)
	emailRepo := emailrepo.NewEmailRepository(db)
	templateRepo := templaterepo.NewTemplateRepository(db)

	// --- Services ---
	identityService := user_services.NewIdentityService(userRepo, services.NewLogger("identity"))

	transcriptService, err := services.NewTranscriptService(
		db, identityService, chatRepo, messageRepo, emailRepo,
		services.NewLogger("transcript"),
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Transcript Service: %v", err)
	}

	emailService, err := services.NewEmailService(identityService, emailRepo, services.NewLogger("email"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Email Service: %v", err)
	}

	templateService, err := services.NewTemplateService(identityService, templateRepo, services.NewLogger("template"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Template Service: %v", err)
	}

	// --- Handlers ---
	transcriptHandler := handlers.NewTranscriptHandler(transcriptService)
	emailHandler := handlers.NewEmailHandler(emailService)
	templateHandler := handlers.NewTemplateHandler(templateService)

	// --- Rate Limiting ---
	writeLimiter := ratelimit.NewMemoryRateLimiter(&ratelimit.Config{
		WindowSize:    time.Duration(cfg.RateLimitWindowMinutes) * time.Minute,
		MaxRequests:   cfg.RateLimitMaxAttempts,
		CleanupPeriod: 10 * time.Minute,
	})
	defer writeLimiter.Close()
	writeLimit := middleware.RateLimitMiddleware(writeLimiter, "write")

	// --- Router Setup ---
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.WithIdentity([]byte(cfg.JWTSecretKey)))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Transcripts
	api.HandleFunc("/chats", transcriptHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats/{chatId}/messages", transcriptHandler.GetChatMessages).Methods("GET")
	api.Handle("/chats/{chatId}/messages/sync", writeLimit(http.HandlerFunc(transcriptHandler.SyncMessages))).Methods("POST")

	// Linked email artifacts
	api.HandleFunc("/emails", emailHandler.ListEmails).Methods("GET")
	api.Handle("/emails", writeLimit(http.HandlerFunc(emailHandler.CreateLinkedEmail))).Methods("POST")
	api.HandleFunc("/emails/{id}", emailHandler.DeleteEmail).Methods("DELETE")
	api.HandleFunc("/chats/{chatId}/emails/latest", emailHandler.GetLatestForChat).Methods("GET")

	// Style-reference templates
	api.HandleFunc("/templates", templateHandler.ListTemplates).Methods("GET")
	api.Handle("/templates", writeLimit(http.HandlerFunc(templateHandler.SaveTemplate))).Methods("POST")
	api.HandleFunc("/templates/{id}", templateHandler.DeleteTemplate).Methods("DELETE")
	api.HandleFunc("/templates/style-references", templateHandler.StyleReferences).Methods("POST")

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Draftmail sync server starting on port %s", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
