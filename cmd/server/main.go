package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "casahub-backend/internal/api/http"
	"casahub-backend/internal/config"
	"casahub-backend/internal/logger"
	"casahub-backend/internal/repository/postgres"
	"casahub-backend/internal/security"
	"casahub-backend/internal/service"
	"casahub-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CasaHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage
	if cfg.Storage.Type != "" && cfg.Storage.Type != "local" {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}
	logger.Info("Using local document storage", "upload_dir", cfg.Storage.UploadDir)
	docStorage, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid)
	recorder := service.NewAuditRecorder(store.AuditLogRepository)
	auditSvc := service.NewAuditService(store.AuditLogRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, recorder)
	pipelineSvc := service.NewPipelineService(
		store.VolunteerRepository,
		store.OrganizationRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		recorder,
	)
	caseSvc := service.NewCaseService(store.CaseRepository, store.UserRepository, store.NotificationRepository, recorder)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository, recorder)
	userSvc := service.NewUserService(store.UserRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	docSvc := service.NewDocumentService(store.DocumentRepository, store.VolunteerRepository, docStorage, cfg.Storage)

	// Initialize HTTP API
	handlers := httpapi.NewHandlers(authSvc, pipelineSvc, auditSvc, caseSvc, orgSvc, userSvc, noteSvc, docSvc, docStorage)
	router := httpapi.NewRouter(handlers, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
