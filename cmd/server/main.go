package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"hirebase/internal/auth"
	"hirebase/internal/capabilities"
	"hirebase/internal/config"
	"hirebase/internal/handler"
	"hirebase/internal/middleware"
	"hirebase/internal/repository/dynamo"
	"hirebase/internal/service/directory"
	"hirebase/internal/service/namespace"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to create log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for identity provider tokens
	jwtVerifier, err := auth.NewJWTVerifier(cfg.IdentityJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create DynamoDB client
	ctx := context.Background()
	client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
	if err != nil {
		log.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	// Create table names
	tables := dynamo.NewTableNames(cfg.TablePrefix)

	if err := dynamo.Ping(ctx, client, tables); err != nil {
		log.Fatalf("Failed to reach DynamoDB: %v", err)
	}

	logger.Info("store connected",
		"region", cfg.AWSRegion,
		"folders_table", tables.Folders,
	)

	// Create repositories
	repoConfig := &dynamo.RepositoryConfig{
		Client: client,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := dynamo.NewFolderRepository(repoConfig)
	attachmentRepo := dynamo.NewAttachmentRepository(repoConfig)
	jobRepo := dynamo.NewJobRepository(repoConfig)

	// Directory client for display name resolution on system folders
	directoryClient := directory.NewClient(cfg.IdentityURL, cfg.IdentityServiceKey, logger)

	// Initialize capability registry
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}
	logger.Info("capability registry initialized")

	// Create the namespace service
	folderService := namespace.NewFolderService(
		folderRepo,
		attachmentRepo,
		jobRepo,
		directoryClient,
		capabilityRegistry,
		logger,
	)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	systemHandler := handler.NewSystemFolderHandler(folderService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", folderHandler.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /api/v1/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/v1/folders", folderHandler.QueryFolders)
	mux.HandleFunc("GET /api/v1/folders/roots", folderHandler.ListRoots)
	mux.HandleFunc("GET /api/v1/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/v1/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/v1/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/v1/folders/{id}/children", folderHandler.ListChildren)
	mux.HandleFunc("POST /api/v1/folders/batch-delete", folderHandler.BatchDeleteFolders)

	// Internal service-to-service routes
	mux.HandleFunc("POST /internal/v1/folders/system", systemHandler.CreateSystemFolder)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Auth → ServiceKey → Routes
	httpHandler = middleware.ServiceKeyMiddleware(cfg.ServiceKey, logger)(httpHandler)
	httpHandler = middleware.AuthMiddleware(jwtVerifier, logger)(httpHandler)
	httpHandler = middleware.RequestLogger(logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
