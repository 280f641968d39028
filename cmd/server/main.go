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

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"holding/internal/auth"
	"holding/internal/config"
	"holding/internal/handler"
	"holding/internal/middleware"
	"holding/internal/repository/postgres"
	"holding/internal/seed"
	serviceAuth "holding/internal/service/auth"
	serviceCatalog "holding/internal/service/catalog"
	serviceInventory "holding/internal/service/inventory"
	serviceOwner "holding/internal/service/owner"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.Debug {
		if logFile, err := config.SetupLogFile("logs", 10); err == nil {
			defer logFile.Close()
			logOut = io.MultiWriter(os.Stdout, logFile)
		} else {
			log.Printf("log file disabled: %v", err)
		}
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verification: the bot's shared secret always, end-user JWKS
	// when configured
	botVerifier, err := auth.NewBotTokenVerifier(cfg.BotTokenSecret, logger)
	if err != nil {
		log.Fatalf("Failed to create bot token verifier: %v", err)
	}
	verifier := botVerifier
	if cfg.JWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifier = auth.NewChainVerifier(botVerifier, jwksVerifier)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	ownerRepo := postgres.NewOwnerRepository(repoConfig)
	settingsRepo := postgres.NewUserSettingsRepository(repoConfig)
	itemRepo := postgres.NewItemRepository(repoConfig)
	containerRepo := postgres.NewContainerRepository(repoConfig)
	containerItemRepo := postgres.NewContainerItemRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	authorizer := serviceAuth.NewOwnerAuthorizer()
	ownerService := serviceOwner.NewOwnerService(ownerRepo, settingsRepo, logger)
	settingsService := serviceOwner.NewSettingsService(settingsRepo, logger)
	itemService := serviceCatalog.NewItemService(itemRepo, ownerRepo, authorizer, logger)
	containerService := serviceInventory.NewContainerService(
		containerRepo,
		containerItemRepo,
		ownerRepo,
		itemService,
		txManager,
		authorizer,
		logger,
	)

	// Ensure the system owner exists and the base catalog is loaded
	systemOwner, err := ownerService.EnsureSystemOwner(ctx)
	if err != nil {
		log.Fatalf("Failed to ensure system owner: %v", err)
	}
	itemSeeder := seed.NewItemSeeder(itemRepo, logger)
	if _, err := itemSeeder.SeedFromFile(ctx, cfg.SeedFile, systemOwner.ID); err != nil {
		logger.Warn("item catalog not seeded", "error", err)
	}

	// Create handlers
	containerHandler := handler.NewContainerHandler(containerService, logger)
	itemHandler := handler.NewItemHandler(itemService, logger)
	userHandler := handler.NewUserHandler(ownerService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Container routes. Literal segments must register before {id}.
	mux.HandleFunc("POST /api/containers", containerHandler.CreateContainer)
	mux.HandleFunc("GET /api/containers", containerHandler.ListContainers)
	mux.HandleFunc("GET /api/containers/autocomplete", containerHandler.AutocompleteContainers)
	mux.HandleFunc("POST /api/containers/activate", containerHandler.ActivateContainerByName)
	mux.HandleFunc("GET /api/containers/active", containerHandler.GetActiveContainer)
	mux.HandleFunc("GET /api/containers/{id}", containerHandler.GetContainer)
	mux.HandleFunc("DELETE /api/containers/{id}", containerHandler.DeleteContainer)
	mux.HandleFunc("POST /api/containers/{id}/activate", containerHandler.ActivateContainer)

	// Placement routes operate on the actor's active container
	mux.HandleFunc("POST /api/containers/active/items", containerHandler.AddItem)
	mux.HandleFunc("POST /api/containers/active/items/drop", containerHandler.DropItem)
	mux.HandleFunc("PATCH /api/containers/active/items", containerHandler.ModifyItem)
	mux.HandleFunc("GET /api/containers/active/items/autocomplete", containerHandler.AutocompleteItems)
	mux.HandleFunc("GET /api/containers/active/parents/autocomplete", containerHandler.AutocompleteParentItems)

	// Catalog routes
	mux.HandleFunc("GET /api/items", itemHandler.ListItems)
	mux.HandleFunc("GET /api/items/autocomplete", itemHandler.AutocompleteItems)
	mux.HandleFunc("GET /api/items/{id}", itemHandler.GetItem)

	// User routes
	mux.HandleFunc("GET /api/users/me", userHandler.GetMe)
	mux.HandleFunc("PATCH /api/users/me", userHandler.UpdateMe)
	mux.HandleFunc("GET /api/users/me/settings", settingsHandler.GetSettings)
	mux.HandleFunc("PUT /api/users/me/settings", settingsHandler.UpdateSettings)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestID → Auth → Routes
	root = middleware.AuthMiddleware(verifier, ownerService, logger)(root)
	root = middleware.RequestID()(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			middleware.RequestIDHeader,
			middleware.HeaderOnBehalfOfUserID,
			middleware.HeaderOnBehalfOfUserName,
			middleware.HeaderOnBehalfOfUserTag,
			middleware.HeaderOnBehalfOfGlobal,
			middleware.HeaderTargetOwnerID,
			middleware.HeaderTargetOwnerType,
			middleware.HeaderTargetOwnerName,
		},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
