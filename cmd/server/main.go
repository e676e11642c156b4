package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/api"
	"github.com/jafarshop/shopadmin/internal/auth"
	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/repository"
	"github.com/jafarshop/shopadmin/internal/repository/memory"
	"github.com/jafarshop/shopadmin/internal/repository/postgres"
	"github.com/jafarshop/shopadmin/internal/service"
	"github.com/jafarshop/shopadmin/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Shopify admin server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("api_version", cfg.Shopify.APIVersion),
		zap.String("session_storage", cfg.SessionStorage),
	)

	// Session storage
	var repos *repository.Repositories
	switch cfg.SessionStorage {
	case config.SessionStoragePostgres:
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.RunMigrations(context.Background(), db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		repos = postgres.NewRepositories(db)
	default:
		repos = memory.NewRepositories()
	}

	authenticator := auth.NewAuthenticator(repos.Session, cfg.Shopify.APISecret, logger)
	if cfg.Shopify.ShopDomain != "" {
		if err := authenticator.Seed(context.Background(), cfg.Shopify.ShopDomain, cfg.Shopify.AccessToken); err != nil {
			logger.Fatal("Failed to seed offline session", zap.Error(err))
		}
	}

	client := shopify.NewClient(cfg.Shopify, logger)
	svc := service.NewAdminService(client, cfg.Listing, logger)

	// Initialize router
	router := api.NewRouter(cfg, authenticator, svc, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Shopify.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
