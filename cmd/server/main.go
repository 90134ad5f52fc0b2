package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dogao/cardapio/internal/auth"
	"github.com/dogao/cardapio/internal/config"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/server"
	"github.com/dogao/cardapio/internal/session"
	"github.com/dogao/cardapio/internal/storage"
	"github.com/dogao/cardapio/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting cardapio server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"db_driver", cfg.Database.Driver,
		"upload_backend", cfg.Upload.Backend,
		"log_level", cfg.LogLevel,
	)

	// Open database, create tables and seed default categories
	db, err := repository.Open(cfg.Database, log)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db)

	ctx := context.Background()
	if err := repository.Migrate(ctx, db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	seeded, err := repository.Seed(ctx, db)
	if err != nil {
		log.Error("failed to seed database", "error", err)
		os.Exit(1)
	}
	if seeded > 0 {
		log.Info("seeded default categories", "count", seeded)
	}

	store, err := newStore(cfg.Upload)
	if err != nil {
		log.Error("failed to initialize upload store", "error", err)
		os.Exit(1)
	}

	authenticator, err := auth.NewAuthenticator(cfg.Auth)
	if err != nil {
		log.Error("failed to initialize authenticator", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.PasswordHash == "" {
		log.Warn("ADMIN_PASSWORD is set in plain text; prefer ADMIN_PASSWORD_HASH")
	}

	router, err := server.NewRouter(server.Deps{
		Config:        cfg,
		DB:            db,
		Store:         store,
		Authenticator: authenticator,
		Sessions:      session.NewManager(cfg.Session),
		Logger:        log,
	})
	if err != nil {
		log.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func newStore(cfg config.UploadConfig) (storage.Store, error) {
	if cfg.Backend == config.UploadCloudinary {
		return storage.NewCloudinaryStore(cfg.CloudinaryURL, "cardapio")
	}
	return storage.NewLocalStore(cfg.Dir)
}
