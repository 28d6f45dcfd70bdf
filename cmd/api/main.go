package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/saveone/server/internal/auth"
	"github.com/saveone/server/internal/config"
	"github.com/saveone/server/internal/db"
	"github.com/saveone/server/internal/documents"
	httphandler "github.com/saveone/server/internal/http"
	"github.com/saveone/server/internal/logging"
	"github.com/saveone/server/internal/repo"
	"github.com/saveone/server/internal/scan"
	"github.com/saveone/server/internal/storage"
)

func main() {
	// Load .env from CWD if present (env vars override)
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(os.Stderr, "info", false)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()

	// Without a database there is nothing to serve
	database, err := db.Open(ctx, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(database); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	if !cfg.S3.Enabled() {
		logger.Info().Msg("object store not configured; document objects are left in place on delete")
	}

	srv := newServer(cfg, newHandler(cfg, database, logger))

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited")
}

// newHandler wires repositories, services and the scan store into the router.
func newHandler(cfg *config.Config, database *sql.DB, logger zerolog.Logger) http.Handler {
	userRepo := repo.NewUserRepo(database)
	documentRepo := repo.NewDocumentRepo(database)

	authService := auth.NewAuthService(userRepo, auth.NewPlaintextVerifier())
	documentService := documents.NewService(documentRepo, storage.New(cfg.S3), logger)

	return httphandler.NewRouter(httphandler.RouterDeps{
		Logger:         logger,
		AuthService:    authService,
		Documents:      documentService,
		Scans:          scan.NewMemoryStore(nil, cfg.ScanTTL),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		BodyLimit:      cfg.BodyLimitBytes,
	})
}

// newServer creates the HTTP server with timeouts
func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
