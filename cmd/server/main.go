// Command server runs the IntelliNotes summarization backend: a REST API
// that turns meeting transcripts into summaries with a local Ollama model,
// records every attempt in an audit log, and collects user feedback.
//
// Startup order matters: configuration, logging, tracing, database bootstrap
// (migrate + seed), then the HTTP server. The bootstrap database handle is
// closed before serving; request-time persistence goes through the gateway,
// which opens a fresh connection per operation.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/intellinotes/go-notes-backend/internal/config"
	httpapi "github.com/intellinotes/go-notes-backend/internal/http"
	"github.com/intellinotes/go-notes-backend/internal/llm"
	"github.com/intellinotes/go-notes-backend/internal/observability"
	"github.com/intellinotes/go-notes-backend/internal/repo"
	"github.com/intellinotes/go-notes-backend/internal/sysutil"
	"github.com/intellinotes/go-notes-backend/internal/tokenizer"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title        IntelliNotes API
// @version      1.0
// @description  Meeting transcript summarization backend with an audit log, feedback, and prompt templates.
// @BasePath     /api/v1
func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.InitLogger(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	log.Info().
		Str("version", version).
		Str("port", cfg.Port).
		Str("model", cfg.LLM.Model).
		Msg("starting server")

	// Tracing (no-op when disabled).
	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(ctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Database bootstrap: create schema and stock templates, then release the
	// handle. Serving traffic never reuses this connection.
	bootstrapDB(cfg)

	gw := repo.NewGateway(cfg.DB, log.Logger)

	ai, err := llm.NewOllamaClient(cfg.LLM, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.LLM.BaseURL).Msg("ollama client setup failed")
	}

	tok := tokenizer.New(cfg.TokenizerEncoding)

	r := gin.New()
	httpapi.RegisterRoutes(r, gw, ai, tok, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("listening")

	// Block until SIGINT/SIGTERM, then drain in-flight requests. The window
	// matches WriteTimeout so a summary already waiting on the LLM can finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// bootstrapDB opens the configured SQLite database once, applies migrations,
// seeds the stock template catalog, and closes the handle again.
func bootstrapDB(cfg config.Config) {
	db, err := repo.OpenSQLite(cfg.DB.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("db_addr", cfg.DB.Addr).Msg("database open failed")
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := repo.SeedTemplates(db); err != nil {
		log.Fatal().Err(err).Msg("template seeding failed")
	}
	log.Info().Str("db_addr", cfg.DB.Addr).Msg("database ready")
}
