package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financial_health/pkg/api/analysis"
	"financial_health/pkg/api/server"
	"financial_health/pkg/core/config"
	"financial_health/pkg/core/llm"
	"financial_health/pkg/core/store"
	"financial_health/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	l := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(l)

	narrator, err := llm.NewProvider(cfg.Narrative.Provider, cfg.Narrative.Model, cfg.Narrative.APIKey)
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to configure narrative provider")
	}

	ctx := context.Background()
	archive := store.NewReportRepo(nil)
	if cfg.Archive.Enabled {
		if err := store.InitDB(ctx, cfg.Archive.DatabaseURL); err != nil {
			l.Warn().Err(err).Msg("Report archive disabled: database unavailable")
		} else {
			archive = store.NewReportRepo(store.GetPool())
			defer store.Close()
		}
	}

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Log:            l,
		ArchiveEnabled: archive.Enabled(),
		NarrativeOn:    narrator != nil,
		Analysis: analysis.NewHandler(analysis.Options{
			Bounds:      cfg.Bounds,
			Defaults:    cfg.Defaults,
			MaxUploadMB: cfg.Server.MaxUploadMB,
			Narrator:    narrator,
			Archive:     archive,
			Log:         l,
		}),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	l.Info().
		Str("health", "GET /health").
		Str("analysis", "POST /api/analysis").
		Str("spreadsheet", "POST /api/report/spreadsheet").
		Str("document", "POST /api/report/document?format=pdf|html|md").
		Msg("Routes registered")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
