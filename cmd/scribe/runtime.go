package main

import (
	"context"

	"github.com/okian/scribe/internal/adapters/repository"
	service "github.com/okian/scribe/internal/app"
	"github.com/okian/scribe/internal/config"
	"github.com/okian/scribe/internal/domain/semantic"
	"github.com/okian/scribe/pkg/logger"
)

// openService loads configuration, opens the sqlite store and starts the
// pipeline. The returned cleanup stops the service and closes the store.
func openService(ctx context.Context) (*service.Service, *config.Config, func()) {
	if err := logger.Init(); err != nil {
		fail(ExitError, "initializing logging: %v", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fail(ExitConfigError, "loading config: %v", err)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	store, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		fail(ExitError, "opening store at %s: %v", cfg.DBPath, err)
	}

	var encoder semantic.Encoder
	switch cfg.Encoder {
	case "ollama":
		encoder = semantic.NewOllamaEncoder(
			semantic.WithBaseURL(cfg.OllamaURL),
			semantic.WithModel(cfg.OllamaModel),
			semantic.WithOllamaDimensions(cfg.EmbedDimensions),
			semantic.WithOllamaMaxTokens(cfg.MaxTokens),
		)
	default:
		encoder = semantic.NewLocalEncoder(
			semantic.WithDimensions(cfg.EmbedDimensions),
			semantic.WithMaxTokens(cfg.MaxTokens),
		)
	}

	svc := service.New(
		service.WithStore(store),
		service.WithEncoder(encoder),
		service.WithThreshold(cfg.PlagiarismThreshold),
		service.WithAuditQueueSize(cfg.AuditQueueSize),
		service.WithAuditWriterCount(cfg.AuditWriterCount),
	)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		fail(ExitError, "starting service: %v", err)
	}

	return svc, cfg, svc.Stop
}
