package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/live-gallery/internal/auth"
	"github.com/JaimeStill/live-gallery/internal/config"
	"github.com/JaimeStill/live-gallery/internal/database"
	"github.com/JaimeStill/live-gallery/internal/lifecycle"
	"github.com/JaimeStill/live-gallery/internal/realtime"
	"github.com/JaimeStill/live-gallery/internal/storage"
	"github.com/JaimeStill/live-gallery/pkg/pagination"
)

// Runtime holds the shared infrastructure subsystems.
type Runtime struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Storage    storage.System
	Hub        *realtime.Hub
	Tokens     *auth.Tokens
	Pagination pagination.Config
}

func NewRuntime(cfg *config.Config) (*Runtime, error) {
	lc := lifecycle.New()
	logger := newLogger(&cfg.Logging)

	dbSys, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.NewS3(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Runtime{
		Lifecycle:  lc,
		Logger:     logger,
		Database:   dbSys,
		Storage:    store,
		Hub:        realtime.NewHub(logger),
		Tokens:     auth.NewTokens(&cfg.Auth),
		Pagination: cfg.Pagination,
	}, nil
}

// Start brings up the infrastructure subsystems in dependency order.
func (r *Runtime) Start() error {
	if err := r.Database.Start(r.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}

	if err := r.Storage.Start(r.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	if err := r.Hub.Start(r.Lifecycle); err != nil {
		return fmt.Errorf("hub start failed: %w", err)
	}

	return nil
}

func newLogger(cfg *config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.Level.ToSlogLevel(),
	}

	var handler slog.Handler
	if cfg.Format == config.LogFormatText {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
