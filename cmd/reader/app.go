package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"newsflix/internal/config"
	"newsflix/internal/eventloop"
	"newsflix/internal/i18n"
	"newsflix/internal/infra/adapter/persistence/file"
	"newsflix/internal/infra/adapter/persistence/sqlite"
	"newsflix/internal/infra/db"
	"newsflix/internal/infra/newsapi"
	"newsflix/internal/nav"
	"newsflix/internal/repository"
	"newsflix/internal/usecase/filter"
	"newsflix/internal/usecase/reader"
)

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *newsapi.Client
	filters *filter.Store
	text    *i18n.Bundle
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	text, err := i18n.Load()
	if err != nil {
		return nil, err
	}
	a.text = text

	client, err := newsapi.NewClient(cfg.ClientConfig(), newsapi.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create news API client: %w", err)
	}
	a.client = client

	prefs, err := a.openPreferences(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.filters = filter.NewStore(ctx, prefs, logger)

	logger.Debug("reader initialized",
		slog.String("base_url", cfg.API.BaseURL),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("storage_path", cfg.Storage.Path))
	return a, nil
}

// openPreferences selects the filter persistence backend.
func (a *app) openPreferences(ctx context.Context) (repository.PreferenceRepository, error) {
	switch a.cfg.Storage.Driver {
	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(a.cfg.Storage.Path), 0o700); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
		conn, err := db.Open(ctx, a.cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		if err := db.MigrateUp(ctx, conn); err != nil {
			return nil, fmt.Errorf("migrate preferences: %w", err)
		}
		return sqlite.NewPreferenceRepo(conn), nil
	default:
		return file.NewPreferenceRepo(a.cfg.Storage.Path), nil
	}
}

// session builds a reader session whose history starts at start.
func (a *app) session(loop *eventloop.Loop, start nav.Route) *reader.Session {
	return reader.NewSession(loop, a.client, a.filters, nav.NewHistory(start), a.logger)
}

// Close releases storage handles.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
