package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ersonp/mens/internal/application/handlers"
	"github.com/ersonp/mens/internal/domain/ports"
	"github.com/ersonp/mens/internal/domain/services"
	"github.com/ersonp/mens/internal/infrastructure/config"
	"github.com/ersonp/mens/internal/infrastructure/localstore/yamlfile"
	"github.com/ersonp/mens/internal/infrastructure/logging"
	"github.com/ersonp/mens/internal/infrastructure/markdown"
	"github.com/ersonp/mens/internal/infrastructure/remote/gist"
	"github.com/ersonp/mens/internal/infrastructure/remote/objectstore"
	"github.com/ersonp/mens/internal/infrastructure/remote/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config      *config.Config
	ConfigStore *config.Store
	Logger      *slog.Logger
	NoteHandler *handlers.NoteHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	store       *yamlfile.Repository
	versioner   *services.Versioner
	noteService *services.NoteService
}

// configPath resolves --config or the default location.
func configPath() (string, error) {
	if globalConfigPath != "" {
		return globalConfigPath, nil
	}
	return config.DefaultPath()
}

// openConfigStore opens the config store at the resolved path.
func openConfigStore() (*config.Store, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	store, err := config.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return store, nil
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(fn func(*internalDeps) error) error {
	cfgStore, err := openConfigStore()
	if err != nil {
		return err
	}

	cfg, err := cfgStore.Config()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var console io.Writer
	if globalVerbose {
		console = os.Stderr
	}
	logger, closer, err := logging.New(cfg.Log, console)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closer.Close()

	store, err := yamlfile.NewRepository(cfg.DocumentPath())
	if err != nil {
		return fmt.Errorf("creating local store: %w", err)
	}

	versioner := services.NewVersioner()
	noteService := services.NewNoteService(store, versioner, markdown.NewRenderer(), logger)

	deps := &internalDeps{
		Deps: Deps{
			Config:      cfg,
			ConfigStore: cfgStore,
			Logger:      logger,
			NoteHandler: handlers.NewNoteHandler(noteService),
		},
		store:       store,
		versioner:   versioner,
		noteService: noteService,
	}

	return fn(deps)
}

// withSyncHandler builds the configured remote and a SyncHandler on top of it.
func withSyncHandler(ctx context.Context, autoRetry bool, fn func(*handlers.SyncHandler, *internalDeps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		remote, closeRemote, err := newRemote(ctx, d.Config)
		if err != nil {
			return fmt.Errorf("creating %s remote: %w", d.Config.Remote.Kind, err)
		}
		defer closeRemote()

		syncService := services.NewSyncService(d.noteService, remote, d.ConfigStore, services.NewMerger(d.versioner), d.Logger)
		return fn(handlers.NewSyncHandler(syncService, autoRetry, d.Logger), d)
	})
}

// withImportHandler creates an ImportHandler and calls the provided function.
func withImportHandler(fn func(*handlers.ImportHandler) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		importService := services.NewImportService(d.noteService, d.versioner)
		return fn(handlers.NewImportHandler(importService))
	})
}

// newRemote returns the remote selected by remote.kind and a cleanup func.
func newRemote(ctx context.Context, cfg *config.Config) (ports.Remote, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Remote.Kind {
	case config.RemoteGist:
		client, err := gist.NewClient(cfg.Remote.Gist)
		if err != nil {
			return nil, nil, err
		}
		return client, noop, nil
	case config.RemoteS3:
		client, err := objectstore.NewClient(cfg.Remote.S3)
		if err != nil {
			return nil, nil, err
		}
		return client, noop, nil
	case config.RemoteSQLite:
		repo, err := sqlite.NewRepository(ctx, cfg.Remote.SQLite)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown remote kind %q", cfg.Remote.Kind)
	}
}
