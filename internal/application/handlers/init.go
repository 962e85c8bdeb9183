// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/mens/internal/infrastructure/config"
	"github.com/ersonp/mens/internal/infrastructure/localstore/yamlfile"
)

// InitHandler writes a default config and an empty local document.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DocumentPath string
	RemoteKind   string
}

// Handle initializes mens with its config at configPath.
func (h *InitHandler) Handle(ctx context.Context, configPath string) (*InitResult, error) {
	if config.Exists(configPath) {
		return nil, fmt.Errorf("mens already initialized at %s", configPath)
	}

	if err := config.WriteDefault(configPath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	store, err := config.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg, err := store.Config()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	repo, err := yamlfile.NewRepository(cfg.DocumentPath())
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureFile(ctx); err != nil {
		return nil, fmt.Errorf("creating local document: %w", err)
	}

	return &InitResult{
		ConfigPath:   configPath,
		DocumentPath: repo.Path(),
		RemoteKind:   cfg.Remote.Kind,
	}, nil
}
