package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ersonp/mens/internal/application/handlers"
)

type watchFlags struct {
	interval time.Duration
	debounce time.Duration
}

func newWatchCmd() *cobra.Command {
	var flags watchFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync whenever the local document changes",
		Long: `Watches the local document and syncs after it is edited outside mens.
With --interval, also syncs periodically to pick up remote changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, flags)
		},
	}

	cmd.Flags().DurationVarP(&flags.interval, "interval", "i", 0, "Periodic sync interval (0 disables)")
	cmd.Flags().DurationVarP(&flags.debounce, "debounce", "d", DefaultWatchDebounce, "Quiet period after an edit before syncing")

	return cmd
}

func runWatch(cmd *cobra.Command, flags watchFlags) error {
	ctx := cmd.Context()

	return withSyncHandler(ctx, true, func(h *handlers.SyncHandler, d *internalDeps) error {
		if err := d.store.EnsureFile(ctx); err != nil {
			return fmt.Errorf("creating local document: %w", err)
		}

		w := &docWatcher{
			path:     d.store.Path(),
			interval: flags.interval,
			debounce: flags.debounce,
			out:      cmd.OutOrStdout(),
			logger:   d.Logger,
			sync: func(ctx context.Context) *handlers.SyncResult {
				if err := d.noteService.Reload(ctx); err != nil {
					return &handlers.SyncResult{Outcome: handlers.SyncHardFailure, Err: err}
				}
				return h.Handle(ctx)
			},
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (ctrl+c to stop)\n", w.path)
		return w.run(ctx)
	})
}

// docWatcher runs syncs on one goroutine, triggered by edits and an optional ticker.
type docWatcher struct {
	path     string
	interval time.Duration
	debounce time.Duration
	out      io.Writer
	logger   *slog.Logger
	sync     func(ctx context.Context) *handlers.SyncResult

	lastDigest string
}

func (w *docWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	w.syncOnce(ctx)

	var debounceC <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	var tickC <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			debounceC = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		case <-debounceC:
			debounceC = nil
			if w.changed() {
				w.syncOnce(ctx)
			}
		case <-tickC:
			w.syncOnce(ctx)
		}
	}
}

// changed reports whether the document differs from what the last sync left behind.
func (w *docWatcher) changed() bool {
	digest, err := fileDigest(w.path)
	if err != nil {
		w.logger.Warn("reading document failed", "error", err)
		return false
	}
	return digest != w.lastDigest
}

func (w *docWatcher) syncOnce(ctx context.Context) {
	result := w.sync(ctx)
	displaySyncResult(w.out, result)
	if result.Err != nil {
		fmt.Fprintf(w.out, "  %v\n", result.Err)
	}

	if digest, err := fileDigest(w.path); err == nil {
		w.lastDigest = digest
	}
}

func fileDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
