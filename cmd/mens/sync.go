package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/mens/internal/application/handlers"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync notes with the remote",
		Long: `Merges local notes with the configured remote and pushes the result.

Notes changed on one side only take the newer version. Notes changed on both
sides keep both contents, separated by a conflict marker. If the remote
resource is missing, a new one is created and sync must be run again.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withSyncHandler(ctx, false, func(h *handlers.SyncHandler, _ *internalDeps) error {
		result := h.Handle(ctx)
		displaySyncResult(cmd.OutOrStdout(), result)
		if result.Outcome == handlers.SyncHardFailure {
			return result.Err
		}
		return nil
	})
}
