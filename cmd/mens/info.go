package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show document and remote details",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		info, err := d.NoteHandler.HandleInfo(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading document: %w", err)
		}

		displayInfo(cmd.OutOrStdout(), infoView{
			Info:         info,
			ConfigPath:   d.ConfigStore.Path(),
			DocumentPath: d.Config.DocumentPath(),
			RemoteKind:   d.Config.Remote.Kind,
			RemoteID:     d.Config.Remote.ID,
		})
		return nil
	})
}
