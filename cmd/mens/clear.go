package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type clearFlags struct {
	force bool
}

func newClearCmd() *cobra.Command {
	var flags clearFlags

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every local note",
		Long:  "Removes all notes from the local document. The remote is untouched until the next sync.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, flags clearFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if !flags.force {
			info, err := d.NoteHandler.HandleInfo(ctx)
			if err != nil {
				return fmt.Errorf("loading document: %w", err)
			}
			ok, err := confirmAction(fmt.Sprintf("Remove all %d notes?", info.Count))
			if errors.Is(err, errNotInteractive) {
				return errors.New("refusing to clear without --force outside a terminal")
			}
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := d.NoteHandler.HandleClear(ctx); err != nil {
			return fmt.Errorf("clearing notes: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All notes removed.")
		return nil
	})
}
