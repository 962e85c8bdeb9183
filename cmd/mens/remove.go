package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type removeFlags struct {
	force bool
}

func newRemoveCmd() *cobra.Command {
	var flags removeFlags

	cmd := &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm", "r", "d", "delete"},
		Short:   "Remove notes",
		Long:    "Removes notes by id. Unknown ids are ignored.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runRemove(cmd *cobra.Command, ids []string, flags removeFlags) error {
	if !flags.force {
		ok, err := confirmAction(fmt.Sprintf("Remove %d note(s)?", len(ids)))
		if errors.Is(err, errNotInteractive) {
			return errors.New("refusing to remove without --force outside a terminal")
		}
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	return withDeps(func(d *Deps) error {
		removed, err := d.NoteHandler.HandleRemove(cmd.Context(), ids)
		if err != nil {
			return fmt.Errorf("removing notes: %w", err)
		}
		for _, id := range removed {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed note: %s\n", id)
		}
		return nil
	})
}
