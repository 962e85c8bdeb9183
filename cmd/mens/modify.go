package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/mens/internal/domain"
)

func newModifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "modify <id> [content]",
		Aliases: []string{"mod", "m"},
		Short:   "Replace a note's content",
		Long:    "Replaces the content of a note. Without content, the current text opens in an editor prompt.",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runModify,
	}
}

func runModify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	return withDeps(func(d *Deps) error {
		current, err := d.NoteHandler.HandleGet(ctx, id)
		if err != nil {
			return fmt.Errorf("loading note: %w", err)
		}
		if current == nil {
			return &domain.NotFoundError{ID: id}
		}

		content, err := readContent(args[1:], cmd.InOrStdin(), "Edit note", current.Content)
		if err != nil {
			return err
		}
		if content == current.Content {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			return nil
		}

		note, err := d.NoteHandler.HandleModify(ctx, id, content)
		if err != nil {
			return fmt.Errorf("modifying note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Modified note: %s (version %s)\n", note.ID, note.Version)
		return nil
	})
}
