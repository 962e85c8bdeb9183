package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add [content]",
		Aliases: []string{"a"},
		Short:   "Add a note",
		Long:    "Adds a note. Content comes from the arguments, piped stdin or an editor prompt.",
		RunE:    runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	content, err := readContent(args, cmd.InOrStdin(), "New note", "")
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		note, err := d.NoteHandler.HandleAdd(cmd.Context(), content)
		if err != nil {
			return fmt.Errorf("adding note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added note: %s\n", note.ID)
		return nil
	})
}
