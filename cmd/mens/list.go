package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ersonp/mens/internal/application/handlers"
	"github.com/ersonp/mens/internal/domain/entities"
)

type listFlags struct {
	plain bool
	all   bool
}

func newListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List notes",
		Long:    "Lists all notes. In a terminal, pick a note to open, edit or delete it.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.plain, "plain", "p", false, "Print without interactive actions")
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "Include dropped notes")

	return cmd
}

func newSearchCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:     "search <keyword>",
		Aliases: []string{"s"},
		Short:   "Search notes",
		Long:    "Finds notes whose rendered text contains the keyword (case-sensitive).",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.plain, "plain", "p", false, "Print without interactive actions")

	return cmd
}

func runList(cmd *cobra.Command, flags listFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.NoteHandler.HandleList(ctx, flags.all)
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}
		return showNotes(ctx, cmd.OutOrStdout(), d.NoteHandler, result.Notes, flags.plain)
	})
}

func runSearch(cmd *cobra.Command, keyword string, flags listFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.NoteHandler.HandleSearch(ctx, keyword)
		if err != nil {
			return fmt.Errorf("searching notes: %w", err)
		}
		return showNotes(ctx, cmd.OutOrStdout(), d.NoteHandler, result.Notes, flags.plain)
	})
}

func showNotes(ctx context.Context, w io.Writer, handler *handlers.NoteHandler, notes []entities.Note, plain bool) error {
	if plain || len(notes) == 0 || !isInteractive() {
		displayNotes(w, notes)
		return nil
	}
	b := &browser{ctx: ctx, w: w, handler: handler, notes: notes}
	return b.run()
}

const (
	actionOpen   = "open"
	actionEdit   = "edit"
	actionDelete = "delete"
	actionBack   = "back"
	actionQuit   = "quit"
)

// browser lets the user pick a note and act on it until they quit.
type browser struct {
	ctx     context.Context
	w       io.Writer
	handler *handlers.NoteHandler
	notes   []entities.Note
}

func (b *browser) run() error {
	for len(b.notes) > 0 {
		options := make([]huh.Option[string], 0, len(b.notes)+1)
		for _, note := range b.notes {
			options = append(options, huh.NewOption(summarize(note.Content, SummaryWidth), note.ID))
		}
		options = append(options, huh.NewOption("Quit", actionQuit))

		id, err := selectOption(fmt.Sprintf("%d notes", len(b.notes)), options)
		if err != nil {
			return err
		}
		if id == "" || id == actionQuit {
			return nil
		}

		if err := b.act(id); err != nil {
			return err
		}
	}
	fmt.Fprintln(b.w, "No notes left.")
	return nil
}

func (b *browser) act(id string) error {
	i := b.find(id)
	if i == -1 {
		return nil
	}

	action, err := selectOption(summarize(b.notes[i].Content, SummaryWidth), []huh.Option[string]{
		huh.NewOption("Open", actionOpen),
		huh.NewOption("Edit", actionEdit),
		huh.NewOption("Delete", actionDelete),
		huh.NewOption("Back", actionBack),
	})
	if err != nil {
		return err
	}

	switch action {
	case actionOpen:
		displayNote(b.w, b.notes[i])
	case actionEdit:
		content, err := editContent("Edit note", b.notes[i].Content)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if content == b.notes[i].Content {
			fmt.Fprintln(b.w, "No changes.")
			return nil
		}
		note, err := b.handler.HandleModify(b.ctx, id, content)
		if err != nil {
			return fmt.Errorf("modifying note: %w", err)
		}
		b.notes[i] = *note
		fmt.Fprintf(b.w, "Modified note: %s\n", id)
	case actionDelete:
		ok, err := confirmAction("Delete this note?")
		if err != nil || !ok {
			return err
		}
		if _, err := b.handler.HandleRemove(b.ctx, []string{id}); err != nil {
			return fmt.Errorf("removing note: %w", err)
		}
		b.notes = append(b.notes[:i], b.notes[i+1:]...)
		fmt.Fprintf(b.w, "Removed note: %s\n", id)
	}
	return nil
}

func (b *browser) find(id string) int {
	for i := range b.notes {
		if b.notes[i].ID == id {
			return i
		}
	}
	return -1
}
