package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
)

func newGetCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one note as a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")

	return cmd
}

func runGet(cmd *cobra.Command, id, format string) error {
	if !slices.Contains(validGetFormats, format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validGetFormats)
	}

	return withDeps(func(d *Deps) error {
		note, err := d.NoteHandler.HandleGet(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("loading note: %w", err)
		}
		if note == nil {
			return &domain.NotFoundError{ID: id}
		}
		return writeRecord(cmd.OutOrStdout(), *note, format)
	})
}

func writeRecord(w io.Writer, note entities.Note, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(note)
	}
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(note)
}
