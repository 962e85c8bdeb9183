package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/mens/internal/domain/entities"
)

type exportFlags struct {
	format string
	output string
	all    bool
}

type exporter struct {
	format string
	output string
	stdout io.Writer
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes to a file",
		Long: `Exports notes to JSON, YAML, or markdown.
YAML output is a full document and can be imported again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, yaml, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "Include dropped notes")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validExportFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validExportFormats)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		list, err := d.NoteHandler.HandleList(ctx, flags.all)
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}
		if list.Total == 0 {
			return fmt.Errorf("no notes found to export")
		}

		info, err := d.NoteHandler.HandleInfo(ctx)
		if err != nil {
			return fmt.Errorf("reading document info: %w", err)
		}

		e := &exporter{
			format: flags.format,
			output: flags.output,
			stdout: cmd.OutOrStdout(),
		}
		doc := entities.Document{CTime: info.CTime, MTime: info.MTime, Notes: list.Notes}
		return e.export(doc)
	})
}

func (e *exporter) export(doc entities.Document) (err error) {
	w := e.stdout

	if e.output != "" {
		f, err := os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := e.formatNotes(w, doc); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Fprintf(e.stdout, "Exported %d notes to %s\n", len(doc.Notes), e.output)
	}

	return nil
}

func (e *exporter) formatNotes(w io.Writer, doc entities.Document) error {
	switch e.format {
	case "json":
		return formatJSON(w, doc.Notes)
	case "yaml":
		return formatYAML(w, doc)
	case "markdown":
		return formatMarkdown(w, doc.Notes)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

func formatJSON(w io.Writer, notes []entities.Note) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(notes)
}

func formatYAML(w io.Writer, doc entities.Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}

func formatMarkdown(w io.Writer, notes []entities.Note) error {
	if _, err := fmt.Fprintf(w, "# Exported Notes\n\nTotal: %d notes\n\n", len(notes)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| ID | Modified | Versions | Summary |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|----|----------|----------|---------|\n"); err != nil {
		return err
	}

	for _, n := range notes {
		summary := summarize(n.Content, SummaryWidth)
		if n.Dropped {
			summary = "~~" + summary + "~~"
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %d | %s |\n",
			n.ID,
			entities.FromMillis(n.MTime).UTC().Format("2006-01-02 15:04"),
			len(n.Lineage()),
			escapeMarkdown(summary),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
