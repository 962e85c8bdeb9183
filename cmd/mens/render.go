package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ersonp/mens/internal/application/handlers"
	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/domain/services"
)

var (
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	contentStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// summarize returns the first line of content cut to width runes.
func summarize(content string, width int) string {
	line, _, _ := strings.Cut(content, "\n")
	runes := []rune(line)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return line
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return entities.FromMillis(ms).Local().Format(time.DateTime)
}

func displayNotes(w io.Writer, notes []entities.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}

	fmt.Fprintf(w, "Showing %d notes:\n\n", len(notes))
	for _, note := range notes {
		fmt.Fprintf(w, "%s  %s\n", idStyle.Render(note.ID), summarize(note.Content, SummaryWidth))
	}
}

func displayNote(w io.Writer, note entities.Note) {
	fmt.Fprintln(w, headerStyle.Render("ID: "+note.ID))
	fmt.Fprintf(w, "  Version:  %s (%d earlier)\n", note.Version, len(note.History))
	fmt.Fprintf(w, "  Created:  %s\n", formatMillis(note.CTime))
	fmt.Fprintf(w, "  Modified: %s\n", formatMillis(note.MTime))
	if note.Dropped {
		fmt.Fprintf(w, "  Dropped:  %s\n", formatMillis(note.DTime))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, contentStyle.Render(note.Content))
}

type infoView struct {
	Info         *services.DocumentInfo
	ConfigPath   string
	DocumentPath string
	RemoteKind   string
	RemoteID     string
}

func displayInfo(w io.Writer, v infoView) {
	remoteID := v.RemoteID
	if remoteID == "" {
		remoteID = "(not created yet)"
	}

	fmt.Fprintln(w, headerStyle.Render("mens "+version))
	fmt.Fprintf(w, "  Notes:    %d\n", v.Info.Count)
	fmt.Fprintf(w, "  Created:  %s\n", formatMillis(v.Info.CTime))
	fmt.Fprintf(w, "  Modified: %s\n", formatMillis(v.Info.MTime))
	fmt.Fprintf(w, "  Config:   %s\n", v.ConfigPath)
	fmt.Fprintf(w, "  Document: %s\n", v.DocumentPath)
	fmt.Fprintf(w, "  Remote:   %s %s\n", v.RemoteKind, remoteID)
}

func displaySyncResult(w io.Writer, result *handlers.SyncResult) {
	switch result.Outcome {
	case handlers.SyncOK:
		r := result.Report
		if !r.Changed() {
			fmt.Fprintln(w, okStyle.Render("Already in sync."))
		} else {
			fmt.Fprintln(w, okStyle.Render("Synced."))
		}
		fmt.Fprintf(w, "  identical %d, local newer %d, remote newer %d, diverged %d, pulled %d, pushed %d\n",
			len(r.Identical), len(r.LocalNewer), len(r.RemoteNewer), len(r.Diverged), len(r.Pulled), r.Pushed)
		for _, id := range r.Diverged {
			fmt.Fprintln(w, warnStyle.Render("  diverged: "+id+" (both versions kept in content)"))
		}
	case handlers.SyncTransientFailure:
		fmt.Fprintln(w, warnStyle.Render("Remote was missing; created "+result.ResourceID+". Run sync again."))
	case handlers.SyncHardFailure:
		fmt.Fprintln(w, warnStyle.Render("Sync failed; local notes are unchanged."))
	}
}
