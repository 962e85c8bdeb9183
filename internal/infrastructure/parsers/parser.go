// Package parsers reads and writes notes in external formats: import files
// and the per-note files stored in a remote resource.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawNote is a note read from an external source before validation.
// Lineage fields are optional; notes without a version are versioned on import.
type RawNote struct {
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Content string   `json:"content" yaml:"content"`
	CTime   int64    `json:"cTime,omitempty" yaml:"cTime,omitempty"`
	MTime   int64    `json:"mTime,omitempty" yaml:"mTime,omitempty"`
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
	History []string `json:"history,omitempty" yaml:"history,omitempty"`
	Dropped bool     `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	DTime   int64    `json:"dTime,omitempty" yaml:"dTime,omitempty"`
	LineNum int      `json:"-" yaml:"-"` // Record position in source file (set by parser)
}

// Parser defines the interface for parsing notes from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawNote, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "yaml", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil
	}
	return ForFormat(ext)
}
