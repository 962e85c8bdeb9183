package main

import "time"

// Defaults for CLI commands.
const (
	DefaultWatchDebounce = 2 * time.Second
	SummaryWidth         = 60
)

// Valid output formats.
var (
	validExportFormats = []string{"json", "yaml", "markdown"}
	validGetFormats    = []string{"yaml", "json"}
)
