package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

func sampleNotes() []entities.Note {
	return []entities.Note{
		{
			ID:      "0b6f7a8e-0000-4000-8000-000000000001",
			Content: "# Groceries\n- milk",
			CTime:   1700000000000,
			MTime:   1700000060000,
			Version: "01HF0000000000000000000002",
			History: []string{"01HF0000000000000000000001"},
		},
		{
			ID:      "0b6f7a8e-0000-4000-8000-000000000002",
			Content: "a | b",
			CTime:   1700000000000,
			MTime:   1700000000000,
			Dropped: true,
			DTime:   1700000120000,
			Version: "01HF0000000000000000000003",
			History: []string{},
		},
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	err := formatJSON(&buf, sampleNotes())
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	require.Len(t, parsed, 2)
	assert.Equal(t, "# Groceries\n- milk", parsed[0]["content"])
	assert.Equal(t, "01HF0000000000000000000002", parsed[0]["version"])
	assert.Equal(t, []any{"01HF0000000000000000000001"}, parsed[0]["history"])
	assert.NotContains(t, parsed[0], "dropped")
	assert.Equal(t, true, parsed[1]["dropped"])
}

func TestFormatJSON_EmptyNotes(t *testing.T) {
	var buf bytes.Buffer
	err := formatJSON(&buf, []entities.Note{})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatYAML_Reimportable(t *testing.T) {
	doc := entities.Document{CTime: 1700000000000, MTime: 1700000120000, Notes: sampleNotes()}

	var buf bytes.Buffer
	require.NoError(t, formatYAML(&buf, doc))

	var decoded entities.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc, decoded)

	raw, err := parsers.ForFormat("yaml").Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, doc.Notes[0].ID, raw[0].ID)
	assert.Equal(t, doc.Notes[0].History, raw[0].History)
}

func TestFormatMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := formatMarkdown(&buf, sampleNotes())
	require.NoError(t, err)

	result := buf.String()
	assert.Contains(t, result, "# Exported Notes")
	assert.Contains(t, result, "Total: 2 notes")
	assert.Contains(t, result, "| ID | Modified | Versions | Summary |")
	assert.Contains(t, result, "| 0b6f7a8e-0000-4000-8000-000000000001 | 2023-11-14 22:14 | 2 | # Groceries |")
	assert.Contains(t, result, "~~a \\| b~~")
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"with|pipe", "with\\|pipe"},
		{"with\nnewline", "with newline"},
		{"both|and\nnewline", "both\\|and newline"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeMarkdown(tt.input))
		})
	}
}

func TestExporter_ExportToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "notes.json")
	var stdout bytes.Buffer

	e := &exporter{format: "json", output: output, stdout: &stdout}
	err := e.export(entities.Document{Notes: sampleNotes()})
	require.NoError(t, err)

	assert.Equal(t, "Exported 2 notes to "+output+"\n", stdout.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "["))
}

func TestExporter_UnknownFormat(t *testing.T) {
	e := &exporter{format: "csv", stdout: &bytes.Buffer{}}
	err := e.export(entities.Document{Notes: sampleNotes()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: csv")
}
