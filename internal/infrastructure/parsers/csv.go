package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVParser parses notes from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed notes.
// Expected columns: content (required), id, cTime, mTime, version, history.
// history holds versions separated by '|'.
func (p *CSVParser) Parse(r io.Reader) ([]RawNote, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	if _, ok := colIndex["content"]; !ok {
		return nil, fmt.Errorf("missing required column: content")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawNotes.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawNote, error) {
	var notes []RawNote
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		note, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// parseRecord converts a CSV record to a RawNote.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawNote, error) {
	note := RawNote{
		ID:      getColumn(record, colIndex, "id"),
		Content: getColumn(record, colIndex, "content"),
		Version: getColumn(record, colIndex, "version"),
		LineNum: lineNum,
	}

	if history := getColumn(record, colIndex, "history"); history != "" {
		note.History = strings.Split(history, "|")
	}

	for _, col := range []struct {
		name string
		dst  *int64
	}{
		{"cTime", &note.CTime},
		{"mTime", &note.MTime},
	} {
		raw := getColumn(record, colIndex, col.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return RawNote{}, fmt.Errorf("line %d: invalid %s value %q: %w", lineNum, col.name, raw, err)
		}
		*col.dst = v
	}

	return note, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
