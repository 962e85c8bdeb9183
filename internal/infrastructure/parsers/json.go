package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses notes from a JSON array.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed notes.
func (p *JSONParser) Parse(r io.Reader) ([]RawNote, error) {
	var notes []RawNote

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&notes); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range notes {
		notes[i].LineNum = i + 1
	}

	return notes, nil
}
