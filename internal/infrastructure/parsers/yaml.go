package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses notes from YAML. It accepts either a sequence of notes or
// a local document with an "entities" list.
type YAMLParser struct{}

type yamlDocument struct {
	Notes []RawNote `yaml:"entities"`
}

// Parse reads YAML from the reader and returns parsed notes.
func (p *YAMLParser) Parse(r io.Reader) ([]RawNote, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return []RawNote{}, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	var notes []RawNote
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&notes); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case yaml.MappingNode:
		var doc yamlDocument
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		notes = doc.Notes
	default:
		return nil, errors.New("parsing YAML: expected a list of notes or a document with entities")
	}

	for i := range notes {
		notes[i].LineNum = i + 1
	}

	if notes == nil {
		notes = []RawNote{}
	}
	return notes, nil
}
