package parsers

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/mens/internal/domain/entities"
)

// MetaContent is the body of the metadata file written into a new remote resource.
const MetaContent = "app: mens\nformat: 1\n"

// NoteFileName is the remote file name holding the note with the given id.
func NoteFileName(id string) string {
	return id + ".yaml"
}

// EncodeNote serializes a note into the YAML record stored remotely.
func EncodeNote(note entities.Note) (string, error) {
	data, err := yaml.Marshal(note.Clone())
	if err != nil {
		return "", fmt.Errorf("encoding note %s: %w", note.ID, err)
	}
	return string(data), nil
}

// DecodeNote parses a remote YAML record and validates it.
func DecodeNote(content string) (entities.Note, error) {
	var note entities.Note
	if err := yaml.Unmarshal([]byte(content), &note); err != nil {
		return entities.Note{}, fmt.Errorf("decoding note: %w", err)
	}
	if err := note.Validate(); err != nil {
		return entities.Note{}, fmt.Errorf("decoding note %q: %w", note.ID, err)
	}
	if note.History == nil {
		note.History = []string{}
	}
	return note, nil
}

// EncodeNoteFiles builds the remote file set for notes, one file per id.
func EncodeNoteFiles(notes []entities.Note) (map[string]string, error) {
	files := make(map[string]string, len(notes))
	for _, note := range notes {
		content, err := EncodeNote(note)
		if err != nil {
			return nil, err
		}
		files[NoteFileName(note.ID)] = content
	}
	return files, nil
}
