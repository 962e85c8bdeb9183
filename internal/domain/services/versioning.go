// Package services implements the note versioning, storage and sync use cases.
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/ersonp/mens/internal/domain/entities"
)

// Versioner assigns version identifiers and grows note lineage.
type Versioner struct {
	now        func() time.Time
	newVersion func() string
	newID      func() string
}

// NewVersioner creates a Versioner using ULID versions and UUID note ids.
func NewVersioner() *Versioner {
	return &Versioner{
		now:        time.Now,
		newVersion: func() string { return ulid.Make().String() },
		newID:      func() string { return uuid.New().String() },
	}
}

// Now returns the current time in epoch milliseconds.
func (v *Versioner) Now() int64 {
	return entities.Millis(v.now())
}

// NextVersion returns a fresh version identifier.
func (v *Versioner) NextVersion() string {
	return v.newVersion()
}

// Bump assigns a new version to note and records the superseded one.
// A note without a version gets one but no history entry.
func (v *Versioner) Bump(note *entities.Note) {
	old := note.Version
	note.Version = v.newVersion()
	note.MTime = v.Now()
	if note.History == nil {
		note.History = []string{}
	}
	if old != "" {
		note.History = append(note.History, old)
	}
}

// NewNote wraps content into a validated, versioned note with a fresh id.
func (v *Versioner) NewNote(content string) (*entities.Note, error) {
	note, err := entities.NewNote(v.newID(), content)
	if err != nil {
		return nil, err
	}
	note.CTime = v.Now()
	v.Bump(note)
	return note, nil
}
