// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
)

// LocalStore is an in-memory implementation of ports.LocalStore.
type LocalStore struct {
	Doc entities.Document
	Now int64

	LoadErr       error
	Err           error
	ReplaceAllErr error

	// Call tracking
	LoadCallCount       int
	AddCallCount        int
	RemoveCallCount     int
	ModifyCallCount     int
	ClearCallCount      int
	ReplaceAllCallCount int
	WriteCount          int
}

// NewLocalStore creates an empty mock store holding the given notes.
func NewLocalStore(notes ...entities.Note) *LocalStore {
	s := &LocalStore{Doc: entities.Document{CTime: 1, MTime: 1}}
	for _, n := range notes {
		s.Doc.Notes = append(s.Doc.Notes, n.Clone())
	}
	return s
}

// Load returns a copy of the held document.
func (m *LocalStore) Load(_ context.Context) (*entities.Document, error) {
	m.LoadCallCount++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	doc := m.Doc.Clone()
	return &doc, nil
}

// Add appends a note, enforcing the id primary key.
func (m *LocalStore) Add(_ context.Context, note *entities.Note) (*entities.Note, error) {
	m.AddCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}
	if m.Doc.Find(note.ID) != -1 {
		return nil, &domain.DuplicateIDError{ID: note.ID}
	}
	m.Doc.Notes = append(m.Doc.Notes, note.Clone())
	m.WriteCount++
	stored := note.Clone()
	return &stored, nil
}

// Remove deletes the ids that exist and reports all of them.
func (m *LocalStore) Remove(_ context.Context, ids []string) ([]string, error) {
	m.RemoveCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, id := range ids {
		if i := m.Doc.Find(id); i != -1 {
			m.Doc.Notes = append(m.Doc.Notes[:i], m.Doc.Notes[i+1:]...)
		}
	}
	m.WriteCount++
	return append([]string(nil), ids...), nil
}

// Modify replaces a stored note unless its content is unchanged.
func (m *LocalStore) Modify(_ context.Context, note *entities.Note) (*entities.Note, error) {
	m.ModifyCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	i := m.Doc.Find(note.ID)
	if i == -1 {
		return nil, &domain.NotFoundError{ID: note.ID}
	}
	if m.Doc.Notes[i].Content == note.Content {
		stored := m.Doc.Notes[i].Clone()
		return &stored, nil
	}
	m.Doc.Notes[i] = note.Clone()
	m.WriteCount++
	stored := note.Clone()
	return &stored, nil
}

// Clear drops every note.
func (m *LocalStore) Clear(_ context.Context) error {
	m.ClearCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Doc.Notes = nil
	m.Doc.MTime = m.Now
	m.WriteCount++
	return nil
}

// ReplaceAll overwrites the note set.
func (m *LocalStore) ReplaceAll(_ context.Context, notes []entities.Note) error {
	m.ReplaceAllCallCount++
	if m.ReplaceAllErr != nil {
		return m.ReplaceAllErr
	}
	if m.Err != nil {
		return m.Err
	}
	m.Doc.Notes = make([]entities.Note, len(notes))
	for i, n := range notes {
		m.Doc.Notes[i] = n.Clone()
	}
	m.WriteCount++
	return nil
}
