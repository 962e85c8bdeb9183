package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/domain/ports"
)

// DocumentInfo describes the local document without exposing its notes.
type DocumentInfo struct {
	CTime int64
	MTime int64
	Count int
}

// NoteService is the caller-facing API over the local store. It keeps an
// in-memory copy of the document that is reloaded after every persisted
// mutation.
type NoteService struct {
	store     ports.LocalStore
	versioner *Versioner
	renderer  ports.PlainTextRenderer
	logger    *slog.Logger

	loaded bool
	doc    entities.Document
}

// NewNoteService creates a NoteService. A nil logger discards output.
func NewNoteService(store ports.LocalStore, versioner *Versioner, renderer ports.PlainTextRenderer, logger *slog.Logger) *NoteService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &NoteService{
		store:     store,
		versioner: versioner,
		renderer:  renderer,
		logger:    logger,
	}
}

// Reload re-reads the document from the store.
func (s *NoteService) Reload(ctx context.Context) error {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	s.doc = doc.Clone()
	s.loaded = true
	return nil
}

func (s *NoteService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.Reload(ctx)
}

// Add creates a note from content and persists it.
func (s *NoteService) Add(ctx context.Context, content string) (*entities.Note, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	note, err := s.versioner.NewNote(content)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.Add(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("adding note: %w", err)
	}
	s.logger.Info("note added", "id", stored.ID, "version", stored.Version)

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

// Remove deletes the given ids. Every requested id is reported as removed.
func (s *NoteService) Remove(ctx context.Context, ids []string) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	removed, err := s.store.Remove(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("removing notes: %w", err)
	}
	s.logger.Info("notes removed", "ids", removed)

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return removed, nil
}

// Modify replaces the content of note id. Identical content returns the
// stored note untouched.
func (s *NoteService) Modify(ctx context.Context, id, content string) (*entities.Note, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	i := s.doc.Find(id)
	if i == -1 {
		return nil, &domain.NotFoundError{ID: id}
	}

	current := s.doc.Notes[i].Clone()
	if current.Content == content {
		return &current, nil
	}

	updated := current.Clone()
	updated.Content = content
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	s.versioner.Bump(&updated)

	stored, err := s.store.Modify(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("modifying note: %w", err)
	}
	s.logger.Info("note modified", "id", stored.ID, "version", stored.Version, "history", len(stored.History))

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

// Search returns notes whose plain-text rendering contains keyword.
// The match is case-sensitive.
func (s *NoteService) Search(ctx context.Context, keyword string) ([]entities.Note, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	results := []entities.Note{}
	for _, note := range s.doc.Notes {
		if strings.Contains(s.renderer.PlainText(note.Content), keyword) {
			results = append(results, note.Clone())
		}
	}
	return results, nil
}

// Get returns the note with the given id, or nil if it does not exist.
func (s *NoteService) Get(ctx context.Context, id string) (*entities.Note, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	i := s.doc.Find(id)
	if i == -1 {
		return nil, nil
	}
	note := s.doc.Notes[i].Clone()
	return &note, nil
}

// GetAll returns copies of every local note.
func (s *NoteService) GetAll(ctx context.Context) ([]entities.Note, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.doc.Clone().Notes, nil
}

// Clear removes all notes.
func (s *NoteService) Clear(ctx context.Context) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing notes: %w", err)
	}
	s.logger.Warn("all notes cleared")
	return s.Reload(ctx)
}

// ReplaceAll persists notes as the complete local set.
func (s *NoteService) ReplaceAll(ctx context.Context, notes []entities.Note) error {
	if err := s.store.ReplaceAll(ctx, notes); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	return s.Reload(ctx)
}

// Info returns document timestamps and the note count.
func (s *NoteService) Info(ctx context.Context) (*DocumentInfo, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return &DocumentInfo{CTime: s.doc.CTime, MTime: s.doc.MTime, Count: len(s.doc.Notes)}, nil
}
