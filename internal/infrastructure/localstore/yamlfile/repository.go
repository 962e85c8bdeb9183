// Package yamlfile provides a YAML file implementation of the LocalStore interface.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.LocalStore on a single YAML document.
// Every mutation rereads the file and rewrites it in full.
type Repository struct {
	path string
}

// NewRepository creates a repository backed by the document at path.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("document path is required")
	}
	return &Repository{path: path}, nil
}

// Path returns the document file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureFile creates an empty document if none exists.
func (r *Repository) EnsureFile(ctx context.Context) error {
	_, err := r.Load(ctx)
	return err
}

// Load reads the document, creating it when missing.
func (r *Repository) Load(ctx context.Context) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		now := entities.Millis(timeNow())
		doc := &entities.Document{CTime: now, MTime: now, Notes: []entities.Note{}}
		if err := r.write(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc := &entities.Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", r.path, err)
	}
	if doc.Notes == nil {
		doc.Notes = []entities.Note{}
	}
	for i := range doc.Notes {
		if doc.Notes[i].History == nil {
			doc.Notes[i].History = []string{}
		}
	}
	return doc, nil
}

// Add appends a note to the document.
func (r *Repository) Add(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	if err := note.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Find(note.ID) != -1 {
		return nil, &domain.DuplicateIDError{ID: note.ID}
	}

	doc.Notes = append(doc.Notes, note.Clone())
	if err := r.save(doc); err != nil {
		return nil, err
	}

	stored := note.Clone()
	return &stored, nil
}

// Remove deletes the given ids. Unknown ids are ignored.
func (r *Repository) Remove(ctx context.Context, ids []string) ([]string, error) {
	doc, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := doc.Notes[:0]
	for _, note := range doc.Notes {
		if !drop[note.ID] {
			kept = append(kept, note)
		}
	}

	if len(kept) != len(doc.Notes) {
		doc.Notes = kept
		if err := r.save(doc); err != nil {
			return nil, err
		}
	}

	return append([]string{}, ids...), nil
}

// Modify replaces the stored note with the same id.
func (r *Repository) Modify(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	if err := note.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := doc.Find(note.ID)
	if i == -1 {
		return nil, &domain.NotFoundError{ID: note.ID}
	}
	if doc.Notes[i].Content == note.Content {
		stored := doc.Notes[i].Clone()
		return &stored, nil
	}

	doc.Notes[i] = note.Clone()
	if err := r.save(doc); err != nil {
		return nil, err
	}

	stored := note.Clone()
	return &stored, nil
}

// Clear removes every note, keeping the document cTime.
func (r *Repository) Clear(ctx context.Context) error {
	doc, err := r.Load(ctx)
	if err != nil {
		return err
	}
	doc.Notes = []entities.Note{}
	return r.save(doc)
}

// ReplaceAll overwrites the note set after validating every note.
func (r *Repository) ReplaceAll(ctx context.Context, notes []entities.Note) error {
	seen := make(map[string]bool, len(notes))
	for i := range notes {
		if err := notes[i].Validate(); err != nil {
			return err
		}
		if seen[notes[i].ID] {
			return &domain.DuplicateIDError{ID: notes[i].ID}
		}
		seen[notes[i].ID] = true
	}

	doc, err := r.Load(ctx)
	if err != nil {
		return err
	}

	doc.Notes = make([]entities.Note, len(notes))
	for i, note := range notes {
		doc.Notes[i] = note.Clone()
	}
	return r.save(doc)
}

// save stamps the document mTime and writes it.
func (r *Repository) save(doc *entities.Document) error {
	doc.MTime = entities.Millis(timeNow())
	return r.write(doc)
}

// write replaces the document atomically through a temp file in the same directory.
func (r *Repository) write(doc *entities.Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".local-*.yml")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing document: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}
