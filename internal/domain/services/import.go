package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing notes during import.
type ConflictStrategy string

const (
	// ConflictSkip skips notes that already exist (by ID).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite replaces the content of existing notes, extending their lineage.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing notes
}

// ImportError represents an error for a specific note during import.
type ImportError struct {
	Line    int    // Record number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Updated  int
	Skipped  int
	Errors   []ImportError
}

// ImportService imports notes from external files into the local store.
type ImportService struct {
	notes     *NoteService
	versioner *Versioner
}

// NewImportService creates a new import service.
func NewImportService(notes *NoteService, versioner *Versioner) *ImportService {
	return &ImportService{
		notes:     notes,
		versioner: versioner,
	}
}

// Import validates raw notes and writes them with a single ReplaceAll.
func (s *ImportService) Import(ctx context.Context, rawNotes []parsers.RawNote, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	validNotes, validationErrors := s.validateNotes(rawNotes)
	result.Errors = validationErrors

	if len(validNotes) == 0 {
		return result, nil
	}

	incoming := s.convertToEntities(validNotes)

	existing, err := s.notes.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}

	merged, imported, updated, skipped := s.applyConflictStrategy(existing, incoming, opts.OnConflict)
	result.Imported = imported
	result.Updated = updated
	result.Skipped = skipped

	if opts.DryRun || imported+updated == 0 {
		return result, nil
	}

	if err := s.notes.ReplaceAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("saving notes: %w", err)
	}

	return result, nil
}

// validateNotes validates raw notes and returns valid ones with any errors.
func (s *ImportService) validateNotes(rawNotes []parsers.RawNote) ([]parsers.RawNote, []ImportError) {
	valid := make([]parsers.RawNote, 0, len(rawNotes))
	var errs []ImportError
	seen := make(map[string]bool)

	for i := range rawNotes {
		raw := &rawNotes[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if err := validateRawNote(raw, lineNum); err != nil {
			errs = append(errs, *err)
			continue
		}

		if raw.ID != "" {
			if seen[raw.ID] {
				errs = append(errs, ImportError{Line: lineNum, Field: "id", Value: raw.ID, Message: fmt.Sprintf("duplicate id %q in import", raw.ID)})
				continue
			}
			seen[raw.ID] = true
		}

		valid = append(valid, *raw)
	}

	return valid, errs
}

// validateRawNote validates a single raw note and returns an error if invalid.
func validateRawNote(raw *parsers.RawNote, lineNum int) *ImportError {
	if raw.Content == "" {
		return &ImportError{Line: lineNum, Field: "content", Message: "missing required field: content"}
	}

	if raw.ID != "" {
		if err := entities.ValidateID(raw.ID); err != nil {
			msg := err.Error()
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				msg = vErr.Message
			}
			return &ImportError{Line: lineNum, Field: "id", Value: raw.ID, Message: fmt.Sprintf("invalid id: %s", msg)}
		}
	}

	if raw.Version == "" && len(raw.History) > 0 {
		return &ImportError{Line: lineNum, Field: "version", Message: "history given without a version"}
	}

	return nil
}

// convertToEntities converts raw notes to versioned domain notes.
func (s *ImportService) convertToEntities(rawNotes []parsers.RawNote) []entities.Note {
	notes := make([]entities.Note, 0, len(rawNotes))
	now := s.versioner.Now()

	for i := range rawNotes {
		raw := &rawNotes[i]
		id := raw.ID
		if id == "" {
			id = s.versioner.newID()
		}

		note := entities.Note{
			ID:      id,
			Content: raw.Content,
			CTime:   raw.CTime,
			MTime:   raw.MTime,
			Version: raw.Version,
			History: append([]string{}, raw.History...),
			Dropped: raw.Dropped,
			DTime:   raw.DTime,
		}
		if note.CTime == 0 {
			note.CTime = now
		}
		if note.Version == "" {
			s.versioner.Bump(&note)
		}
		if note.MTime == 0 {
			note.MTime = note.CTime
		}

		notes = append(notes, note)
	}

	return notes
}

// applyConflictStrategy merges incoming notes into existing ones.
func (s *ImportService) applyConflictStrategy(existing, incoming []entities.Note, onConflict ConflictStrategy) (merged []entities.Note, imported, updated, skipped int) {
	merged = make([]entities.Note, len(existing))
	index := make(map[string]int, len(existing))
	for i, note := range existing {
		merged[i] = note.Clone()
		index[note.ID] = i
	}

	for _, note := range incoming {
		i, exists := index[note.ID]
		if !exists {
			index[note.ID] = len(merged)
			merged = append(merged, note)
			imported++
			continue
		}

		if onConflict != ConflictOverwrite || merged[i].Content == note.Content {
			skipped++
			continue
		}

		// Overwrite keeps the local lineage and cTime
		merged[i].Content = note.Content
		s.versioner.Bump(&merged[i])
		updated++
	}

	return merged, imported, updated, skipped
}
