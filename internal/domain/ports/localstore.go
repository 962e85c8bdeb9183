// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/mens/internal/domain/entities"
)

// LocalStore is the durable home of the local note set.
// Every mutation loads the whole document, transforms it and rewrites it.
// Implementations are not safe for concurrent use by multiple processes.
type LocalStore interface {
	// Load returns the persisted document, creating an empty one if none exists.
	Load(ctx context.Context) (*entities.Document, error)

	// Add persists a new note. It fails with a DuplicateIDError if the id exists
	// and with a ValidationError if the note is malformed.
	Add(ctx context.Context, note *entities.Note) (*entities.Note, error)

	// Remove deletes the given ids. Unknown ids are ignored, and every
	// requested id is returned.
	Remove(ctx context.Context, ids []string) ([]string, error)

	// Modify replaces the stored note with the same id. It fails with a
	// NotFoundError if the id is absent. Identical content is a no-op that
	// returns the stored record.
	Modify(ctx context.Context, note *entities.Note) (*entities.Note, error)

	// Clear removes every note and bumps the document mTime.
	Clear(ctx context.Context) error

	// ReplaceAll overwrites the whole note set. Used by sync and import.
	ReplaceAll(ctx context.Context, notes []entities.Note) error
}
