package ports

import "context"

// MetaFileName is the reserved metadata file present in every remote resource.
// It is never treated as a note.
const MetaFileName = "#mens.yaml"

// Resource identifies a remote container of note files.
type Resource struct {
	ID string
	// Handle is an optional secondary identifier (for example a GraphQL node id).
	Handle string
}

// Remote is a flat bag of files living in one remote resource.
// Credentials are opaque tokens; their meaning depends on the implementation.
type Remote interface {
	// ListNoteFiles returns the raw content of every file except MetaFileName.
	// A missing resource yields an error matching domain.ErrResourceNotFound.
	ListNoteFiles(ctx context.Context, token, resourceID string) ([]string, error)

	// CreateResource provisions an empty resource holding only MetaFileName.
	CreateResource(ctx context.Context, token string) (*Resource, error)

	// ReplaceAllFiles makes the resource hold exactly the given files
	// (plus MetaFileName), keyed by file name.
	ReplaceAllFiles(ctx context.Context, token, resourceID string, files map[string]string) error
}
