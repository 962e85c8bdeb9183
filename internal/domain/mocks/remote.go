package mocks

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/ports"
)

// Remote is an in-memory implementation of ports.Remote.
// Resources maps resource id to file name to content.
type Remote struct {
	Resources map[string]map[string]string

	ListErr    error
	CreateErr  error
	ReplaceErr error

	// NextID is the id handed out by the next CreateResource call.
	NextID string

	// Call tracking
	ListCallCount    int
	CreateCallCount  int
	ReplaceCallCount int
	LastToken        string
}

// NewRemote creates a mock remote with no resources.
func NewRemote() *Remote {
	return &Remote{Resources: make(map[string]map[string]string)}
}

// ListNoteFiles returns every non-meta file, sorted by name.
func (m *Remote) ListNoteFiles(_ context.Context, token, resourceID string) ([]string, error) {
	m.ListCallCount++
	m.LastToken = token
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	files, ok := m.Resources[resourceID]
	if !ok || resourceID == "" {
		return nil, fmt.Errorf("resource %q: %w", resourceID, domain.ErrResourceNotFound)
	}
	var contents []string
	for _, name := range slices.Sorted(maps.Keys(files)) {
		if name == ports.MetaFileName {
			continue
		}
		contents = append(contents, files[name])
	}
	return contents, nil
}

// CreateResource registers an empty resource.
func (m *Remote) CreateResource(_ context.Context, token string) (*ports.Resource, error) {
	m.CreateCallCount++
	m.LastToken = token
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	id := m.NextID
	if id == "" {
		id = fmt.Sprintf("resource-%d", m.CreateCallCount)
	}
	m.Resources[id] = map[string]string{ports.MetaFileName: "kind: mens\n"}
	return &ports.Resource{ID: id, Handle: "handle-" + id}, nil
}

// ReplaceAllFiles swaps the resource content.
func (m *Remote) ReplaceAllFiles(_ context.Context, token, resourceID string, files map[string]string) error {
	m.ReplaceCallCount++
	m.LastToken = token
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	existing, ok := m.Resources[resourceID]
	if !ok {
		return fmt.Errorf("resource %q: %w", resourceID, domain.ErrResourceNotFound)
	}
	replaced := maps.Clone(files)
	if meta, ok := existing[ports.MetaFileName]; ok {
		replaced[ports.MetaFileName] = meta
	}
	m.Resources[resourceID] = replaced
	return nil
}
