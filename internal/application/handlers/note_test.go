package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/domain/mocks"
	"github.com/ersonp/mens/internal/domain/services"
)

const (
	liveID    = "V1StGXR8_Z5jdHi6B-myA"
	droppedID = "V1StGXR8_Z5jdHi6B-myB"
)

func newTestNoteHandler(store *mocks.LocalStore) *NoteHandler {
	return NewNoteHandler(services.NewNoteService(store, services.NewVersioner(), &mocks.Renderer{}, nil))
}

func storedNote(id, content string, dropped bool) entities.Note {
	return entities.Note{ID: id, Content: content, CTime: 1, MTime: 1, Version: "v1", History: []string{}, Dropped: dropped}
}

func TestNoteHandler_HandleList(t *testing.T) {
	store := mocks.NewLocalStore(
		storedNote(liveID, "visible", false),
		storedNote(droppedID, "tombstone", true),
	)
	handler := newTestNoteHandler(store)

	tests := []struct {
		name        string
		withDropped bool
		wantIDs     []string
	}{
		{name: "hides dropped notes", withDropped: false, wantIDs: []string{liveID}},
		{name: "includes dropped notes", withDropped: true, wantIDs: []string{liveID, droppedID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler.HandleList(t.Context(), tt.withDropped)
			require.NoError(t, err)

			ids := make([]string, 0, len(result.Notes))
			for _, n := range result.Notes {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), result.Total)
		})
	}
}

func TestNoteHandler_HandleSearch(t *testing.T) {
	store := mocks.NewLocalStore(
		storedNote(liveID, "**bold** plan", false),
		storedNote(droppedID, "bold plan", true),
	)
	handler := newTestNoteHandler(store)

	result, err := handler.HandleSearch(t.Context(), "bold plan")

	require.NoError(t, err)
	require.Len(t, result.Notes, 1)
	assert.Equal(t, liveID, result.Notes[0].ID)

	empty, err := handler.HandleSearch(t.Context(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, empty.Notes)
	assert.Equal(t, 0, empty.Total)
}

func TestNoteHandler_Lifecycle(t *testing.T) {
	store := mocks.NewLocalStore()
	handler := newTestNoteHandler(store)

	added, err := handler.HandleAdd(t.Context(), "draft")
	require.NoError(t, err)

	modified, err := handler.HandleModify(t.Context(), added.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, []string{added.Version}, modified.History)

	got, err := handler.HandleGet(t.Context(), added.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)

	info, err := handler.HandleInfo(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, info.Count)

	removed, err := handler.HandleRemove(t.Context(), []string{added.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{added.ID}, removed)

	got, err = handler.HandleGet(t.Context(), added.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNoteHandler_HandleModify_NotFound(t *testing.T) {
	handler := newTestNoteHandler(mocks.NewLocalStore())

	_, err := handler.HandleModify(t.Context(), liveID, "x")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteHandler_HandleClear(t *testing.T) {
	store := mocks.NewLocalStore(storedNote(liveID, "a", false))
	handler := newTestNoteHandler(store)

	require.NoError(t, handler.HandleClear(t.Context()))

	result, err := handler.HandleList(t.Context(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 1, store.ClearCallCount)
}
