package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
)

func TestVersioner_Bump(t *testing.T) {
	tests := []struct {
		name        string
		note        entities.Note
		wantVersion string
		wantHistory []string
	}{
		{
			name:        "first version records no history",
			note:        entities.Note{ID: "V1StGXR8_Z5jdHi6B-myT", Content: "a"},
			wantVersion: "v1",
			wantHistory: []string{},
		},
		{
			name:        "second version appends the old one",
			note:        entities.Note{ID: "V1StGXR8_Z5jdHi6B-myT", Content: "a", Version: "v0", History: []string{}},
			wantVersion: "v1",
			wantHistory: []string{"v0"},
		},
		{
			name:        "history keeps its order",
			note:        entities.Note{ID: "V1StGXR8_Z5jdHi6B-myT", Content: "a", Version: "c", History: []string{"a", "b"}},
			wantVersion: "v1",
			wantHistory: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVersioner()
			note := tt.note

			v.Bump(&note)

			assert.Equal(t, tt.wantVersion, note.Version)
			assert.Equal(t, tt.wantHistory, note.History)
			assert.Equal(t, testEpoch, note.MTime)
		})
	}
}

func TestVersioner_NewNote(t *testing.T) {
	v := newTestVersioner()

	note, err := v.NewNote("hello")
	require.NoError(t, err)

	assert.Equal(t, "00000000-0000-4000-8000-000000000001", note.ID)
	assert.Equal(t, testEpoch, note.CTime)
	assert.Equal(t, testEpoch, note.MTime)
	assert.Equal(t, "v1", note.Version)
	assert.Empty(t, note.History)
}

func TestVersioner_NewNote_EmptyContent(t *testing.T) {
	_, err := newTestVersioner().NewNote("")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewVersioner_DefaultsAreUnique(t *testing.T) {
	v := NewVersioner()

	a, err := v.NewNote("a")
	require.NoError(t, err)
	b, err := v.NewNote("b")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Version, b.Version)
	assert.Len(t, a.ID, entities.UUIDLength)
}
