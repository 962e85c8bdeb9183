package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/mens/internal/domain/mocks"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

func newTestImportService(store *mocks.LocalStore) (*ImportService, *NoteService) {
	versioner := newTestVersioner()
	notes := NewNoteService(store, versioner, &mocks.Renderer{}, nil)
	return NewImportService(notes, versioner), notes
}

func TestImportService_Import_ValidNotes(t *testing.T) {
	store := mocks.NewLocalStore()
	service, notes := newTestImportService(store)
	rawNotes := []parsers.RawNote{
		{Content: "plain note"},
		{ID: idA, Content: "with lineage", CTime: 5, MTime: 6, Version: "r2", History: []string{"r1"}},
	}

	result, err := service.Import(t.Context(), rawNotes, ImportOptions{OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, store.ReplaceAllCallCount)

	all, err := notes.GetAll(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "v1", all[0].Version)
	assert.Equal(t, testEpoch, all[0].CTime)

	kept, err := notes.Get(t.Context(), idA)
	require.NoError(t, err)
	assert.Equal(t, "r2", kept.Version)
	assert.Equal(t, []string{"r1"}, kept.History)
	assert.Equal(t, int64(5), kept.CTime)
	assert.Equal(t, int64(6), kept.MTime)
}

func TestImportService_Import_KeepsTombstones(t *testing.T) {
	store := mocks.NewLocalStore()
	service, notes := newTestImportService(store)

	doc := "cTime: 1\nmTime: 3\nentities:\n" +
		"  - id: " + idA + "\n" +
		"    content: gone\n" +
		"    cTime: 1\n" +
		"    mTime: 2\n" +
		"    dropped: true\n" +
		"    dTime: 3\n" +
		"    version: r1\n" +
		"    history: []\n"
	rawNotes, err := parsers.ForFormat("yaml").Parse(strings.NewReader(doc))
	require.NoError(t, err)

	result, err := service.Import(t.Context(), rawNotes, ImportOptions{OnConflict: ConflictSkip})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	got, err := notes.Get(t.Context(), idA)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Dropped)
	assert.Equal(t, int64(3), got.DTime)
	assert.Equal(t, "r1", got.Version)
}

func TestImportService_Import_ValidationErrors(t *testing.T) {
	store := mocks.NewLocalStore()
	service, _ := newTestImportService(store)
	rawNotes := []parsers.RawNote{
		{Content: ""},
		{ID: "bad-id", Content: "x"},
		{Content: "y", History: []string{"h1"}},
		{ID: idA, Content: "first"},
		{ID: idA, Content: "second"},
	}

	result, err := service.Import(t.Context(), rawNotes, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, "content", result.Errors[0].Field)
	assert.Equal(t, "id", result.Errors[1].Field)
	assert.Equal(t, "bad-id", result.Errors[1].Value)
	assert.Equal(t, "version", result.Errors[2].Field)
	assert.Contains(t, result.Errors[3].Message, "duplicate id")
	assert.Equal(t, 5, result.Errors[3].Line)
}

func TestImportService_Import_ConflictStrategies(t *testing.T) {
	tests := []struct {
		name        string
		strategy    ConflictStrategy
		content     string
		wantUpdated int
		wantSkipped int
		wantContent string
		wantHistory []string
	}{
		{
			name:        "skip leaves existing note",
			strategy:    ConflictSkip,
			content:     "imported",
			wantSkipped: 1,
			wantContent: "existing",
			wantHistory: []string{},
		},
		{
			name:        "overwrite extends lineage",
			strategy:    ConflictOverwrite,
			content:     "imported",
			wantUpdated: 1,
			wantContent: "imported",
			wantHistory: []string{"e1"},
		},
		{
			name:        "overwrite with identical content is skipped",
			strategy:    ConflictOverwrite,
			content:     "existing",
			wantSkipped: 1,
			wantContent: "existing",
			wantHistory: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewLocalStore(testNote(idA, "existing", "e1"))
			service, notes := newTestImportService(store)

			result, err := service.Import(t.Context(), []parsers.RawNote{{ID: idA, Content: tt.content}}, ImportOptions{OnConflict: tt.strategy})

			require.NoError(t, err)
			assert.Equal(t, 0, result.Imported)
			assert.Equal(t, tt.wantUpdated, result.Updated)
			assert.Equal(t, tt.wantSkipped, result.Skipped)

			note, err := notes.Get(t.Context(), idA)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, note.Content)
			assert.Equal(t, tt.wantHistory, note.History)
			assert.Equal(t, testEpoch-1000, note.CTime)
		})
	}
}

func TestImportService_Import_DryRun(t *testing.T) {
	store := mocks.NewLocalStore()
	service, _ := newTestImportService(store)

	result, err := service.Import(t.Context(), []parsers.RawNote{{Content: "a"}, {Content: "b"}}, ImportOptions{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, store.ReplaceAllCallCount)
}

func TestImportService_Import_NothingValid(t *testing.T) {
	store := mocks.NewLocalStore()
	service, _ := newTestImportService(store)

	result, err := service.Import(t.Context(), []parsers.RawNote{{Content: ""}}, ImportOptions{})

	require.NoError(t, err)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, store.LoadCallCount)
}

func TestImportService_Import_SaveError(t *testing.T) {
	store := mocks.NewLocalStore()
	store.ReplaceAllErr = errors.New("disk full")
	service, _ := newTestImportService(store)

	_, err := service.Import(t.Context(), []parsers.RawNote{{Content: "a"}}, ImportOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving notes")
}
