package services

import (
	"fmt"
	"time"

	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/domain/mocks"
)

const testEpoch = int64(1700000000000)

// newTestVersioner returns a Versioner with a fixed clock, sequential
// versions (v1, v2, ...) and sequential UUIDs.
func newTestVersioner() *Versioner {
	versions, ids := 0, 0
	return &Versioner{
		now: func() time.Time { return entities.FromMillis(testEpoch) },
		newVersion: func() string {
			versions++
			return fmt.Sprintf("v%d", versions)
		},
		newID: func() string {
			ids++
			return fmt.Sprintf("00000000-0000-4000-8000-%012d", ids)
		},
	}
}

func newTestNoteService(store *mocks.LocalStore) *NoteService {
	return NewNoteService(store, newTestVersioner(), &mocks.Renderer{}, nil)
}

func testNote(id, content, version string, history ...string) entities.Note {
	if history == nil {
		history = []string{}
	}
	return entities.Note{
		ID:      id,
		Content: content,
		CTime:   testEpoch - 1000,
		MTime:   testEpoch - 1000,
		Version: version,
		History: history,
	}
}
