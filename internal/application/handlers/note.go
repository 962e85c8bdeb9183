package handlers

import (
	"context"

	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/domain/services"
)

// NoteHandler handles note operations at the application layer.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// NoteListResult contains the result of listing or searching notes.
type NoteListResult struct {
	Notes []entities.Note `json:"notes"`
	Total int             `json:"total"`
}

// HandleAdd creates a note from content.
func (h *NoteHandler) HandleAdd(ctx context.Context, content string) (*entities.Note, error) {
	return h.noteService.Add(ctx, content)
}

// HandleRemove deletes notes by id and echoes the requested ids.
func (h *NoteHandler) HandleRemove(ctx context.Context, ids []string) ([]string, error) {
	return h.noteService.Remove(ctx, ids)
}

// HandleModify replaces a note's content.
func (h *NoteHandler) HandleModify(ctx context.Context, id, content string) (*entities.Note, error) {
	return h.noteService.Modify(ctx, id, content)
}

// HandleGet returns one note, or nil if absent.
func (h *NoteHandler) HandleGet(ctx context.Context, id string) (*entities.Note, error) {
	return h.noteService.Get(ctx, id)
}

// HandleList returns all notes. Dropped notes are included only when withDropped is set.
func (h *NoteHandler) HandleList(ctx context.Context, withDropped bool) (*NoteListResult, error) {
	notes, err := h.noteService.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return newListResult(notes, withDropped), nil
}

// HandleSearch returns notes whose rendered text contains keyword.
func (h *NoteHandler) HandleSearch(ctx context.Context, keyword string) (*NoteListResult, error) {
	notes, err := h.noteService.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return newListResult(notes, false), nil
}

// HandleInfo returns document metadata.
func (h *NoteHandler) HandleInfo(ctx context.Context) (*services.DocumentInfo, error) {
	return h.noteService.Info(ctx)
}

// HandleClear removes every note.
func (h *NoteHandler) HandleClear(ctx context.Context) error {
	return h.noteService.Clear(ctx)
}

func newListResult(notes []entities.Note, withDropped bool) *NoteListResult {
	visible := make([]entities.Note, 0, len(notes))
	for _, note := range notes {
		if note.Dropped && !withDropped {
			continue
		}
		visible = append(visible, note)
	}
	return &NoteListResult{Notes: visible, Total: len(visible)}
}
