package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/domain/ports"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

// SyncService reconciles the local note set with one remote resource.
type SyncService struct {
	notes  *NoteService
	remote ports.Remote
	config ports.ConfigStore
	merger *Merger
	logger *slog.Logger
}

// NewSyncService creates a SyncService. A nil logger discards output.
func NewSyncService(notes *NoteService, remote ports.Remote, config ports.ConfigStore, merger *Merger, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyncService{
		notes:  notes,
		remote: remote,
		config: config,
		merger: merger,
		logger: logger,
	}
}

// Sync runs one sync transaction.
//
// It returns a *domain.TransientSyncError when the remote resource was missing
// and has been recreated, and a *domain.HardSyncError for any other failure.
// Local notes are only written after the remote accepted the merged set.
func (s *SyncService) Sync(ctx context.Context) (*entities.SyncReport, error) {
	token := s.config.Get(ports.ConfigRemoteToken)
	resourceID := s.config.Get(ports.ConfigRemoteID)

	local, err := s.notes.GetAll(ctx)
	if err != nil {
		return nil, &domain.HardSyncError{Op: "loading local notes", Cause: err}
	}

	remoteNotes, err := s.fetch(ctx, token, resourceID)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) || errors.Is(err, domain.ErrResourceNotConfig) {
			return nil, s.recreateResource(ctx, token, err)
		}
		return nil, err
	}

	report := &entities.SyncReport{}
	merged := s.merge(local, remoteNotes, report)

	files, err := parsers.EncodeNoteFiles(merged)
	if err != nil {
		return nil, &domain.HardSyncError{Op: "encoding notes", Cause: err}
	}
	if err := s.remote.ReplaceAllFiles(ctx, token, resourceID, files); err != nil {
		s.logger.Error("pushing notes failed", "resource", resourceID, "error", err)
		return nil, &domain.HardSyncError{Op: "pushing notes", Cause: err}
	}
	report.Pushed = len(files)

	if err := s.notes.ReplaceAll(ctx, merged); err != nil {
		return nil, &domain.HardSyncError{Op: "saving merged notes", Cause: err}
	}

	s.logger.Info("sync completed",
		"resource", resourceID,
		"identical", len(report.Identical),
		"local_newer", len(report.LocalNewer),
		"remote_newer", len(report.RemoteNewer),
		"diverged", len(report.Diverged),
		"pulled", len(report.Pulled),
		"pushed", report.Pushed,
	)
	return report, nil
}

// fetch lists and decodes every remote note.
func (s *SyncService) fetch(ctx context.Context, token, resourceID string) ([]entities.Note, error) {
	if resourceID == "" {
		return nil, domain.ErrResourceNotConfig
	}

	files, err := s.remote.ListNoteFiles(ctx, token, resourceID)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, err
		}
		s.logger.Error("fetching remote notes failed", "resource", resourceID, "error", err)
		return nil, &domain.HardSyncError{Op: "fetching remote notes", Cause: err}
	}

	notes := make([]entities.Note, 0, len(files))
	for _, content := range files {
		note, err := parsers.DecodeNote(content)
		if err != nil {
			return nil, &domain.HardSyncError{Op: "decoding remote notes", Cause: err}
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// merge folds remote notes into a copy of local and records each outcome.
func (s *SyncService) merge(local, remote []entities.Note, report *entities.SyncReport) []entities.Note {
	merged := make([]entities.Note, len(local))
	index := make(map[string]int, len(local))
	for i, note := range local {
		merged[i] = note.Clone()
		index[note.ID] = i
	}

	var notFound []entities.Note
	for _, remoteNote := range remote {
		i, ok := index[remoteNote.ID]
		if !ok {
			notFound = append(notFound, remoteNote)
			continue
		}

		comparison := s.merger.Merge(&merged[i], remoteNote)
		switch comparison {
		case Identical:
			report.Identical = append(report.Identical, remoteNote.ID)
		case LocalIsNew:
			report.LocalNewer = append(report.LocalNewer, remoteNote.ID)
		case RemoteIsNew:
			report.RemoteNewer = append(report.RemoteNewer, remoteNote.ID)
		case Diverged:
			report.Diverged = append(report.Diverged, remoteNote.ID)
			s.logger.Warn("note diverged, contents concatenated", "id", remoteNote.ID, "version", merged[i].Version)
		}
	}

	for _, note := range notFound {
		if _, dup := index[note.ID]; dup {
			continue
		}
		index[note.ID] = len(merged)
		merged = append(merged, note.Clone())
		report.Pulled = append(report.Pulled, note.ID)
	}

	return merged
}

// recreateResource provisions a new remote resource and records it in config.
func (s *SyncService) recreateResource(ctx context.Context, token string, cause error) error {
	s.logger.Warn("remote resource missing, creating a new one", "error", cause)

	resource, err := s.remote.CreateResource(ctx, token)
	if err != nil {
		return &domain.HardSyncError{Op: "creating remote resource", Cause: err}
	}

	if err := s.config.Set(ports.ConfigRemoteID, resource.ID); err != nil {
		return &domain.HardSyncError{Op: "saving remote resource id", Cause: err}
	}
	// An override (such as an environment variable) would hide the saved id
	// and make every later sync provision yet another resource.
	if got := s.config.Get(ports.ConfigRemoteID); got != resource.ID {
		s.logger.Warn("saved remote resource id is overridden", "saved", resource.ID, "effective", got)
		return &domain.HardSyncError{
			Op:    "saving remote resource id",
			Cause: fmt.Errorf("created resource %s but %s still resolves to %q; remove the override", resource.ID, ports.ConfigRemoteID, got),
		}
	}
	if resource.Handle != "" {
		if err := s.config.Set(ports.ConfigRemoteHandle, resource.Handle); err != nil {
			return &domain.HardSyncError{Op: "saving remote resource handle", Cause: err}
		}
	}

	s.logger.Info("remote resource created", "resource", resource.ID)
	return &domain.TransientSyncError{ResourceID: resource.ID, Cause: fmt.Errorf("previous resource unusable: %w", cause)}
}
