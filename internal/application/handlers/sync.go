package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/entities"
	"github.com/ersonp/mens/internal/domain/services"
)

// SyncOutcome is the caller-facing result class of a sync.
type SyncOutcome int

const (
	// SyncOK means local and remote now hold the same notes.
	SyncOK SyncOutcome = iota
	// SyncTransientFailure means the remote resource was recreated; syncing again will succeed.
	SyncTransientFailure
	// SyncHardFailure means the sync aborted and local notes are unchanged.
	SyncHardFailure
)

func (o SyncOutcome) String() string {
	switch o {
	case SyncOK:
		return "ok"
	case SyncTransientFailure:
		return "transientFailure"
	case SyncHardFailure:
		return "hardFailure"
	default:
		return "unknown"
	}
}

// syncer is the part of services.SyncService the handler needs.
type syncer interface {
	Sync(ctx context.Context) (*entities.SyncReport, error)
}

// SyncHandler maps sync errors to outcomes.
type SyncHandler struct {
	service   syncer
	autoRetry bool
	logger    *slog.Logger
}

// NewSyncHandler creates a new sync handler. With autoRetry set, a transient
// failure is followed by exactly one more attempt against the new resource.
func NewSyncHandler(service *services.SyncService, autoRetry bool, logger *slog.Logger) *SyncHandler {
	return newSyncHandler(service, autoRetry, logger)
}

func newSyncHandler(service syncer, autoRetry bool, logger *slog.Logger) *SyncHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyncHandler{service: service, autoRetry: autoRetry, logger: logger}
}

// SyncResult contains the result of a sync.
type SyncResult struct {
	Outcome    SyncOutcome
	Report     *entities.SyncReport
	ResourceID string // set on transient failure
	Err        error  // set on any failure
}

// Handle runs a sync. It never returns an error; failures are reported in the result.
func (h *SyncHandler) Handle(ctx context.Context) *SyncResult {
	result := h.once(ctx)
	if result.Outcome == SyncTransientFailure && h.autoRetry {
		h.logger.Info("retrying sync against new resource", "resource", result.ResourceID)
		return h.once(ctx)
	}
	return result
}

func (h *SyncHandler) once(ctx context.Context) *SyncResult {
	report, err := h.service.Sync(ctx)
	if err == nil {
		return &SyncResult{Outcome: SyncOK, Report: report}
	}

	var transient *domain.TransientSyncError
	if errors.As(err, &transient) {
		return &SyncResult{Outcome: SyncTransientFailure, ResourceID: transient.ResourceID, Err: err}
	}
	return &SyncResult{Outcome: SyncHardFailure, Err: err}
}
