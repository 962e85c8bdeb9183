// Package domain holds the error taxonomy shared by the note store, the
// versioning engine and the sync engine.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrNotFound          = errors.New("not found")
	ErrTransientSync     = errors.New("transient sync failure")
	ErrHardSync          = errors.New("sync failed")
	ErrResourceNotFound  = errors.New("remote resource not found")
	ErrResourceNotConfig = errors.New("remote resource not configured")
)

// ValidationError reports a malformed id or content. It is raised before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateIDError is returned when adding a note whose id already exists.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("note %s already exists", e.ID)
}

// Is lets errors.Is(err, ErrDuplicateID) match.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}

// NotFoundError is returned when modifying a note that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %s not found", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TransientSyncError means the remote resource was missing and a fresh one was
// provisioned. Retrying the sync is expected to succeed.
type TransientSyncError struct {
	ResourceID string
	Cause      error
}

func (e *TransientSyncError) Error() string {
	return fmt.Sprintf("remote resource was missing, created %s; run sync again", e.ResourceID)
}

// Is lets errors.Is(err, ErrTransientSync) match.
func (e *TransientSyncError) Is(target error) bool {
	return target == ErrTransientSync
}

func (e *TransientSyncError) Unwrap() error {
	return e.Cause
}

// HardSyncError aborts a sync transaction. Local state is left unchanged.
type HardSyncError struct {
	Op    string
	Cause error
}

func (e *HardSyncError) Error() string {
	return fmt.Sprintf("sync failed while %s: %v", e.Op, e.Cause)
}

// Is lets errors.Is(err, ErrHardSync) match.
func (e *HardSyncError) Is(target error) bool {
	return target == ErrHardSync
}

func (e *HardSyncError) Unwrap() error {
	return e.Cause
}
