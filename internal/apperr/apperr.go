// Package apperr defines the error taxonomy shared across services:
// validation failures, missing records, booking/session conflicts, and
// storage failures. Lookup misses are reported, never silently defaulted.
package apperr

import (
	"errors"
	"fmt"

	"cueclub/internal/model"
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Kind string // club, table, booking, session, player, user, menu item
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError reports a booking or session that cannot be placed because
// the table is already taken for the requested time.
type ConflictError struct {
	Conflict model.BookingConflict
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Conflict.Message
}

// Conflict builds a ConflictError.
func Conflict(conflictType, message string, existing *model.Booking) error {
	return &ConflictError{Conflict: model.BookingConflict{
		ConflictType:    conflictType,
		ExistingBooking: existing,
		Message:         message,
	}}
}

// PersistenceError wraps a storage backend failure.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError for the given operation.
func Persistence(op, key string, err error) error {
	return &PersistenceError{Op: op, Key: key, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// AsConflict extracts the conflict payload from err, if any.
func AsConflict(err error) (*model.BookingConflict, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return &ce.Conflict, true
	}
	return nil, false
}
