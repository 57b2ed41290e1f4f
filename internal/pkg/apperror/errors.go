// Package apperror defines the error taxonomy shared by the service layers.
package apperror

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or inconsistent input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// NewNotFoundError creates a NotFoundError for the given entity and key.
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// UnauthorizedError reports a missing or invalid session credential.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// NewUnauthorizedError creates an UnauthorizedError.
func NewUnauthorizedError(msg string) *UnauthorizedError {
	return &UnauthorizedError{Message: msg}
}

// ForbiddenError reports an authenticated caller acting on someone else's records.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(msg string) *ForbiddenError {
	return &ForbiddenError{Message: msg}
}

// RefusalReason identifies which business rule turned a request down.
type RefusalReason string

const (
	ReasonScheduleConflict RefusalReason = "SCHEDULE_CONFLICT"
	ReasonNoticeTooShort   RefusalReason = "NOTICE_TOO_SHORT"
	ReasonAlreadyReviewed  RefusalReason = "ALREADY_REVIEWED"
)

// Refusal is an expected negative outcome of a business rule. It is not a fault:
// nothing was written and the caller gets a normal structured answer.
type Refusal struct {
	Reason  RefusalReason
	Message string
}

func (e *Refusal) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// NewScheduleConflict refuses a stay that overlaps an existing booking.
func NewScheduleConflict(roomNo string) *Refusal {
	return &Refusal{
		Reason:  ReasonScheduleConflict,
		Message: fmt.Sprintf("room %s is already booked for the requested dates", roomNo),
	}
}

// NewNoticeTooShort refuses a cancellation inside the notice window.
func NewNoticeTooShort() *Refusal {
	return &Refusal{
		Reason:  ReasonNoticeTooShort,
		Message: "bookings can only be cancelled at least one day before check-in",
	}
}

// NewAlreadyReviewed refuses a second review of the same room by the same guest.
func NewAlreadyReviewed(roomNo string) *Refusal {
	return &Refusal{
		Reason:  ReasonAlreadyReviewed,
		Message: fmt.Sprintf("you have already reviewed room %s", roomNo),
	}
}

// IsRefusal reports whether err is a Refusal with the given reason.
func IsRefusal(err error, reason RefusalReason) bool {
	var r *Refusal
	return errors.As(err, &r) && r.Reason == reason
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
