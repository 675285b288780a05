package model

import (
	"errors"
	"fmt"
)

// Error kinds for the task pipeline. Callers match them with errors.Is.
var (
	// ErrValidation marks malformed input; nothing was created or modified.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced task or user that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an actor that does not own the targeted task.
	ErrForbidden = errors.New("forbidden")

	// ErrDispatch marks a notification fan-out failure. It is logged and
	// swallowed by the coordinator, never surfaced to callers.
	ErrDispatch = errors.New("notification dispatch failed")
)

// Error wraps a pipeline failure with its kind so callers can classify it
// without string matching.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Validationf builds an ErrValidation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds an ErrNotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Forbiddenf builds an ErrForbidden error.
func Forbiddenf(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Msg: fmt.Sprintf(format, args...)}
}

// Dispatchf builds an ErrDispatch error.
func Dispatchf(format string, args ...any) error {
	return &Error{Kind: ErrDispatch, Msg: fmt.Sprintf(format, args...)}
}
