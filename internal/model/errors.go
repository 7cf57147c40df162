package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput              = errors.New("no target URL or image provided")
	ErrInvalidURL              = errors.New("invalid target URL")
	ErrCollaboratorUnavailable = errors.New("analysis engine unavailable")
	ErrSessionBusy             = errors.New("an analysis is already running")
	ErrHistoryNotFound         = errors.New("history entry not found")
)

// ValidationError reports a target that is not an absolute web URL.
// It matches ErrInvalidURL with errors.Is.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %q must be an absolute http(s) URL with a dotted host", ErrInvalidURL, e.Input)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidURL }
