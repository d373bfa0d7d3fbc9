package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks input rejected before any work starts.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRunNotFound is returned for unknown or expired run ids.
	ErrRunNotFound = errors.New("run not found")
	// ErrBusy is returned when every run slot is taken.
	ErrBusy = errors.New("too many active runs")
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrRunActive is returned when exporting a run that has not finished.
	ErrRunActive = errors.New("run still in progress")
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match validation failures with errors.Is(err, ErrInvalidRequest).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}
