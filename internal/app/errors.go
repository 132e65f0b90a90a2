package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called while the event
	// loop is live.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoSource indicates Run was called without a transition
	// source. Layout dumps work without one; the event loop cannot.
	ErrNoSource = errors.New("no transition source configured")
)

// InitError reports which component failed to come up.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
