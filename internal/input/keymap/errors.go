package keymap

import (
	"errors"
	"fmt"
)

// Errors returned by layout operations.
var (
	// ErrIncompatibleLayout indicates a layout that cannot serve the
	// pipeline, such as a nil or already released one.
	ErrIncompatibleLayout = errors.New("incompatible layout")

	// ErrLayoutReleased indicates a lookup against a released layout.
	ErrLayoutReleased = errors.New("layout has been released")

	// ErrTooManyModifiers indicates a modifier table wider than
	// MaxModifiers.
	ErrTooManyModifiers = errors.New("modifier table is too wide")

	// ErrUnknownType indicates a key group referencing an undeclared
	// key type.
	ErrUnknownType = errors.New("unknown key type")
)

// CompileError reports a failed layout compilation. The previous
// layout keeps serving when compilation fails, so the error carries
// enough context to diagnose the rejected description.
type CompileError struct {
	// Source names where the description came from: a file path,
	// "inline" or "builtin:us".
	Source string
	// Detail locates the failure inside the description.
	Detail string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compiling layout from %s: %s: %v", e.Source, e.Detail, e.Err)
	}
	return fmt.Sprintf("compiling layout from %s: %s", e.Source, e.Detail)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is matches ErrIncompatibleLayout for every compile failure: a
// description that does not compile cannot serve the pipeline,
// whatever the specific reason was.
func (e *CompileError) Is(target error) bool {
	return target == ErrIncompatibleLayout
}
