package compose

import (
	"errors"
	"fmt"
)

// ErrBadSequence indicates a sequence definition the table cannot
// hold: no symbols, a NoSymbol entry, or a result with neither text
// nor symbol.
var ErrBadSequence = errors.New("bad compose sequence")

// ParseError reports a rejected compose-file line. Parsing stops at
// the first bad line; the caller keeps its previous table.
type ParseError struct {
	// Path names the compose file.
	Path string
	// Line is the 1-based line number.
	Line int
	// Detail says what was wrong with the line.
	Detail string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing compose file %s:%d: %s: %v", e.Path, e.Line, e.Detail, e.Err)
	}
	return fmt.Sprintf("parsing compose file %s:%d: %s", e.Path, e.Line, e.Detail)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
