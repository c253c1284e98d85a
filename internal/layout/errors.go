package layout

import (
	"errors"
	"fmt"
)

// ErrPrecondition indicates the caller violated an operation's contract.
// Precondition failures signal host misuse, not recoverable conditions;
// callers should treat them as fatal during development.
var ErrPrecondition = errors.New("layout precondition violated")

// PreconditionError describes a contract violation with enough context
// to identify the misbehaving call site.
type PreconditionError struct {
	// Op is the operation that was misused.
	Op string
	// Row is the row index involved, or -1 if not applicable.
	Row int
	// Column is the column index involved, or -1 if not applicable.
	Column int
	// Reason describes the violated precondition.
	Reason string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	switch {
	case e.Row >= 0 && e.Column >= 0:
		return fmt.Sprintf("%s (row %d, column %d): %s", e.Op, e.Row, e.Column, e.Reason)
	case e.Row >= 0:
		return fmt.Sprintf("%s (row %d): %s", e.Op, e.Row, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
}

// Unwrap returns ErrPrecondition so callers can match with errors.Is.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// newPrecondition builds a PreconditionError for an operation.
func newPrecondition(op string, row, column int, reason string) *PreconditionError {
	return &PreconditionError{Op: op, Row: row, Column: column, Reason: reason}
}
