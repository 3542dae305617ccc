// SPDX-License-Identifier: MIT

package iterative

import (
	"errors"
	"fmt"
)

// Sentinel errors for solver execution.
var (
	// ErrMissingResult is returned when the system carries no result vector b.
	ErrMissingResult = errors.New("iterative: result vector is missing")

	// ErrInvalidAccuracy is returned for a negative, NaN or infinite accuracy.
	ErrInvalidAccuracy = errors.New("iterative: accuracy must be finite and non-negative")

	// ErrSingularDiagonal is matched by every *SingularDiagonalError.
	ErrSingularDiagonal = errors.New("iterative: zero on the diagonal")

	// ErrUnknownMethod is returned for a Method outside the supported set.
	ErrUnknownMethod = errors.New("iterative: unknown method")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("iterative: invalid option supplied")
)

// SolveError reports a precondition that failed before the first sweep.
// Err is ErrMissingResult, ErrInvalidAccuracy, ErrUnknownMethod,
// ErrOptionViolation or a wrapped matrix validator failure
// (matrix.ErrNonSquare, matrix.ErrDimensionMismatch, matrix.ErrNilMatrix,
// matrix.ErrNaNInf).
type SolveError struct {
	Op  string
	Err error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("iterative.%s: %v", e.Op, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }

// SingularDiagonalError reports a diagonal entry whose magnitude does not
// exceed the configured tolerance. Row is zero-based; the message is 1-based.
type SingularDiagonalError struct {
	Row   int
	Value float64
}

func (e *SingularDiagonalError) Error() string {
	return fmt.Sprintf("iterative: row %d: diagonal entry %g: zero on the diagonal", e.Row+1, e.Value)
}

func (e *SingularDiagonalError) Unwrap() error { return ErrSingularDiagonal }
