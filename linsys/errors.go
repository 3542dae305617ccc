// SPDX-License-Identifier: MIT
// Package linsys: sentinel errors and typed failures of the loader stack.
//
// Every typed error unwraps to a package sentinel so callers can branch with
// errors.Is, and carries the context (row/column, offending dimension) needed
// to render an actionable message with errors.As.

package linsys

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the umbrella sentinel matched by every *ParseError.
	ErrParse = errors.New("linsys: invalid numeric field")

	// ErrEmptyField indicates a zero-length (or whitespace-only) token.
	ErrEmptyField = errors.New("linsys: empty field")

	// ErrNotANumber indicates that no numeric prefix could be consumed.
	ErrNotANumber = errors.New("linsys: not a number")

	// ErrTrailingGarbage indicates a numeric prefix followed by extra characters.
	ErrTrailingGarbage = errors.New("linsys: trailing characters after number")

	// ErrNumberRange indicates a well-formed number whose magnitude overflows float64.
	ErrNumberRange = errors.New("linsys: number out of float64 range")

	// ErrMalformedFile indicates inconsistent column counts across rows.
	ErrMalformedFile = errors.New("linsys: inconsistent column count")

	// ErrUnsupportedShape indicates a rows/cols relation outside rows ≤ cols ≤ rows+2.
	ErrUnsupportedShape = errors.New("linsys: unsupported system shape")

	// ErrFieldConversion indicates that a specific cell failed numeric parsing.
	ErrFieldConversion = errors.New("linsys: field conversion failed")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("linsys: invalid option supplied")
)

// ParseError reports a token rejected by ParseField.
// Err is one of ErrEmptyField, ErrNotANumber, ErrTrailingGarbage, ErrNumberRange.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("linsys: parse %q: %v", e.Token, e.Err)
}

// Unwrap exposes both the umbrella sentinel and the specific reason.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// MalformedFileError reports the first record whose column count differs
// from the first non-blank record. Line is the 1-based physical line,
// Row the 1-based data row (blank lines excluded).
type MalformedFileError struct {
	Line int
	Row  int
	Want int
	Got  int
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("linsys: line %d (row %d): %d columns, want %d: inconsistent column count",
		e.Line, e.Row, e.Got, e.Want)
}

func (e *MalformedFileError) Unwrap() error { return ErrMalformedFile }

// UnsupportedShapeError reports a (rows, cols) pair that maps to no schema.
type UnsupportedShapeError struct {
	Rows int
	Cols int
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("linsys: %d rows × %d columns: want rows > 0 and rows ≤ cols ≤ rows+2: unsupported system shape",
		e.Rows, e.Cols)
}

func (e *UnsupportedShapeError) Unwrap() error { return ErrUnsupportedShape }

// FieldConversionError reports the cell that failed to parse during Load.
// Row and Col are zero-based; the message renders them 1-based.
type FieldConversionError struct {
	Row   int
	Col   int
	Token string
	Err   error
}

func (e *FieldConversionError) Error() string {
	return fmt.Sprintf("linsys: row %d, column %d: %v", e.Row+1, e.Col+1, e.Err)
}

// Unwrap exposes ErrFieldConversion and the underlying *ParseError.
func (e *FieldConversionError) Unwrap() []error { return []error{ErrFieldConversion, e.Err} }
