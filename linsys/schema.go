// SPDX-License-Identifier: MIT

package linsys

// Kind classifies which optional vectors a file carries.
type Kind int

const (
	// CoefficientsOnly: cols == rows. The system has no right-hand side and
	// cannot be solved iteratively.
	CoefficientsOnly Kind = iota

	// WithResult: cols == rows+1. The engine synthesizes a zero start vector.
	WithResult

	// WithResultAndStart: cols == rows+2.
	WithResultAndStart
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case CoefficientsOnly:
		return "coefficients-only"
	case WithResult:
		return "coefficients+result"
	case WithResultAndStart:
		return "coefficients+result+start"
	default:
		return "unknown"
	}
}

// Schema is the structure derived from a file's shape. It is computed once
// from (rows, cols) and never stored in the file itself.
type Schema struct {
	N         int  // system size (rows of the file)
	HasResult bool // column N holds the result vector b
	HasStart  bool // column N+1 holds the start vector x⁰
}

// Kind maps the presence flags to a Kind.
func (s Schema) Kind() Kind {
	switch {
	case s.HasStart:
		return WithResultAndStart
	case s.HasResult:
		return WithResult
	default:
		return CoefficientsOnly
	}
}

// Cols returns the number of fields per record implied by the schema.
func (s Schema) Cols() int {
	return s.N + int(s.Kind())
}

// Solvable reports whether the schema carries a result vector.
func (s Schema) Solvable() bool { return s.HasResult }

func (s Schema) String() string { return s.Kind().String() }

// Interpret maps a file shape to a Schema.
//
//	cols == rows   → CoefficientsOnly
//	cols == rows+1 → WithResult
//	cols == rows+2 → WithResultAndStart
//
// Errors: *UnsupportedShapeError (ErrUnsupportedShape) when rows ≤ 0,
// cols ≤ 0, or cols is outside [rows, rows+2].
func Interpret(rows, cols int) (Schema, error) {
	if rows <= 0 || cols <= 0 || cols < rows || cols > rows+2 {
		return Schema{}, &UnsupportedShapeError{Rows: rows, Cols: cols}
	}

	return Schema{
		N:         rows,
		HasResult: cols >= rows+1,
		HasStart:  cols == rows+2,
	}, nil
}
