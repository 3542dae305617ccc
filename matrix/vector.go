// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Vector is an ordered sequence of n float64 values. It plays three roles:
// result vector b, start vector x⁰ and history snapshot of an iterate.
type Vector []float64

// NewVector returns a zero vector of length n.
// Errors: ErrInvalidDimensions when n <= 0.
func NewVector(n int) (Vector, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}

	return make(Vector, n), nil
}

// Len returns the number of components.
func (v Vector) Len() int { return len(v) }

// Clone returns an independent copy; a nil vector clones to nil.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	cp := make(Vector, len(v))
	copy(cp, v)

	return cp
}

// MaxAbsDiff returns max_i |v[i] - w[i]|.
// A NaN component difference propagates as NaN so it never compares below a threshold.
//
// Errors: ErrDimensionMismatch when lengths differ.
// Complexity: O(n).
func (v Vector) MaxAbsDiff(w Vector) (float64, error) {
	if len(v) != len(w) {
		return 0, fmt.Errorf("Vector.MaxAbsDiff: %d vs %d: %w", len(v), len(w), ErrDimensionMismatch)
	}

	return maxAbsDiff(v, w), nil
}

// IsFinite reports whether every component is finite.
func (v Vector) IsFinite() bool {
	for _, x := range v {
		if isNonFinite(x) {
			return false
		}
	}

	return true
}

// String renders the vector as "[a, b, c]" using %g.
func (v Vector) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, x := range v {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		b.WriteString(fmt.Sprintf("%g", x))
	}
	b.WriteString("]")

	return b.String()
}

// maxAbsDiff assumes equal lengths; hot path for convergence checks.
func maxAbsDiff(a, b []float64) float64 {
	var d, worst float64
	for i := range a {
		d = math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			return d
		}
		if d > worst {
			worst = d
		}
	}

	return worst
}

// MaxAbsDiff is the slice form used by kernels that hold plain []float64 buffers.
// Errors: ErrDimensionMismatch when lengths differ.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("MaxAbsDiff: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}

	return maxAbsDiff(a, b), nil
}
