// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/finite checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// AI-Hints:
//  - Use ValidateSquare + ValidateVecLen before any iterative sweep.
//  - Use IsDiagonallyDominant to warn callers that Jacobi/Gauss-Seidel may diverge.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Typed nil pointers (*Dense)(nil) are rejected as well.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrNonSquare if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSquare(%dx%d)", m.Rows(), m.Cols()), ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	// Disallow nil vectors to avoid subtle bugs in MatVec-like routines.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen(%d != %d)", len(x), n), ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN/±Inf components of x.
// Time: O(n).
func ValidateFinite(x []float64) error {
	for i, v := range x {
		if isNonFinite(v) {
			return validatorErrorf(fmt.Sprintf("ValidateFinite[%d]", i), ErrNaNInf)
		}
	}

	return nil
}

// IsDiagonallyDominant reports whether the square matrix m is row-wise
// diagonally dominant: |a_ii| ≥ Σ_{j≠i} |a_ij| for every row (weak), and
// strict when every inequality is strict.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n²); *Dense rows are read through Row views without copying.
//
// AI-Hints:
//   - Strict dominance guarantees convergence of both Jacobi and Gauss-Seidel.
//   - A false result is only a warning; many non-dominant systems still converge.
func IsDiagonallyDominant(m Matrix) (weak, strict bool, err error) {
	if err = ValidateSquare(m); err != nil {
		return false, false, err
	}
	d, err := asDense(m)
	if err != nil {
		return false, false, err
	}
	weak, strict = true, true
	var row []float64
	var diag, off float64
	for i := 0; i < d.r; i++ {
		if row, err = d.Row(i); err != nil {
			return false, false, err
		}
		diag, off = math.Abs(row[i]), 0
		for j, v := range row {
			if j != i {
				off += math.Abs(v)
			}
		}
		if diag < off {
			weak = false
		}
		if diag <= off {
			strict = false
		}
	}

	return weak, strict, nil
}
