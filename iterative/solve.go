// SPDX-License-Identifier: MIT

package iterative

import (
	"math"

	"github.com/katalvlaran/itersolve/linsys"
	"github.com/katalvlaran/itersolve/matrix"
)

const (
	opSolve       = "Solve"
	opSolveSystem = "SolveSystem"
	opResidual    = "Residual"
)

// Result is the outcome of one solve.
type Result struct {
	// Method that produced the iterates.
	Method Method

	// History holds one iterate per completed sweep.
	History *History

	// Sweeps is the number of completed sweeps (== History.Len()).
	Sweeps int

	// Converged: the last sweep moved no component by acc or more.
	Converged bool

	// LimitReached: the sweep cap ran out before convergence.
	LimitReached bool

	// Stopped: the OnSweep hook asked to stop.
	Stopped bool

	// Delta is the max-norm difference of the last two iterates.
	Delta float64
}

// Solution returns a copy of the last iterate.
func (r *Result) Solution() matrix.Vector { return r.History.Last() }

// Jacobi is shorthand for Solve(MethodJacobi, ...).
func Jacobi(a matrix.Matrix, b, x0 matrix.Vector, acc float64, opts ...Option) (*Result, error) {
	return Solve(MethodJacobi, a, b, x0, acc, opts...)
}

// GaussSeidel is shorthand for Solve(MethodGaussSeidel, ...).
func GaussSeidel(a matrix.Matrix, b, x0 matrix.Vector, acc float64, opts ...Option) (*Result, error) {
	return Solve(MethodGaussSeidel, a, b, x0, acc, opts...)
}

// SolveSystem solves a loaded system, using its start vector when present.
// A coefficients-only system fails with ErrMissingResult.
func SolveSystem(method Method, sys *linsys.System, acc float64, opts ...Option) (*Result, error) {
	if sys == nil {
		return nil, &SolveError{Op: opSolveSystem, Err: matrix.ErrNilMatrix}
	}

	return Solve(method, sys.A, sys.B, sys.X0, acc, opts...)
}

// Solve iterates a·x = b with the given method until two consecutive
// iterates differ by less than acc in every component, or the sweep cap
// is reached.
//
// Implementation:
//   - Stage 1: validate inputs and the diagonal; no sweep runs on failure.
//   - Stage 2: copy x0 (zeros when nil) into the working iterate.
//   - Stage 3: for sweep k = 1..K, snapshot the iterate, apply one sweep,
//     record it in the history and measure δ = max_i |x^k_i − x^{k−1}_i|.
//   - Stage 4: stop when k ≥ 2 and δ < acc, when the OnSweep hook returns
//     false, or when k == K.
//
// Behavior highlights:
//   - The first sweep is never reported as converged.
//   - acc == 0 never converges; exactly K sweeps run.
//   - Non-finite iterates (divergence) are not an error; they are recorded
//     and the run ends at the cap.
//   - a, b and x0 are never mutated.
//
// Errors:
//   - *SolveError for missing/mismatched inputs, bad accuracy, bad options.
//   - *SingularDiagonalError when |a_ii| ≤ DiagonalTolerance.
//
// Complexity:
//   - Time O(K·n²), Space O(K·n) for the history.
func Solve(method Method, a matrix.Matrix, b, x0 matrix.Vector, acc float64, opts ...Option) (*Result, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, &SolveError{Op: opSolve, Err: err}
	}
	if err = validate(method, a, b, x0, acc); err != nil {
		return nil, err
	}

	n := a.Rows()
	flat, err := matrix.Flatten(a)
	if err != nil {
		return nil, &SolveError{Op: opSolve, Err: err}
	}
	if err = checkDiagonal(flat, n, o.DiagonalTolerance); err != nil {
		return nil, err
	}

	x := make(matrix.Vector, n)
	copy(x, x0) // nil x0 leaves the zero start vector
	prev := make(matrix.Vector, n)

	var sweep sweepFunc = jacobiSweep
	if method == MethodGaussSeidel {
		sweep = gaussSeidelSweep
	}

	res := &Result{Method: method, History: newHistory(n, o.MaxIterations)}
	for k := 1; k <= o.MaxIterations; k++ {
		copy(prev, x)
		sweep(flat, b, prev, x)
		res.History.push(x)
		res.Sweeps = k
		res.Delta, _ = x.MaxAbsDiff(prev) // equal lengths by construction

		converged := k >= 2 && res.Delta < acc
		if o.OnSweep != nil && !o.OnSweep(k, x.Clone(), res.Delta) && !converged {
			res.Stopped = true
			return res, nil
		}
		if converged {
			res.Converged = true
			return res, nil
		}
	}
	res.LimitReached = true

	return res, nil
}

// validate checks every precondition that does not need the matrix data.
func validate(method Method, a matrix.Matrix, b, x0 matrix.Vector, acc float64) error {
	if !method.Valid() {
		return &SolveError{Op: opSolve, Err: ErrUnknownMethod}
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return &SolveError{Op: opSolve, Err: err}
	}
	n := a.Rows()
	if b == nil {
		return &SolveError{Op: opSolve, Err: ErrMissingResult}
	}
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return &SolveError{Op: opSolve, Err: err}
	}
	if err := matrix.ValidateFinite(b); err != nil {
		return &SolveError{Op: opSolve, Err: err}
	}
	if x0 != nil {
		if err := matrix.ValidateVecLen(x0, n); err != nil {
			return &SolveError{Op: opSolve, Err: err}
		}
		if err := matrix.ValidateFinite(x0); err != nil {
			return &SolveError{Op: opSolve, Err: err}
		}
	}
	if acc < 0 || math.IsNaN(acc) || math.IsInf(acc, 0) {
		return &SolveError{Op: opSolve, Err: ErrInvalidAccuracy}
	}

	return nil
}

// checkDiagonal rejects diagonal entries with |a_ii| ≤ tol.
func checkDiagonal(a []float64, n int, tol float64) error {
	for i := 0; i < n; i++ {
		if d := a[i*n+i]; math.Abs(d) <= tol || math.IsNaN(d) {
			return &SingularDiagonalError{Row: i, Value: d}
		}
	}

	return nil
}

// sweepFunc advances the iterate by one sweep. prev holds the previous
// iterate, x is updated in place. a is row-major n×n.
type sweepFunc func(a []float64, b, prev, x []float64)

// jacobiSweep: x_i = (b_i − Σ_{j≠i} a_ij·prev_j) / a_ii.
func jacobiSweep(a []float64, b, prev, x []float64) {
	n := len(b)
	var i, j, base int
	var s float64
	for i = 0; i < n; i++ {
		base = i * n
		s = b[i]
		for j = 0; j < n; j++ {
			if j != i {
				s -= a[base+j] * prev[j]
			}
		}
		x[i] = s / a[base+i]
	}
}

// gaussSeidelSweep: like Jacobi but reads x, so rows j < i already see
// the values of this sweep.
func gaussSeidelSweep(a []float64, b, _, x []float64) {
	n := len(b)
	var i, j, base int
	var s float64
	for i = 0; i < n; i++ {
		base = i * n
		s = b[i]
		for j = 0; j < n; j++ {
			if j != i {
				s -= a[base+j] * x[j]
			}
		}
		x[i] = s / a[base+i]
	}
}

// Residual returns max_i |(a·x)_i − b_i|, a diagnostic of how well x
// satisfies the system. It is not used as a stopping criterion.
func Residual(a matrix.Matrix, b, x matrix.Vector) (float64, error) {
	if err := matrix.ValidateSquare(a); err != nil {
		return 0, &SolveError{Op: opResidual, Err: err}
	}
	if b == nil {
		return 0, &SolveError{Op: opResidual, Err: ErrMissingResult}
	}
	ax, err := matrix.MatVec(a, x)
	if err != nil {
		return 0, &SolveError{Op: opResidual, Err: err}
	}
	r, err := matrix.MaxAbsDiff(ax, b)
	if err != nil {
		return 0, &SolveError{Op: opResidual, Err: err}
	}

	return r, nil
}
