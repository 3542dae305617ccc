package iterative_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/itersolve/iterative"
	"github.com/katalvlaran/itersolve/linsys"
	"github.com/katalvlaran/itersolve/matrix"
	"github.com/stretchr/testify/require"
)

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	n := len(rows)
	flat := make([]float64, 0, n*n)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	m, err := matrix.NewDenseFrom(n, len(rows[0]), flat)
	require.NoError(t, err)

	return m
}

func tridiag3(t *testing.T) *matrix.Dense {
	return dense(t, [][]float64{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}})
}

func TestSolveStrictlyDominant3x3(t *testing.T) {
	b := matrix.Vector{2, 4, 10}
	want := []float64{1, 2, 3}
	for _, m := range []iterative.Method{iterative.MethodJacobi, iterative.MethodGaussSeidel} {
		t.Run(m.String(), func(t *testing.T) {
			res, err := iterative.Solve(m, tridiag3(t), b, nil, 1e-10)
			require.NoError(t, err)
			require.True(t, res.Converged)
			require.False(t, res.LimitReached)
			require.LessOrEqual(t, res.Sweeps, iterative.DefaultMaxIterations)
			require.Equal(t, res.Sweeps, res.History.Len())
			require.InDeltaSlice(t, want, []float64(res.Solution()), 1e-8)
			require.Less(t, res.Delta, 1e-10)
		})
	}
}

// Gauss-Seidel needs fewer sweeps than Jacobi on the same dominant system.
func TestGaussSeidelFasterThanJacobi(t *testing.T) {
	b := matrix.Vector{2, 4, 10}
	j, err := iterative.Jacobi(tridiag3(t), b, nil, 1e-10)
	require.NoError(t, err)
	gs, err := iterative.GaussSeidel(tridiag3(t), b, nil, 1e-10)
	require.NoError(t, err)
	require.Less(t, gs.Sweeps, j.Sweeps)
}

func TestGaussSeidel2x2(t *testing.T) {
	a := dense(t, [][]float64{{4, 1}, {1, 3}})
	res, err := iterative.GaussSeidel(a, matrix.Vector{1, 2}, nil, 1e-6)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Less(t, res.Sweeps, 20)

	x := res.Solution()
	require.InDelta(t, 0.0909, x[0], 1e-4)
	require.InDelta(t, 0.6364, x[1], 1e-4)
}

// TestSweepTrace pins the first two iterates of both rules from x⁰ = 0.
func TestSweepTrace(t *testing.T) {
	a := dense(t, [][]float64{{4, 1}, {1, 3}})
	b := matrix.Vector{1, 2}

	res, err := iterative.Jacobi(a, b, nil, 0, iterative.WithMaxIterations(2))
	require.NoError(t, err)
	x1, err := res.History.At(0)
	require.NoError(t, err)
	x2, err := res.History.At(1)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1.0 / 4, 2.0 / 3}, []float64(x1), 1e-15)
	require.InDeltaSlice(t, []float64{1.0 / 12, 7.0 / 12}, []float64(x2), 1e-15)

	res, err = iterative.GaussSeidel(a, b, nil, 0, iterative.WithMaxIterations(2))
	require.NoError(t, err)
	x1, _ = res.History.At(0)
	x2, _ = res.History.At(1)
	require.InDeltaSlice(t, []float64{1.0 / 4, 7.0 / 12}, []float64(x1), 1e-15)
	require.InDeltaSlice(t, []float64{5.0 / 48, 91.0 / 144}, []float64(x2), 1e-15)
}

// TestFirstSweepNeverConverges: a diagonal system is exact after one sweep,
// yet convergence is only reported after the second.
func TestFirstSweepNeverConverges(t *testing.T) {
	a := dense(t, [][]float64{{2, 0}, {0, 4}})
	var deltas []float64
	res, err := iterative.Jacobi(a, matrix.Vector{2, 8}, nil, 100,
		iterative.WithOnSweep(func(_ int, _ matrix.Vector, d float64) bool {
			deltas = append(deltas, d)
			return true
		}))
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, 2, res.Sweeps)
	require.Equal(t, []float64{2, 0}, deltas)
	require.Equal(t, matrix.Vector{1, 2}, res.Solution())
}

func TestZeroAccuracyRunsCap(t *testing.T) {
	for _, k := range []int{1, 7, 100} {
		res, err := iterative.GaussSeidel(tridiag3(t), matrix.Vector{2, 4, 10}, nil, 0,
			iterative.WithMaxIterations(k))
		require.NoError(t, err)
		require.False(t, res.Converged)
		require.True(t, res.LimitReached)
		require.Equal(t, k, res.Sweeps)
		require.Equal(t, k, res.History.Len())
	}

	res, err := iterative.Jacobi(tridiag3(t), matrix.Vector{2, 4, 10}, nil, 0)
	require.NoError(t, err)
	require.Equal(t, iterative.DefaultMaxIterations, res.Sweeps)
}

func TestStartVectorIsCopied(t *testing.T) {
	x0 := matrix.Vector{5, 5, 5}
	b := matrix.Vector{2, 4, 10}
	a := tridiag3(t)
	before := a.Clone()

	res, err := iterative.GaussSeidel(a, b, x0, 1e-9)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, matrix.Vector{5, 5, 5}, x0)
	require.Equal(t, matrix.Vector{2, 4, 10}, b)
	require.Equal(t, before, matrix.Matrix(a))
}

// A start vector equal to the solution converges on the second sweep.
func TestStartAtSolution(t *testing.T) {
	res, err := iterative.Jacobi(tridiag3(t), matrix.Vector{2, 4, 10}, matrix.Vector{1, 2, 3}, 1e-12)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, 2, res.Sweeps)
	require.Equal(t, 0.0, res.Delta)
}

func TestSingularDiagonal(t *testing.T) {
	a := dense(t, [][]float64{{4, 1, 0}, {1, 0, 1}, {0, 1, 4}})
	called := false
	_, err := iterative.Jacobi(a, matrix.Vector{1, 2, 3}, nil, 1e-6,
		iterative.WithOnSweep(func(int, matrix.Vector, float64) bool {
			called = true
			return true
		}))
	require.ErrorIs(t, err, iterative.ErrSingularDiagonal)
	require.False(t, called, "no sweep may run")

	var sd *iterative.SingularDiagonalError
	require.True(t, errors.As(err, &sd))
	require.Equal(t, 1, sd.Row)
	require.Equal(t, 0.0, sd.Value)
	require.Contains(t, err.Error(), "row 2")
}

func TestDiagonalTolerance(t *testing.T) {
	a := dense(t, [][]float64{{0.5, 0}, {0, 4}})
	b := matrix.Vector{1, 1}

	_, err := iterative.Jacobi(a, b, nil, 1e-6)
	require.NoError(t, err)

	_, err = iterative.Jacobi(a, b, nil, 1e-6, iterative.WithDiagonalTolerance(0.5))
	require.ErrorIs(t, err, iterative.ErrSingularDiagonal)

	require.Panics(t, func() { iterative.WithDiagonalTolerance(-1) })
	require.Panics(t, func() { iterative.WithDiagonalTolerance(math.NaN()) })
	require.Panics(t, func() { iterative.WithDiagonalTolerance(math.Inf(1)) })
}

func TestSolvePreconditions(t *testing.T) {
	square := tridiag3(t)
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	var nilDense *matrix.Dense

	cases := []struct {
		name   string
		method iterative.Method
		a      matrix.Matrix
		b, x0  matrix.Vector
		acc    float64
		opts   []iterative.Option
		want   error
	}{
		{"nil matrix", iterative.MethodJacobi, nil, matrix.Vector{1, 2}, nil, 1, nil, matrix.ErrNilMatrix},
		{"typed nil matrix", iterative.MethodJacobi, nilDense, matrix.Vector{1, 2}, nil, 1, nil, matrix.ErrNilMatrix},
		{"non-square", iterative.MethodJacobi, rect, matrix.Vector{1, 2}, nil, 1, nil, matrix.ErrNonSquare},
		{"missing b", iterative.MethodJacobi, square, nil, nil, 1, nil, iterative.ErrMissingResult},
		{"short b", iterative.MethodJacobi, square, matrix.Vector{1, 2}, nil, 1, nil, matrix.ErrDimensionMismatch},
		{"long x0", iterative.MethodGaussSeidel, square, matrix.Vector{1, 2, 3}, matrix.Vector{0, 0, 0, 0}, 1, nil, matrix.ErrDimensionMismatch},
		{"nan in b", iterative.MethodJacobi, square, matrix.Vector{1, math.NaN(), 3}, nil, 1, nil, matrix.ErrNaNInf},
		{"negative accuracy", iterative.MethodJacobi, square, matrix.Vector{1, 2, 3}, nil, -1e-3, nil, iterative.ErrInvalidAccuracy},
		{"nan accuracy", iterative.MethodJacobi, square, matrix.Vector{1, 2, 3}, nil, math.NaN(), nil, iterative.ErrInvalidAccuracy},
		{"inf accuracy", iterative.MethodJacobi, square, matrix.Vector{1, 2, 3}, nil, math.Inf(1), nil, iterative.ErrInvalidAccuracy},
		{"unknown method", iterative.Method(9), square, matrix.Vector{1, 2, 3}, nil, 1, nil, iterative.ErrUnknownMethod},
		{"zero cap", iterative.MethodJacobi, square, matrix.Vector{1, 2, 3}, nil, 1,
			[]iterative.Option{iterative.WithMaxIterations(0)}, iterative.ErrOptionViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := iterative.Solve(tc.method, tc.a, tc.b, tc.x0, tc.acc, tc.opts...)
			require.Nil(t, res)
			require.ErrorIs(t, err, tc.want)

			var se *iterative.SolveError
			require.True(t, errors.As(err, &se))
			require.Equal(t, "Solve", se.Op)
		})
	}
}

func TestOnSweepStops(t *testing.T) {
	var seen []int
	res, err := iterative.Jacobi(tridiag3(t), matrix.Vector{2, 4, 10}, nil, 1e-12,
		iterative.WithOnSweep(func(k int, x matrix.Vector, _ float64) bool {
			seen = append(seen, k)
			x[0] = 1e9 // private copy; must not leak into the solve
			return k < 3
		}))
	require.NoError(t, err)
	require.True(t, res.Stopped)
	require.False(t, res.Converged)
	require.False(t, res.LimitReached)
	require.Equal(t, 3, res.Sweeps)
	require.Equal(t, []int{1, 2, 3}, seen)
	require.Less(t, res.Solution()[0], 1e9)
}

// TestDivergenceIsNotAnError: a non-dominant system grows until the cap.
func TestDivergenceIsNotAnError(t *testing.T) {
	a := dense(t, [][]float64{{1, 3}, {3, 1}})
	res, err := iterative.Jacobi(a, matrix.Vector{1, 1}, nil, 1e-9, iterative.WithMaxIterations(20))
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.True(t, res.LimitReached)
	require.Greater(t, math.Abs(res.Solution()[0]), 1e6)
}

func TestSolveSystem(t *testing.T) {
	sys, err := linsys.Read(strings.NewReader("4,-1,0,2,1\n-1,4,-1,4,1\n0,-1,4,10,1\n"))
	require.NoError(t, err)

	res, err := iterative.SolveSystem(iterative.MethodGaussSeidel, sys, 1e-10)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, iterative.MethodGaussSeidel, res.Method)
	require.InDeltaSlice(t, []float64{1, 2, 3}, []float64(res.Solution()), 1e-8)

	// The start vector was used: the first iterate differs from a zero start.
	x1, err := res.History.At(0)
	require.NoError(t, err)
	require.InDelta(t, (2.0+1)/4, x1[0], 1e-15)

	coeffs, err := linsys.Read(strings.NewReader("4,1\n1,3\n"))
	require.NoError(t, err)
	_, err = iterative.SolveSystem(iterative.MethodJacobi, coeffs, 1e-6)
	require.ErrorIs(t, err, iterative.ErrMissingResult)

	_, err = iterative.SolveSystem(iterative.MethodJacobi, nil, 1e-6)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestResidual(t *testing.T) {
	a := tridiag3(t)
	b := matrix.Vector{2, 4, 10}

	r, err := iterative.Residual(a, b, matrix.Vector{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 0.0, r)

	r, err = iterative.Residual(a, b, matrix.Vector{0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, 10.0, r)

	_, err = iterative.Residual(a, b, matrix.Vector{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = iterative.Residual(a, nil, matrix.Vector{1, 2, 3})
	require.ErrorIs(t, err, iterative.ErrMissingResult)
}
