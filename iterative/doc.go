// Package iterative solves square linear systems A·x = b with the Jacobi and
// Gauss-Seidel methods.
//
// Both methods rewrite row i of the system as
//
//	x_i = (b_i − Σ_{j≠i} a_ij·x_j) / a_ii
//
// and apply it to every row once per sweep. Jacobi reads the previous
// iterate for all j; Gauss-Seidel reads the values already updated in the
// current sweep, which usually halves the sweep count on diagonally
// dominant systems.
//
// A solve stops when two consecutive iterates differ by less than the
// requested accuracy in every component (max norm), after at least two
// sweeps, or when the sweep cap is reached. Reaching the cap is reported in
// Result.LimitReached and is not an error. Every iterate is kept in an
// arena-backed History so callers can print the full trajectory.
//
// Strict diagonal dominance (see matrix.IsDiagonallyDominant) guarantees
// convergence of both methods; other systems may still converge, or diverge
// until the cap.
//
//	res, err := iterative.GaussSeidel(a, b, nil, 1e-9)
//	if err != nil { ... }
//	x := res.Solution()
//
// The package keeps no state and never logs.
package iterative
