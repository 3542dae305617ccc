// Package matrix is the dense Matrix/Vector store behind the iterative solvers.
//
// The matrix package provides:
//
//   - Dense, a row-major n×m float64 buffer with bounds-checked At/Set
//     (errors, never panics) and a finite-only numeric policy.
//   - Vector, the ordered float64 sequence used for the result vector b,
//     the start vector x⁰ and every snapshot in an iteration history.
//   - Validators (ValidateSquare, ValidateVecLen, IsDiagonallyDominant)
//     shared by the loader and the iteration engine.
//   - MatVec for residuals and LUSolve as a direct reference solution.
//
// The loader (package linsys) is the only writer while a system is populated;
// the iteration engine (package iterative) only reads A.
package matrix
