// Package itersolve solves square linear systems A·x = b stored in
// delimited text files with the Jacobi and Gauss-Seidel methods.
//
// The module is organized in small layers, each usable on its own:
//
//	matrix/        dense row-major Matrix and Vector, validators, MatVec and LU
//	linsys/        two-pass loader: shape scan, schema inference, field parsing
//	iterative/     Jacobi and Gauss-Seidel sweeps, stop rule, iterate History
//	config/        solver, input and output defaults from TOML or YAML
//	internal/cli/  the cobra commands behind cmd/itersolve
//
// A system file with n rows carries the coefficient matrix in its first n
// columns, optionally followed by the result vector b and the start vector
// x⁰ (zero when absent):
//
//	4,-1,0,2,0
//	-1,4,-1,4,0
//	0,-1,4,10,0
//
// Quick start:
//
//	sys, err := linsys.Load("system.csv")
//	if err != nil { ... }
//	res, err := iterative.SolveSystem(iterative.MethodGaussSeidel, sys, 1e-9)
//	if err != nil { ... }
//	fmt.Println(res.Solution(), res.Sweeps, res.Converged)
//
// Or from the shell:
//
//	go install github.com/katalvlaran/itersolve/cmd/itersolve@latest
//	itersolve solve --method gs --accuracy 1e-9 --print all system.csv
package itersolve
