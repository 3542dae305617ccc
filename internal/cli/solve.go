// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/itersolve/config"
	"github.com/katalvlaran/itersolve/iterative"
	"github.com/katalvlaran/itersolve/linsys"
	"github.com/katalvlaran/itersolve/matrix"
)

// SolveOptions holds flags for the solve command. Zero values defer to
// the configuration; only flags set on the command line override it.
type SolveOptions struct {
	*RootOptions
	Method        string
	Accuracy      float64
	MaxIterations int
	Print         string
	Delimiter     string
	Reference     bool
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve a linear system iteratively",
		Long: `Solve the linear system stored in <file> with the Jacobi or
Gauss-Seidel method and print the iterates.

The exit status is 0 when the method converged, 1 when the iteration limit
was reached first and 2 for invalid input.

Example:
  itersolve solve --method jacobi --accuracy 1e-9 system.csv
  itersolve solve --print all --reference system.csv
  itersolve solve --format json --delimiter ';' system.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.effectiveConfig(cmd)
			if err != nil {
				f := opts.formatter(cmd)
				_ = f.Error(CodeUsage, err.Error(), nil)
				return WrapExitError(ExitCommandError, "invalid solve options", err)
			}
			return runSolve(opts.RootOptions, cmd, solveRequest{
				Path:      args[0],
				Config:    cfg,
				Reference: opts.Reference,
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Method, "method", "m", "", "iteration method (jacobi|gauss-seidel)")
	cmd.Flags().Float64VarP(&opts.Accuracy, "accuracy", "a", 0, "stop when no component moves by this much")
	cmd.Flags().IntVarP(&opts.MaxIterations, "max-iterations", "k", 0, "sweep cap")
	cmd.Flags().StringVarP(&opts.Print, "print", "p", "", "print every iterate or only the last (all|last)")
	cmd.Flags().StringVarP(&opts.Delimiter, "delimiter", "d", "", `field delimiter; "\t" for tabs`)
	cmd.Flags().BoolVar(&opts.Reference, "reference", false, "compare with a direct LU solution")

	return cmd
}

// effectiveConfig copies the loaded configuration and applies the flags
// set on the command line.
func (o *SolveOptions) effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := *o.Config
	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Solver.Method = o.Method
	}
	if flags.Changed("accuracy") {
		cfg.Solver.Accuracy = o.Accuracy
	}
	if flags.Changed("max-iterations") {
		cfg.Solver.MaxIterations = o.MaxIterations
	}
	if flags.Changed("print") {
		cfg.Output.Print = o.Print
	}
	if flags.Changed("delimiter") {
		cfg.Input.Delimiter = unescapeDelimiter(o.Delimiter)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// unescapeDelimiter accepts the spellings a shell user types for a tab.
func unescapeDelimiter(s string) string {
	switch strings.ToLower(s) {
	case `\t`, "tab":
		return "\t"
	}
	return s
}

// solveRequest is one fully specified solve, built from flags or prompts.
type solveRequest struct {
	Path      string
	Config    *config.Config
	Reference bool
}

// solveReport is the rendered outcome of a solve.
type solveReport struct {
	File          string        `json:"file"`
	N             int           `json:"n"`
	Schema        string        `json:"schema"`
	Method        string        `json:"method"`
	Accuracy      float64       `json:"accuracy"`
	Sweeps        int           `json:"sweeps"`
	Converged     bool          `json:"converged"`
	LimitReached  bool          `json:"limit_reached"`
	Delta         jsonFloat     `json:"delta"`
	Solution      []jsonFloat   `json:"solution"`
	Residual      jsonFloat     `json:"residual"`
	Iterates      [][]jsonFloat `json:"iterates,omitempty"`
	Reference     []jsonFloat   `json:"reference,omitempty"`
	ReferenceDiff *jsonFloat    `json:"reference_diff,omitempty"`

	history *iterative.History
	all     bool
}

// String renders the report as plain text.
func (r *solveReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "system: %s (n=%d, %s)\n", r.File, r.N, r.Schema)
	fmt.Fprintf(&b, "method: %s, accuracy: %g\n", r.Method, r.Accuracy)
	if r.all {
		r.history.Each(func(sweep int, x matrix.Vector) bool {
			fmt.Fprintf(&b, "sweep %d: %s\n", sweep, x)
			return true
		})
	}
	if r.Converged {
		fmt.Fprintf(&b, "converged after %d sweeps (delta %g)\n", r.Sweeps, r.Delta)
	} else {
		fmt.Fprintf(&b, "iteration limit reached after %d sweeps (delta %g)\n", r.Sweeps, r.Delta)
	}
	fmt.Fprintf(&b, "solution: %s\n", vectorOf(r.Solution))
	fmt.Fprintf(&b, "residual: %g\n", r.Residual)
	if r.Reference != nil {
		fmt.Fprintf(&b, "reference (LU): %s\n", vectorOf(r.Reference))
		fmt.Fprintf(&b, "max difference to reference: %g\n", *r.ReferenceDiff)
	}
	return b.String()
}

func vectorOf(xs []jsonFloat) matrix.Vector {
	v := make(matrix.Vector, len(xs))
	for i, x := range xs {
		v[i] = float64(x)
	}
	return v
}

// runSolve loads, solves and reports one system. It is shared by the solve
// and interactive commands.
func runSolve(opts *RootOptions, cmd *cobra.Command, req solveRequest) error {
	f := opts.formatter(cmd)
	log := opts.Logger.With("file", req.Path)
	cfg := req.Config

	method, err := cfg.Method()
	if err != nil {
		_ = f.Error(CodeUsage, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid method", err)
	}

	start := time.Now()
	sys, err := linsys.Load(req.Path, cfg.LoaderOptions()...)
	if err != nil {
		_ = f.Error(CodeInput, err.Error(), inputDetails(err))
		return WrapExitError(ExitCommandError, "failed to load system", err)
	}
	log.Info("system loaded", "n", sys.N(), "schema", sys.Schema.String(), "elapsed", time.Since(start))

	if _, strict, derr := matrix.IsDiagonallyDominant(sys.A); derr == nil && !strict {
		log.Warn("matrix is not strictly diagonally dominant; convergence is not guaranteed")
	}

	start = time.Now()
	res, err := iterative.SolveSystem(method, sys, cfg.Solver.Accuracy, cfg.SolverOptions()...)
	if err != nil {
		_ = f.Error(CodeSolve, err.Error(), solveDetails(err))
		return WrapExitError(ExitCommandError, "failed to solve", err)
	}
	log.Info("solve finished",
		"method", method.String(),
		"sweeps", res.Sweeps,
		"converged", res.Converged,
		"delta", res.Delta,
		"elapsed", time.Since(start))

	x := res.Solution()
	if !x.IsFinite() {
		log.Warn("iterate is not finite; the method diverged")
	}
	residual, err := iterative.Residual(sys.A, sys.B, x)
	if err != nil {
		_ = f.Error(CodeSolve, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to compute residual", err)
	}

	report := &solveReport{
		File:         req.Path,
		N:            sys.N(),
		Schema:       sys.Schema.String(),
		Method:       method.String(),
		Accuracy:     cfg.Solver.Accuracy,
		Sweeps:       res.Sweeps,
		Converged:    res.Converged,
		LimitReached: res.LimitReached,
		Delta:        jsonFloat(res.Delta),
		Solution:     jsonFloats(x),
		Residual:     jsonFloat(residual),
		history:      res.History,
		all:          cfg.Output.Print == config.PrintAll,
	}
	if report.all {
		res.History.Each(func(_ int, it matrix.Vector) bool {
			report.Iterates = append(report.Iterates, jsonFloats(it))
			return true
		})
	}
	if req.Reference {
		addReference(report, sys, x, log)
	}

	if err = f.Success(report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	if !res.Converged {
		return NewExitError(ExitFailure, fmt.Sprintf("iteration limit reached after %d sweeps", res.Sweeps))
	}
	return nil
}

// addReference attaches the direct LU solution. A failed factorization
// (zero pivot) is only logged.
func addReference(report *solveReport, sys *linsys.System, x matrix.Vector, log *slog.Logger) {
	ref, err := matrix.LUSolve(sys.A, sys.B)
	if err != nil {
		log.Warn("reference solution unavailable", "error", err)
		return
	}
	diff, err := x.MaxAbsDiff(ref)
	if err != nil {
		log.Warn("reference solution unavailable", "error", err)
		return
	}
	d := jsonFloat(diff)
	report.Reference = jsonFloats(ref)
	report.ReferenceDiff = &d
}

// inputDetails extracts the location of a loader failure for JSON output.
func inputDetails(err error) map[string]any {
	var fc *linsys.FieldConversionError
	if errors.As(err, &fc) {
		return map[string]any{"row": fc.Row + 1, "column": fc.Col + 1, "token": fc.Token}
	}
	var mf *linsys.MalformedFileError
	if errors.As(err, &mf) {
		return map[string]any{"line": mf.Line, "row": mf.Row, "want_columns": mf.Want, "got_columns": mf.Got}
	}
	var us *linsys.UnsupportedShapeError
	if errors.As(err, &us) {
		return map[string]any{"rows": us.Rows, "columns": us.Cols}
	}
	return nil
}

// solveDetails extracts the offending row of a singular diagonal.
func solveDetails(err error) map[string]any {
	var sd *iterative.SingularDiagonalError
	if errors.As(err, &sd) {
		return map[string]any{"row": sd.Row + 1, "value": sd.Value}
	}
	return nil
}
