// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/itersolve/linsys"
	"github.com/katalvlaran/itersolve/matrix"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Delimiter string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the shape and schema of a system file",
		Long: `Measure a system file without solving it: rows, columns, the
schema implied by the shape, the diagonal (a zero entry makes the system
unsolvable for both methods) and whether the matrix is diagonally dominant
(which guarantees convergence of both methods).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Delimiter, "delimiter", "d", "", `field delimiter; "\t" for tabs`)

	return cmd
}

// inspectReport describes a system file.
type inspectReport struct {
	File      string      `json:"file"`
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	Schema    string      `json:"schema"`
	Solvable  bool        `json:"solvable"`
	Diagonal  []jsonFloat `json:"diagonal"`
	Dominance string      `json:"dominance"` // "strict", "weak" or "none"
}

func (r *inspectReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "file: %s\n", r.File)
	fmt.Fprintf(&b, "rows: %d\n", r.Rows)
	fmt.Fprintf(&b, "cols: %d\n", r.Cols)
	fmt.Fprintf(&b, "schema: %s\n", r.Schema)
	fmt.Fprintf(&b, "solvable: %t\n", r.Solvable)
	fmt.Fprintf(&b, "diagonal: %s\n", vectorOf(r.Diagonal))
	fmt.Fprintf(&b, "diagonal dominance: %s\n", r.Dominance)
	return b.String()
}

func runInspect(opts *InspectOptions, cmd *cobra.Command, path string) error {
	f := opts.formatter(cmd)

	cfg := *opts.Config
	if cmd.Flags().Changed("delimiter") {
		cfg.Input.Delimiter = unescapeDelimiter(opts.Delimiter)
	}
	if err := cfg.Validate(); err != nil {
		_ = f.Error(CodeUsage, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid inspect options", err)
	}
	loaderOpts := cfg.LoaderOptions()

	rows, cols, err := linsys.DimensionsFromFile(path, loaderOpts...)
	if err != nil {
		_ = f.Error(CodeInput, err.Error(), inputDetails(err))
		return WrapExitError(ExitCommandError, "failed to measure system", err)
	}
	opts.Logger.Debug("dimensions measured", "file", path, "rows", rows, "cols", cols)

	sys, err := linsys.Load(path, loaderOpts...)
	if err != nil {
		_ = f.Error(CodeInput, err.Error(), inputDetails(err))
		return WrapExitError(ExitCommandError, "failed to load system", err)
	}

	weak, strict, err := matrix.IsDiagonallyDominant(sys.A)
	if err != nil {
		_ = f.Error(CodeInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to inspect matrix", err)
	}

	return f.Success(&inspectReport{
		File:      path,
		Rows:      rows,
		Cols:      cols,
		Schema:    sys.Schema.String(),
		Solvable:  sys.Schema.Solvable(),
		Diagonal:  jsonFloats(sys.A.Diagonal()),
		Dominance: dominance(weak, strict),
	})
}

func dominance(weak, strict bool) string {
	switch {
	case strict:
		return "strict"
	case weak:
		return "weak"
	default:
		return "none"
	}
}
