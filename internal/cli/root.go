// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/itersolve/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// RunID stamps JSON responses; tests replace it for stable output.
	RunID RunIDFunc

	// Config is the effective configuration after PersistentPreRunE.
	Config *config.Config

	// Logger writes diagnostics to the command's stderr.
	Logger *slog.Logger

	// newPrompter overrides the line editor of the interactive command
	// (for testing). If nil, a liner session on the terminal is used.
	newPrompter func() prompter
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.OutputText, config.OutputJSON}

// NewRootCommand creates the root command for the itersolve CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{RunID: NewRunID})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "itersolve",
		Short: "itersolve - iterative linear system solver",
		Long: `Solve square linear systems A·x = b stored in delimited text files
with the Jacobi or Gauss-Seidel method.

A file with n rows holds the coefficient matrix in its first n columns,
optionally followed by the result vector b and the start vector x⁰.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := prepare(opts, cmd)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.OutputText, "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.toml, .yaml, .yml)")

	// Add subcommands
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewInteractiveCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// prepare loads the configuration, applies the global flags on top of it
// and configures logging.
func prepare(opts *RootOptions, cmd *cobra.Command) error {
	opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
		opts.Logger.Debug("config loaded", "path", opts.ConfigPath)
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = opts.Format
	}
	if !isValidFormat(cfg.Output.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", cfg.Output.Format, ValidFormats))
	}
	opts.Format = cfg.Output.Format
	opts.Config = cfg

	return nil
}

// newLogger mirrors the usual slog setup: text on stderr, debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// formatter builds the OutputFormatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		RunID:     o.RunID,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
