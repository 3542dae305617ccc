// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/itersolve/config"
	"github.com/katalvlaran/itersolve/iterative"
	"github.com/katalvlaran/itersolve/linsys"
)

// prompter reads one answer per prompt. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// InteractiveOptions holds dependencies of the interactive command.
type InteractiveOptions struct {
	*RootOptions
}

// NewInteractiveCommand creates the interactive command.
func NewInteractiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InteractiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for a system file and solver settings",
		Long: `Ask for the path of a system file (repeating until it loads), the
iteration method, the accuracy and whether to print every iterate, then
solve and print the result.

Ctrl-C or Ctrl-D at any prompt leaves without solving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts, cmd)
		},
	}

	return cmd
}

func newLinerPrompter() prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// errAborted signals Ctrl-C/Ctrl-D at a prompt.
var errAborted = errors.New("interactive: aborted")

func runInteractive(opts *InteractiveOptions, cmd *cobra.Command) error {
	newPrompter := opts.newPrompter
	if newPrompter == nil {
		newPrompter = newLinerPrompter
	}
	p := newPrompter()
	defer p.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "this program solves linear systems with the jacobi or gauss-seidel method")
	fmt.Fprintln(out)

	req, err := askRequest(p, out, opts.Config)
	if errors.Is(err, errAborted) {
		fmt.Fprintln(out, "aborted")
		return nil
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "prompt failed", err)
	}

	return runSolve(opts.RootOptions, cmd, req)
}

// askRequest runs the prompt sequence. Every question repeats until the
// answer is valid; the path question until the file loads.
func askRequest(p prompter, out io.Writer, base *config.Config) (solveRequest, error) {
	cfg := *base

	path, err := ask(p, out, "please enter file path of linear system (csv): ",
		func(s string) error {
			_, err := linsys.Load(s, cfg.LoaderOptions()...)
			if err != nil {
				return fmt.Errorf("given path does not exist or file is invalid: %w", err)
			}
			return nil
		})
	if err != nil {
		return solveRequest{}, err
	}

	fmt.Fprint(out, "iteration method:\n1. jacobi\n2. gauss-seidel\n")
	method, err := ask(p, out, "method [1/2]: ", func(s string) error {
		_, err := iterative.ParseMethod(s)
		return err
	})
	if err != nil {
		return solveRequest{}, err
	}
	m, _ := iterative.ParseMethod(method)
	cfg.Solver.Method = m.String()

	accuracy, err := ask(p, out, fmt.Sprintf("accuracy [%g]: ", cfg.Solver.Accuracy), func(s string) error {
		if s == "" {
			return nil
		}
		_, err := parseAccuracy(s)
		return err
	})
	if err != nil {
		return solveRequest{}, err
	}
	if accuracy != "" {
		cfg.Solver.Accuracy, _ = parseAccuracy(accuracy)
	}

	fmt.Fprint(out, "print:\n1. all iterates\n2. last iterate only\n")
	printMode, err := ask(p, out, "print [1/2]: ", func(s string) error {
		_, err := parsePrintMode(s)
		return err
	})
	if err != nil {
		return solveRequest{}, err
	}
	cfg.Output.Print, _ = parsePrintMode(printMode)

	return solveRequest{Path: path, Config: &cfg}, nil
}

// ask prompts until valid accepts the trimmed answer.
func ask(p prompter, out io.Writer, prompt string, valid func(string) error) (string, error) {
	for {
		answer, err := p.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errAborted
		}
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if verr := valid(answer); verr != nil {
			fmt.Fprintf(out, "%v\n", verr)
			continue
		}
		if answer != "" {
			p.AppendHistory(answer)
		}
		return answer, nil
	}
}

func parseAccuracy(s string) (float64, error) {
	v, err := linsys.ParseField(s)
	if err != nil {
		return 0, fmt.Errorf("invalid accuracy: %w", err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid accuracy %s: %w", strconv.Quote(s), iterative.ErrInvalidAccuracy)
	}
	return v, nil
}

func parsePrintMode(s string) (string, error) {
	switch strings.ToLower(s) {
	case "1", config.PrintAll:
		return config.PrintAll, nil
	case "2", config.PrintLast:
		return config.PrintLast, nil
	default:
		return "", fmt.Errorf("invalid print mode %q: enter 1 or 2", s)
	}
}
