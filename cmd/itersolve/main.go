// SPDX-License-Identifier: MIT

// Command itersolve solves linear systems with the Jacobi or Gauss-Seidel
// method. See "itersolve --help".
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/itersolve/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Commands report their own ExitErrors; only cobra's usage errors
	// reach stderr here.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
