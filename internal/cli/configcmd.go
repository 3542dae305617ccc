// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/itersolve/config"
)

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	*RootOptions
	Encoding string
}

// NewConfigCommand creates the config command, which prints the effective
// configuration so it can be saved and edited.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying --config on top of the
built-in defaults.

Example:
  itersolve config > itersolve.toml
  itersolve config --as yaml --config itersolve.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Config.Encode(cmd.OutOrStdout(), opts.Encoding); err != nil {
				_ = opts.formatter(cmd).Error(CodeUsage, err.Error(), nil)
				return WrapExitError(ExitCommandError, fmt.Sprintf("failed to encode config as %q", opts.Encoding), err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Encoding, "as", config.FormatTOML, "encoding (toml|yaml)")

	return cmd
}
