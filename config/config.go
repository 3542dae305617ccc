// SPDX-License-Identifier: MIT

// Package config holds the solver, input and output defaults of the
// itersolve command and loads overrides from a TOML or YAML file.
//
// Precedence (highest first): command-line flags, the --config file,
// built-in defaults. Keys missing from a file keep their default value.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/itersolve/iterative"
	"github.com/katalvlaran/itersolve/linsys"
)

var (
	// ErrInvalidConfig is matched by every validation or decoding failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnsupportedFormat is returned for file extensions other than
	// .toml, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Output modes and formats.
const (
	PrintAll  = "all"
	PrintLast = "last"

	OutputText = "text"
	OutputJSON = "json"
)

// Config is the complete itersolve configuration.
type Config struct {
	Solver SolverConfig `toml:"solver" yaml:"solver"`
	Input  InputConfig  `toml:"input" yaml:"input"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// SolverConfig tunes iterative.Solve.
type SolverConfig struct {
	Method            string  `toml:"method" yaml:"method"`
	Accuracy          float64 `toml:"accuracy" yaml:"accuracy"`
	MaxIterations     int     `toml:"max_iterations" yaml:"max_iterations"`
	DiagonalTolerance float64 `toml:"diagonal_tolerance" yaml:"diagonal_tolerance"`
}

// InputConfig describes the system file format. Both values are single
// characters; "\t" selects tab-separated files.
type InputConfig struct {
	Delimiter  string `toml:"delimiter" yaml:"delimiter"`
	Terminator string `toml:"terminator" yaml:"terminator"`
}

// MarshalYAML writes both characters as double-quoted scalars. yaml.v3
// otherwise renders "\n" as a block scalar that decodes back empty.
func (c InputConfig) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			yamlKey("delimiter"), yamlQuoted(c.Delimiter),
			yamlKey("terminator"), yamlQuoted(c.Terminator),
		},
	}, nil
}

func yamlKey(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlQuoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	// Print is "all" (every iterate) or "last" (final iterate only).
	Print string `toml:"print" yaml:"print"`

	// Format is "text" or "json".
	Format string `toml:"format" yaml:"format"`
}

// DefaultAccuracy is the stopping threshold used when none is configured.
const DefaultAccuracy = 1e-6

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Method:            iterative.MethodGaussSeidel.String(),
			Accuracy:          DefaultAccuracy,
			MaxIterations:     iterative.DefaultMaxIterations,
			DiagonalTolerance: iterative.DefaultDiagonalTolerance,
		},
		Input: InputConfig{
			Delimiter:  string(linsys.DefaultDelimiter),
			Terminator: string(linsys.DefaultTerminator),
		},
		Output: OutputConfig{
			Print:  PrintLast,
			Format: OutputText,
		},
	}
}

// FormatOf maps a file name to its format by extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads path on top of Default and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg, err := Decode(raw, format)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%s): %w", path, err)
	}

	return cfg, nil
}

// Decode parses raw in the given format on top of Default and validates it.
func Decode(raw []byte, format string) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Encode writes c to w in the given format.
func (c *Config) Encode(w io.Writer, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ValidationError names one offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every failed check of one Validate call.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match.
func (e ValidateErrors) Unwrap() error { return ErrInvalidConfig }

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := iterative.ParseMethod(c.Solver.Method); err != nil {
		errs = append(errs, ValidationError{
			Field:   "solver.method",
			Message: fmt.Sprintf("unknown method %q, must be one of: jacobi, gauss-seidel", c.Solver.Method),
		})
	}
	if c.Solver.Accuracy < 0 || math.IsNaN(c.Solver.Accuracy) || math.IsInf(c.Solver.Accuracy, 0) {
		errs = append(errs, ValidationError{
			Field:   "solver.accuracy",
			Message: fmt.Sprintf("must be finite and non-negative, got %g", c.Solver.Accuracy),
		})
	}
	if c.Solver.MaxIterations <= 0 {
		errs = append(errs, ValidationError{
			Field:   "solver.max_iterations",
			Message: fmt.Sprintf("must be positive, got %d", c.Solver.MaxIterations),
		})
	}
	if t := c.Solver.DiagonalTolerance; t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		errs = append(errs, ValidationError{
			Field:   "solver.diagonal_tolerance",
			Message: fmt.Sprintf("must be finite and non-negative, got %g", t),
		})
	}

	if len(c.Input.Delimiter) != 1 {
		errs = append(errs, ValidationError{
			Field:   "input.delimiter",
			Message: fmt.Sprintf("must be a single byte, got %q", c.Input.Delimiter),
		})
	}
	if len(c.Input.Terminator) != 1 {
		errs = append(errs, ValidationError{
			Field:   "input.terminator",
			Message: fmt.Sprintf("must be a single byte, got %q", c.Input.Terminator),
		})
	}

	switch c.Output.Print {
	case PrintAll, PrintLast:
	default:
		errs = append(errs, ValidationError{
			Field:   "output.print",
			Message: fmt.Sprintf("invalid mode %q, must be one of: all, last", c.Output.Print),
		})
	}
	switch c.Output.Format {
	case OutputText, OutputJSON:
	default:
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("invalid format %q, must be one of: text, json", c.Output.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Method returns the configured solver method.
func (c *Config) Method() (iterative.Method, error) {
	return iterative.ParseMethod(c.Solver.Method)
}

// SolverOptions translates the solver section into iterative options.
// Call Validate first; a negative tolerance panics in
// iterative.WithDiagonalTolerance.
func (c *Config) SolverOptions() []iterative.Option {
	opts := []iterative.Option{iterative.WithMaxIterations(c.Solver.MaxIterations)}
	if c.Solver.DiagonalTolerance > 0 {
		opts = append(opts, iterative.WithDiagonalTolerance(c.Solver.DiagonalTolerance))
	}

	return opts
}

// LoaderOptions translates the input section into linsys options.
func (c *Config) LoaderOptions() []linsys.Option {
	var opts []linsys.Option
	if len(c.Input.Delimiter) == 1 {
		opts = append(opts, linsys.WithDelimiter(c.Input.Delimiter[0]))
	}
	if len(c.Input.Terminator) == 1 {
		opts = append(opts, linsys.WithTerminator(c.Input.Terminator[0]))
	}

	return opts
}
