// SPDX-License-Identifier: MIT

package iterative

import (
	"fmt"
	"math"

	"github.com/katalvlaran/itersolve/matrix"
)

// DEFAULTS - single source of truth for solver tuning.
const (
	// DefaultMaxIterations caps the number of sweeps per solve.
	DefaultMaxIterations = 100

	// DefaultDiagonalTolerance rejects exactly-zero diagonal entries only.
	DefaultDiagonalTolerance = 0.0
)

const panicDiagonalToleranceInvalid = "iterative: WithDiagonalTolerance: eps must be finite, non-negative"

// SweepFunc observes a completed sweep. x is a private copy of the iterate
// and delta the max-norm difference to the previous one. Returning false
// stops the solve after this sweep (Result.Stopped).
type SweepFunc func(sweep int, x matrix.Vector, delta float64) bool

// Option configures the solver via functional arguments.
// Invalid counts are recorded and surfaced as ErrOptionViolation when the
// solver is invoked; nonsensical tolerances panic.
type Option func(*Options)

// Options holds the effective solver configuration.
type Options struct {
	// MaxIterations is the sweep cap K (> 0).
	MaxIterations int

	// DiagonalTolerance: |a_ii| ≤ DiagonalTolerance is treated as zero.
	DiagonalTolerance float64

	// OnSweep is called after every sweep; nil means no hook.
	OnSweep SweepFunc

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with DefaultMaxIterations,
// DefaultDiagonalTolerance and no hook.
func DefaultOptions() Options {
	return Options{
		MaxIterations:     DefaultMaxIterations,
		DiagonalTolerance: DefaultDiagonalTolerance,
	}
}

// WithMaxIterations sets the sweep cap.
//
//	k > 0:  at most k sweeps
//	k <= 0: invalid option → ErrOptionViolation
func WithMaxIterations(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrOptionViolation, k)
			return
		}
		o.MaxIterations = k
	}
}

// WithDiagonalTolerance treats diagonal entries with |a_ii| ≤ eps as zero.
// Panics if eps is negative, NaN or infinite.
func WithDiagonalTolerance(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicDiagonalToleranceInvalid)
	}

	return func(o *Options) { o.DiagonalTolerance = eps }
}

// WithOnSweep registers a per-sweep observer. A nil fn is ignored.
func WithOnSweep(fn SweepFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSweep = fn
		}
	}
}

// gatherOptions applies setters on top of the defaults.
func gatherOptions(user ...Option) (Options, error) {
	o := DefaultOptions()
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o, o.err
}
