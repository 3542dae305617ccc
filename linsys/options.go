// SPDX-License-Identifier: MIT

package linsys

import "fmt"

// DEFAULTS - single source of truth for the input format.
const (
	// DefaultDelimiter separates fields within a record.
	DefaultDelimiter byte = ','

	// DefaultTerminator ends a record. A trailing '\r' (CRLF files) is
	// absorbed by field trimming.
	DefaultTerminator byte = '\n'
)

// Option configures the loader via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when the
// loader is invoked.
type Option func(*Options)

// Options holds the effective input-format configuration.
type Options struct {
	delimiter  byte
	terminator byte

	// internal error recorded during option parsing
	err error
}

// WithDelimiter sets the single-byte field delimiter.
// Characters that can appear inside a number are rejected.
func WithDelimiter(d byte) Option {
	return func(o *Options) {
		if isNumberByte(d) {
			o.err = fmt.Errorf("%w: delimiter %q can appear inside a number", ErrOptionViolation, d)
			return
		}
		o.delimiter = d
	}
}

// WithTerminator sets the single-byte record terminator.
func WithTerminator(t byte) Option {
	return func(o *Options) {
		if isNumberByte(t) {
			o.err = fmt.Errorf("%w: terminator %q can appear inside a number", ErrOptionViolation, t)
			return
		}
		o.terminator = t
	}
}

// Delimiter returns the effective delimiter.
func (o Options) Delimiter() byte { return o.delimiter }

// Terminator returns the effective terminator.
func (o Options) Terminator() byte { return o.terminator }

// gatherOptions applies setters on top of the defaults and validates the result.
func gatherOptions(user ...Option) (Options, error) {
	o := Options{
		delimiter:  DefaultDelimiter,
		terminator: DefaultTerminator,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}
	if o.err != nil {
		return o, o.err
	}
	if o.delimiter == o.terminator {
		return o, fmt.Errorf("%w: delimiter and terminator are both %q", ErrOptionViolation, o.delimiter)
	}

	return o, nil
}

// isBlank reports whether c carries no content for blank-line detection.
// A whitespace byte that doubles as the delimiter is content.
func (o Options) isBlank(c byte) bool {
	return c != o.delimiter && (c == ' ' || c == '\t' || c == '\r' || c == '\n')
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E'
}
