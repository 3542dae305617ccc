// SPDX-License-Identifier: MIT

package iterative

import (
	"fmt"
	"strings"
)

// Method selects the sweep rule.
type Method int

const (
	// MethodJacobi computes every component from the previous iterate.
	MethodJacobi Method = iota + 1

	// MethodGaussSeidel updates components in place, in index order, so
	// later rows of the same sweep see the fresh values.
	MethodGaussSeidel
)

// String returns the canonical name used in flags, config files and output.
func (m Method) String() string {
	switch m {
	case MethodJacobi:
		return "jacobi"
	case MethodGaussSeidel:
		return "gauss-seidel"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	return m == MethodJacobi || m == MethodGaussSeidel
}

// ParseMethod maps a user-supplied name to a Method. Matching is
// case-insensitive and ignores surrounding whitespace. The menu numbers
// "1" and "2" of the interactive prompt are accepted as well.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jacobi", "1":
		return MethodJacobi, nil
	case "gauss-seidel", "gaussseidel", "gauss_seidel", "gs", "2":
		return MethodGaussSeidel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// MarshalText implements encoding.TextMarshaler so a Method renders by name
// in JSON output and config files.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseMethod.
func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v

	return nil
}
