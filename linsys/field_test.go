package linsys_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/katalvlaran/itersolve/linsys"
	"github.com/stretchr/testify/require"
)

func TestParseFieldAccepts(t *testing.T) {
	cases := map[string]float64{
		"121":             121,
		"1.21":            1.21,
		"194480735604831": 194480735604831,
		"-3":              -3,
		"+2.5":            2.5,
		".5":              0.5,
		"5.":              5,
		"1e3":             1000,
		"-2.5E-2":         -0.025,
		"  7 ":            7,
		"4\r":             4, // CRLF leftover
	}
	for token, want := range cases {
		t.Run(token, func(t *testing.T) {
			got, err := linsys.ParseField(token)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestParseFieldRejects(t *testing.T) {
	cases := []struct {
		token string
		want  error
	}{
		{"", linsys.ErrEmptyField},
		{"   ", linsys.ErrEmptyField},
		{"abc", linsys.ErrNotANumber},
		{".", linsys.ErrNotANumber},
		{"-", linsys.ErrNotANumber},
		{"Inf", linsys.ErrNotANumber},
		{"NaN", linsys.ErrNotANumber},
		{"1,21", linsys.ErrTrailingGarbage},
		{"1.5x", linsys.ErrTrailingGarbage},
		{"1e", linsys.ErrTrailingGarbage},
		{"0x1p3", linsys.ErrTrailingGarbage},
		{"1.2.3", linsys.ErrTrailingGarbage},
		{"1e999", linsys.ErrNumberRange},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			_, err := linsys.ParseField(tc.token)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, linsys.ErrParse)

			var pe *linsys.ParseError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, tc.token, pe.Token)
		})
	}
}

// TestParseFieldRoundTrip: text → double → same double when re-parsed from
// the canonical decimal rendering.
func TestParseFieldRoundTrip(t *testing.T) {
	values := []float64{0, -0.5, 0.1, 1e-7, 123456789.125, -98765.4321, 6.02214076e23}
	for _, v := range values {
		text := strconv.FormatFloat(v, 'g', -1, 64)
		got, err := linsys.ParseField(text)
		require.NoError(t, err, text)
		require.Equal(t, v, got, text)
	}
}
