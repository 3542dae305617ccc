// SPDX-License-Identifier: MIT

package linsys

import (
	"errors"
	"strconv"
	"strings"
)

// ParseField converts one raw token into a float64.
//
// Accepted grammar (after trimming surrounding whitespace, including the '\r'
// of CRLF files):
//
//	[+-]? digits? ('.' digits?)? ([eE] [+-]? digits)?   with ≥ 1 mantissa digit
//
// The longest numeric prefix is measured first, so the function can tell
// "not a number at all" (nothing consumed) from "numeric with trailing
// garbage" (prefix shorter than the token). Hexadecimal floats, "Inf", "NaN"
// and digit separators are rejected even though strconv would take them.
//
// Errors: *ParseError wrapping ErrEmptyField, ErrNotANumber,
// ErrTrailingGarbage or ErrNumberRange.
// Complexity: O(len(token)). No side effects.
func ParseField(token string) (float64, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, &ParseError{Token: token, Err: ErrEmptyField}
	}

	n := numericPrefix(s)
	switch {
	case n == 0:
		return 0, &ParseError{Token: token, Err: ErrNotANumber}
	case n < len(s):
		return 0, &ParseError{Token: token, Err: ErrTrailingGarbage}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Token: token, Err: ErrNumberRange}
		}

		return 0, &ParseError{Token: token, Err: ErrNotANumber}
	}

	return v, nil
}

// numericPrefix returns how many leading bytes of s form a decimal number.
// An exponent marker only counts when at least one exponent digit follows.
func numericPrefix(s string) int {
	i, digits := 0, 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
