// SPDX-License-Identifier: MIT

package linsys

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newByteReader wraps r in a buffered reader that drops a leading UTF-8
// byte-order mark, as written by spreadsheet exports. Every other byte
// passes through untouched, so error tokens show what the file holds.
// A UTF-16 byte-order mark switches to UTF-16 decoding.
func newByteReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
}

// rowCounter tracks the column count of every non-blank record and enforces
// that all of them match the first one. It is shared by both loader passes.
type rowCounter struct {
	want int // column count of the first non-blank row; -1 until seen
	rows int // non-blank rows closed so far
	line int // 1-based physical line of the record being scanned
}

func newRowCounter() rowCounter { return rowCounter{want: -1, line: 1} }

// close ends a non-blank record with cols fields.
func (rc *rowCounter) close(cols int) error {
	if rc.want == -1 {
		rc.want = cols
	} else if cols != rc.want {
		return &MalformedFileError{Line: rc.line, Row: rc.rows + 1, Want: rc.want, Got: cols}
	}
	rc.rows++

	return nil
}

// Dimensions scans r once and returns the number of data rows and the
// number of fields per row.
//
// Implementation:
//   - Stage 1: read byte by byte; a delimiter increments the column counter.
//   - Stage 2: a terminator (or EOF after content) closes the row; the
//     pending field counts as its last column.
//   - Stage 3: compare every row against the first non-blank row.
//
// Behavior highlights:
//   - A final record without terminator is a full row.
//   - Blank (empty or whitespace-only) lines are skipped, never counted.
//   - Empty input yields (0, 0, nil); Interpret rejects that shape.
//
// Errors:
//   - *MalformedFileError (ErrMalformedFile) on the first inconsistent row.
//   - ErrOptionViolation for invalid options; read errors are wrapped.
//
// Complexity:
//   - Time O(size of input), Space O(1).
func Dimensions(r io.Reader, opts ...Option) (rows, cols int, err error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return 0, 0, err
	}

	br := newByteReader(r)
	rc := newRowCounter()
	pending := 0     // delimiters seen in the current record
	content := false // current record has non-blank bytes

	var c byte
	for {
		c, err = br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, fmt.Errorf("linsys.Dimensions: line %d: %w", rc.line, err)
		}

		switch {
		case c == o.terminator:
			if content {
				if err = rc.close(pending + 1); err != nil {
					return 0, 0, err
				}
			}
			pending, content = 0, false
			rc.line++
		case c == o.delimiter:
			pending++
			content = true
		case !o.isBlank(c):
			content = true
		}
	}
	if content {
		if err = rc.close(pending + 1); err != nil {
			return 0, 0, err
		}
	}
	if rc.rows == 0 {
		return 0, 0, nil
	}

	return rc.rows, rc.want, nil
}

// DimensionsFromFile opens path and runs Dimensions over its content.
func DimensionsFromFile(path string, opts ...Option) (rows, cols int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("linsys.DimensionsFromFile: %w", err)
	}
	defer f.Close()

	return Dimensions(f, opts...)
}
