// SPDX-License-Identifier: MIT

package linsys

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/itersolve/matrix"
)

// initialFieldCap is the starting capacity of the field buffer; it grows on demand.
const initialFieldCap = 32

// System is a fully populated linear system A·x = b.
// B and X0 are nil when the file does not carry them.
type System struct {
	A      *matrix.Dense
	B      matrix.Vector
	X0     matrix.Vector
	Schema Schema
}

// N returns the system size.
func (s *System) N() int { return s.Schema.N }

// Load reads the system stored at path.
// See Read for the format and the error contract; open failures are wrapped
// so errors.Is(err, fs.ErrNotExist) still works.
func Load(path string, opts ...Option) (*System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linsys.Load: %w", err)
	}
	defer f.Close()

	sys, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("linsys.Load(%s): %w", path, err)
	}

	return sys, nil
}

// Read populates a System from r in two passes.
//
// Implementation:
//   - Stage 1: Dimensions + Interpret size the matrix and vectors.
//   - Stage 2: rewind and stream the input exactly once more, accumulating the
//     current field in a growable buffer.
//   - Stage 3: at each delimiter/terminator route the field by column:
//     [0,n) → A[row][col], n → b[row], n+1 → x⁰[row].
//
// Behavior highlights:
//   - Blank lines are skipped, not parsed.
//   - A missing start vector is left nil; the engine synthesizes zeros.
//   - Errors abort the whole load; a partial System is never returned.
//
// Errors:
//   - *MalformedFileError, *UnsupportedShapeError, *FieldConversionError,
//     ErrOptionViolation, wrapped read/seek failures.
//
// Complexity:
//   - Time O(size of input), Space O(n²).
func Read(r io.ReadSeeker, opts ...Option) (*System, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}

	rows, cols, err := Dimensions(r, opts...)
	if err != nil {
		return nil, err
	}
	schema, err := Interpret(rows, cols)
	if err != nil {
		return nil, err
	}

	sys, err := allocate(schema)
	if err != nil {
		return nil, err
	}

	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("linsys.Read: rewind: %w", err)
	}
	if err = populate(r, o, sys); err != nil {
		return nil, err
	}

	return sys, nil
}

// allocate sizes the matrix and the vectors the schema declares.
func allocate(s Schema) (*System, error) {
	a, err := matrix.NewSquare(s.N)
	if err != nil {
		return nil, fmt.Errorf("linsys: allocate %d×%d: %w", s.N, s.N, err)
	}
	sys := &System{A: a, Schema: s}
	if s.HasResult {
		sys.B = make(matrix.Vector, s.N)
	}
	if s.HasStart {
		sys.X0 = make(matrix.Vector, s.N)
	}

	return sys, nil
}

// populate is the second pass: tokenize and route every field.
func populate(r io.Reader, o Options, sys *System) error {
	br := newByteReader(r)
	rc := newRowCounter()
	rc.want = sys.Schema.Cols() // the first pass fixed the width

	field := make([]byte, 0, initialFieldCap)
	col := 0
	content := false

	var c byte
	var err error
	for {
		c, err = br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("linsys.Read: line %d: %w", rc.line, err)
		}

		switch {
		case c == o.terminator:
			if content {
				if err = sys.route(rc, col, field); err != nil {
					return err
				}
				if err = rc.close(col + 1); err != nil {
					return err
				}
			}
			field, col, content = field[:0], 0, false
			rc.line++
		case c == o.delimiter:
			content = true
			if err = sys.route(rc, col, field); err != nil {
				return err
			}
			field = field[:0]
			col++
		default:
			if !o.isBlank(c) {
				content = true
			}
			field = append(field, c)
		}
	}
	if content {
		if err = sys.route(rc, col, field); err != nil {
			return err
		}
		if err = rc.close(col + 1); err != nil {
			return err
		}
	}
	if rc.rows != sys.Schema.N {
		// The input changed between the two passes.
		return fmt.Errorf("linsys.Read: %d rows, want %d: %w", rc.rows, sys.Schema.N, ErrMalformedFile)
	}

	return nil
}

// route parses one field and stores it by column position.
func (s *System) route(rc rowCounter, col int, field []byte) error {
	row := rc.rows
	n := s.Schema.N
	if row >= n || col >= s.Schema.Cols() {
		// More rows or columns than the first pass measured.
		return &MalformedFileError{Line: rc.line, Row: row + 1, Want: s.Schema.Cols(), Got: col + 1}
	}

	token := string(field)
	v, err := ParseField(token)
	if err != nil {
		return &FieldConversionError{Row: row, Col: col, Token: token, Err: err}
	}

	switch {
	case col < n:
		if err = s.A.Set(row, col, v); err != nil {
			return &FieldConversionError{Row: row, Col: col, Token: token, Err: err}
		}
	case col == n:
		s.B[row] = v
	default:
		s.X0[row] = v
	}

	return nil
}
