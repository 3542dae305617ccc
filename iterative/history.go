// SPDX-License-Identifier: MIT

package iterative

import (
	"fmt"

	"github.com/katalvlaran/itersolve/matrix"
)

// historyPrealloc bounds how many entries are reserved up front; the arena
// grows past it on demand.
const historyPrealloc = 128

// History is the ordered record of iterates, one entry per completed sweep.
// Entries live back to back in a single flat buffer of n values each, so
// recording a sweep is one append and no per-entry allocation.
type History struct {
	n    int
	data []float64
}

func newHistory(n, maxSweeps int) *History {
	reserve := min(maxSweeps, historyPrealloc)

	return &History{n: n, data: make([]float64, 0, n*reserve)}
}

// push appends a copy of x as the next entry.
func (h *History) push(x []float64) { h.data = append(h.data, x...) }

// Len returns the number of recorded sweeps.
func (h *History) Len() int {
	if h == nil || h.n == 0 {
		return 0
	}

	return len(h.data) / h.n
}

// Dim returns the length of every entry.
func (h *History) Dim() int {
	if h == nil {
		return 0
	}

	return h.n
}

// view returns entry i without copying, capacity-clipped so appends on it
// cannot clobber the next entry.
func (h *History) view(i int) matrix.Vector {
	lo, hi := i*h.n, (i+1)*h.n

	return matrix.Vector(h.data[lo:hi:hi])
}

// At returns a copy of entry i (0-based; entry i is the iterate after sweep i+1).
// Errors: matrix.ErrOutOfRange when i ∉ [0, Len()).
func (h *History) At(i int) (matrix.Vector, error) {
	if i < 0 || i >= h.Len() {
		return nil, fmt.Errorf("History.At(%d): %w", i, matrix.ErrOutOfRange)
	}

	return h.view(i).Clone(), nil
}

// Last returns a copy of the final iterate, or nil when nothing was recorded.
func (h *History) Last() matrix.Vector {
	n := h.Len()
	if n == 0 {
		return nil
	}

	return h.view(n - 1).Clone()
}

// Each visits the entries in sweep order (sweep numbers start at 1) and
// stops early when fn returns false. x is a read-only view into the arena;
// Clone it to keep it beyond the callback.
func (h *History) Each(fn func(sweep int, x matrix.Vector) bool) {
	n := h.Len()
	for i := 0; i < n; i++ {
		if !fn(i+1, h.view(i)) {
			return
		}
	}
}
