package dtw

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// Algorithm is the trace name used by this package.
const Algorithm = "dtw"

// Inf marks an unreachable cell.
const Inf int64 = math.MaxInt64

// MaxLength bounds each sequence.
const MaxLength = 32

// MaxValue bounds absolute sequence values and the slope penalty, keeping
// every finite cost far from overflow.
const MaxValue = 1 << 20

var (
	// ErrEmptySequence indicates that a or b is empty.
	ErrEmptySequence = errors.New("dtw: input sequences must be non-empty")

	// ErrTooLong indicates a sequence longer than MaxLength.
	ErrTooLong = errors.New("dtw: sequence too long")

	// ErrValueRange indicates a value outside [-MaxValue, MaxValue].
	ErrValueRange = errors.New("dtw: value out of range")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("dtw: invalid option")
)

// Coord is a 0-based pair of aligned positions: a[I] with b[J].
type Coord struct {
	I, J int
}

// CellID names table cell (i, j) for highlight sets.
func CellID(i, j int) string { return fmt.Sprintf("%d:%d", i, j) }

// Table is the DP state. Cost has len(A)+1 rows of len(B)+1 cells.
type Table struct {
	A, B []int
	Cost [][]int64
}

// Clone deep-copies t.
func (t Table) Clone() Table {
	c := Table{A: append([]int(nil), t.A...), B: append([]int(nil), t.B...), Cost: make([][]int64, len(t.Cost))}
	for i, row := range t.Cost {
		c.Cost[i] = append([]int64(nil), row...)
	}

	return c
}

// Snapshot is the state captured at each step.
type Snapshot struct {
	Table Table

	// I, J locate the cell the step is about; -1 when none.
	I, J int

	// Path is the traceback so far, from (n-1, m-1) backwards.
	Path []Coord
}

func cloneSnapshot(s Snapshot) Snapshot {
	s.Table = s.Table.Clone()
	s.Path = append([]Coord(nil), s.Path...)

	return s
}

// Result summarises a run.
type Result struct {
	// Distance is D[n][m], or Inf when the window allows no alignment.
	Distance int64

	// Aligned is false when Distance is Inf.
	Aligned bool

	// Path is the optimal warping path from (0, 0) to (n-1, m-1).
	Path []Coord
}

// Options configures a run.
type Options struct {
	// Window is the Sakoe–Chiba band; -1 means unconstrained.
	Window int

	// SlopePenalty is added to every non-diagonal move.
	SlopePenalty int64

	err error
}

// Option mutates Options.
type Option func(*Options)

// WithWindow restricts alignment to |i-j| <= w. w must be >= 0.
func WithWindow(w int) Option {
	return func(o *Options) {
		if w < 0 {
			o.err = errors.Wrapf(ErrOptionViolation, "window %d is negative", w)
			return
		}
		o.Window = w
	}
}

// WithSlopePenalty charges p for each insertion or deletion move.
func WithSlopePenalty(p int64) Option {
	return func(o *Options) {
		if p < 0 || p > MaxValue {
			o.err = errors.Wrapf(ErrOptionViolation, "slope penalty %d not in [0, %d]", p, MaxValue)
			return
		}
		o.SlopePenalty = p
	}
}

// DefaultOptions is unconstrained with no penalty.
func DefaultOptions() Options { return Options{Window: -1} }

// FormatCost renders c, or ∞ for Inf.
func FormatCost(c int64) string {
	if c == Inf {
		return "∞"
	}

	return fmt.Sprintf("%d", c)
}
