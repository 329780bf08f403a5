package backtrack

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// AlgorithmQueens is the trace name of NQueens.
const AlgorithmQueens = "n-queens"

// Board size limits. MaxBoardAll caps WithAllSolutions, whose trace grows
// about fivefold per extra row.
const (
	MinBoard    = 1
	MaxBoard    = 12
	MaxBoardAll = 8
)

// ErrBoardSize indicates n outside [MinBoard, MaxBoard], or above MaxBoardAll
// when every solution is requested.
var ErrBoardSize = errors.New("backtrack: board size out of range")

// CellKey is the highlight identifier of board or maze cell (row, col).
func CellKey(row, col int) string { return fmt.Sprintf("%d,%d", row, col) }

// Board is an n×n grid of queen markers.
type Board struct {
	N     int
	Cells [][]bool
}

// NewBoard returns an empty n×n board.
func NewBoard(n int) Board {
	b := Board{N: n, Cells: make([][]bool, n)}
	for i := range b.Cells {
		b.Cells[i] = make([]bool, n)
	}

	return b
}

// Clone deep-copies b.
func (b Board) Clone() Board {
	out := Board{N: b.N, Cells: make([][]bool, len(b.Cells))}
	for i, row := range b.Cells {
		out.Cells[i] = append([]bool(nil), row...)
	}

	return out
}

// Queens lists the queen positions in row-major order.
func (b Board) Queens() [][2]int {
	var out [][2]int
	for r, row := range b.Cells {
		for c, q := range row {
			if q {
				out = append(out, [2]int{r, c})
			}
		}
	}

	return out
}

// Attacker returns a queen on the board that shares a row, column or
// diagonal with (row, col).
func (b Board) Attacker(row, col int) (r, c int, ok bool) {
	for _, q := range b.Queens() {
		dr, dc := q[0]-row, q[1]-col
		if dr == 0 || dc == 0 || dr == dc || dr == -dc {
			return q[0], q[1], true
		}
	}

	return 0, 0, false
}

// String renders the board with 'Q' and '.'.
func (b Board) String() string {
	var sb strings.Builder
	for r, row := range b.Cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, q := range row {
			if q {
				sb.WriteByte('Q')
			} else {
				sb.WriteByte('.')
			}
		}
	}

	return sb.String()
}

// QueensSnapshot is the state at one N-Queens step.
type QueensSnapshot struct {
	Board Board

	// Row and Col locate the cell acted on; -1 on init and done.
	Row, Col int

	// Solutions counts complete placements found so far.
	Solutions int
}

// Clone deep-copies s.
func (s QueensSnapshot) Clone() QueensSnapshot {
	s.Board = s.Board.Clone()
	return s
}

// QueensResult summarises a search.
type QueensResult struct {
	// Solutions holds each solution as the queen column per row.
	Solutions [][]int
	Solved    bool

	Tries, Conflicts, Places, Removes int
}

// QueensOptions configures NQueens.
type QueensOptions struct {
	// All continues after the first solution and records every one.
	All bool

	// Unchoose removes a queen when its subtree fails. Disabling it leaves
	// abandoned queens on the board.
	Unchoose bool
}

// QueensOption mutates QueensOptions.
type QueensOption func(*QueensOptions)

// WithAllSolutions enumerates every solution instead of stopping at the first.
func WithAllSolutions() QueensOption { return func(o *QueensOptions) { o.All = true } }

// WithoutUnchoose skips the removal step on backtrack.
func WithoutUnchoose() QueensOption { return func(o *QueensOptions) { o.Unchoose = false } }

// DefaultQueensOptions stops at the first solution and un-chooses.
func DefaultQueensOptions() QueensOptions { return QueensOptions{Unchoose: true} }

// NQueens records a row-by-row backtracking search for n non-attacking
// queens on an n×n board.
//
// Steps, per row r and column c in ascending order:
//  1. PhaseTry at (r, c).
//  2. PhaseConflict if a queen on the board attacks (r, c); next column.
//  3. Otherwise PhasePlace, recurse into row r+1, and PhaseRemove when the
//     recursion did not finish the search.
//
// A full board records PhaseSolution. The final step is PhaseDone.
//
// Complexity: O(n!) placements in the worst case, O(n²) per step to clone.
func NQueens(n int, opts ...QueensOption) (trace.Trace[QueensSnapshot], QueensResult, error) {
	if n < MinBoard || n > MaxBoard {
		return trace.Trace[QueensSnapshot]{}, QueensResult{}, errors.Wrapf(ErrBoardSize, "n=%d not in [%d, %d]", n, MinBoard, MaxBoard)
	}
	o := DefaultQueensOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.All && n > MaxBoardAll {
		return trace.Trace[QueensSnapshot]{}, QueensResult{}, errors.Wrapf(ErrBoardSize, "n=%d above %d with all solutions", n, MaxBoardAll)
	}

	work := QueensSnapshot{Board: NewBoard(n), Row: -1, Col: -1}
	rec := trace.NewRecorder(AlgorithmQueens, QueensSnapshot.Clone)
	rec.Recordf(trace.PhaseInit, work, "Place %d queens on a %dx%d board", n, n, n)
	var res QueensResult

	var solve func(row int) bool
	solve = func(row int) bool {
		if row == n {
			sol := make([]int, n)
			for _, q := range work.Board.Queens() {
				sol[q[0]] = q[1]
			}
			res.Solutions = append(res.Solutions, sol)
			work.Solutions++
			work.Row, work.Col = -1, -1
			ids := make([]string, 0, n)
			for r, c := range sol {
				ids = append(ids, CellKey(r, c))
			}
			rec.Record(trace.PhaseSolution, work, fmt.Sprintf("Solution %d: %v", work.Solutions, sol), ids...)
			return !o.All
		}
		for col := 0; col < n; col++ {
			work.Row, work.Col = row, col
			res.Tries++
			rec.Record(trace.PhaseTry, work, fmt.Sprintf("Try row %d, column %d", row, col), CellKey(row, col))
			if ar, ac, hit := work.Board.Attacker(row, col); hit {
				res.Conflicts++
				rec.Record(trace.PhaseConflict, work,
					fmt.Sprintf("Conflict: queen at (%d,%d) attacks (%d,%d)", ar, ac, row, col),
					CellKey(row, col), CellKey(ar, ac))
				continue
			}
			work.Board.Cells[row][col] = true
			res.Places++
			rec.Record(trace.PhasePlace, work, fmt.Sprintf("Place queen at (%d,%d)", row, col), CellKey(row, col))
			if solve(row + 1) {
				return true
			}
			if o.Unchoose {
				work.Board.Cells[row][col] = false
				work.Row, work.Col = row, col
				res.Removes++
				rec.Record(trace.PhaseRemove, work, fmt.Sprintf("Remove queen from (%d,%d)", row, col), CellKey(row, col))
			}
		}
		return false
	}
	solve(0)

	res.Solved = len(res.Solutions) > 0
	work.Row, work.Col = -1, -1
	switch {
	case !res.Solved:
		rec.Recordf(trace.PhaseDone, work, "No solution after %d placements", res.Places)
	case o.All:
		rec.Recordf(trace.PhaseDone, work, "Found %d solutions", len(res.Solutions))
	default:
		rec.Record(trace.PhaseDone, work, "Solved")
	}

	return rec.MustFinish(), res, nil
}
