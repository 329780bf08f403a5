package dtw

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

type move uint8

const (
	moveNone move = iota
	moveDiag
	moveUp
	moveLeft
)

// DTW records the table fill and traceback for sequences a and b.
//
// Error Conditions:
//   - ErrEmptySequence, ErrTooLong, ErrValueRange: bad sequences.
//   - ErrOptionViolation: bad window or penalty.
//
// Steps:
//  1. PhaseInit with D[0][0] = 0 and every other cell ∞.
//  2. Row by row, for each cell inside the window: PhaseFill with the
//     local cost and the three candidates, or PhaseNoop when none of them
//     is finite.
//  3. D[n][m] = ∞: PhaseDone, Aligned=false.
//  4. Otherwise one PhaseTraceback per path cell from (n, m) back to
//     (1, 1), then PhaseDone with the distance.
//
// Complexity: O(n·m) time plus O(n·m) per recorded step.
func DTW(a, b []int, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return trace.Trace[Snapshot]{}, Result{}, o.err
	}
	if err := check(a, b); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}

	// 1. Table.
	n, m := len(a), len(b)
	work := Snapshot{Table: Table{A: append([]int(nil), a...), B: append([]int(nil), b...)}, I: -1, J: -1}
	work.Table.Cost = make([][]int64, n+1)
	from := make([][]move, n+1)
	for i := range work.Table.Cost {
		work.Table.Cost[i] = make([]int64, m+1)
		from[i] = make([]move, m+1)
		for j := range work.Table.Cost[i] {
			work.Table.Cost[i][j] = Inf
		}
	}
	work.Table.Cost[0][0] = 0
	window := "none"
	if o.Window >= 0 {
		window = fmt.Sprintf("%d", o.Window)
	}
	rec := trace.NewRecorder(Algorithm, cloneSnapshot)
	rec.Record(trace.PhaseInit, work, fmt.Sprintf("DTW of %d × %d values, window %s", n, m, window), CellID(0, 0))

	// 2. Fill.
	d := work.Table.Cost
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if o.Window >= 0 && abs(i-j) > o.Window {
				continue
			}
			work.I, work.J = i, j
			cost := int64(abs(a[i-1] - b[j-1]))
			diag := d[i-1][j-1]
			up := plus(d[i-1][j], o.SlopePenalty)
			left := plus(d[i][j-1], o.SlopePenalty)

			best, mv := diag, moveDiag
			if up < best {
				best, mv = up, moveUp
			}
			if left < best {
				best, mv = left, moveLeft
			}
			if best == Inf {
				rec.Record(trace.PhaseNoop, work, fmt.Sprintf("D[%d][%d] unreachable within the window", i, j), CellID(i, j))
				continue
			}
			d[i][j] = cost + best
			from[i][j] = mv
			pi, pj := prev(i, j, mv)
			rec.Record(trace.PhaseFill, work,
				fmt.Sprintf("D[%d][%d] = |%d - %d| + min(diag %s, up %s, left %s) = %d",
					i, j, a[i-1], b[j-1], FormatCost(diag), FormatCost(up), FormatCost(left), d[i][j]),
				CellID(i, j), CellID(pi, pj))
		}
	}
	work.I, work.J = -1, -1

	// 3. No alignment.
	res := Result{Distance: d[n][m], Aligned: d[n][m] != Inf}
	if !res.Aligned {
		rec.Record(trace.PhaseDone, work, fmt.Sprintf("No alignment within window %s", window), CellID(n, m))
		return rec.MustFinish(), res, nil
	}

	// 4. Traceback.
	for i, j := n, m; i > 0 && j > 0; {
		work.I, work.J = i, j
		work.Path = append(work.Path, Coord{I: i - 1, J: j - 1})
		rec.Record(trace.PhaseTraceback, work,
			fmt.Sprintf("Align a[%d]=%d with b[%d]=%d at cost %d", i-1, a[i-1], j-1, b[j-1], d[i][j]),
			CellID(i, j))
		if from[i][j] == moveNone {
			panic(errors.AssertionFailedf("dtw: cell %d:%d has no predecessor", i, j))
		}
		i, j = prev(i, j, from[i][j])
	}
	work.I, work.J = -1, -1
	res.Path = make([]Coord, len(work.Path))
	for k, c := range work.Path {
		res.Path[len(work.Path)-1-k] = c
	}
	rec.Record(trace.PhaseDone, work, fmt.Sprintf("Distance %d over %d aligned pairs", res.Distance, len(res.Path)), CellID(n, m))

	return rec.MustFinish(), res, nil
}

func check(a, b []int) error {
	for _, seq := range []struct {
		name   string
		values []int
	}{{"a", a}, {"b", b}} {
		if len(seq.values) == 0 {
			return errors.Wrapf(ErrEmptySequence, "%s", seq.name)
		}
		if len(seq.values) > MaxLength {
			return errors.Wrapf(ErrTooLong, "%s has %d values > %d", seq.name, len(seq.values), MaxLength)
		}
		for i, v := range seq.values {
			if v < -MaxValue || v > MaxValue {
				return errors.Wrapf(ErrValueRange, "%s[%d]=%d", seq.name, i, v)
			}
		}
	}

	return nil
}

// prev returns the cell a move into (i, j) came from.
func prev(i, j int, mv move) (int, int) {
	switch mv {
	case moveUp:
		return i - 1, j
	case moveLeft:
		return i, j - 1
	default:
		return i - 1, j - 1
	}
}

// plus adds p to c unless c is Inf.
func plus(c, p int64) int64 {
	if c == Inf {
		return Inf
	}

	return c + p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
