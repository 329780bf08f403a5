package scan

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// Trace names of the pointer techniques.
const (
	AlgorithmTwoPointers   = "two-pointers"
	AlgorithmSlidingWindow = "sliding-window"
)

// PairResult is the outcome of TwoPointers.
type PairResult struct {
	Found       bool
	Left, Right int
}

// TwoPointers records the pair-sum search on sorted values: a left pointer
// from the start and a right pointer from the end move toward each other
// until values[left]+values[right] == target or they meet.
//
// Steps: PhaseInit, then per iteration PhaseCompare followed by PhaseFound
// or PhaseMove, and PhaseNotFound when the pointers meet.
//
// Complexity: O(n) iterations.
func TwoPointers(values []int, target int) (trace.Trace[Snapshot], PairResult, error) {
	if err := checkLen(values); err != nil {
		return trace.Trace[Snapshot]{}, PairResult{}, err
	}
	if err := checkSorted(values); err != nil {
		return trace.Trace[Snapshot]{}, PairResult{}, err
	}
	work := Snapshot{Array: NewArray(values)}
	a := work.Array
	rec := trace.NewRecorder(AlgorithmTwoPointers, Snapshot.Clone)
	l, r := 0, len(values)-1
	a.Pointers["left"], a.Pointers["right"] = l, r
	rec.Recordf(trace.PhaseInit, work, "Find a pair summing to %d in %s", target, formatInts(values))

	for l < r {
		a.Pointers["left"], a.Pointers["right"] = l, r
		a.Status[l], a.Status[r] = CellActive, CellActive
		work.Sum = values[l] + values[r]
		rec.Record(trace.PhaseCompare, work,
			fmt.Sprintf("%d + %d = %d vs target %d", values[l], values[r], work.Sum, target),
			IndexKey(l), IndexKey(r))
		switch {
		case work.Sum == target:
			a.Status[l], a.Status[r] = CellMatch, CellMatch
			rec.Record(trace.PhaseFound, work, fmt.Sprintf("Pair found at %d and %d", l, r), IndexKey(l), IndexKey(r))
			return rec.MustFinish(), PairResult{Found: true, Left: l, Right: r}, nil
		case work.Sum < target:
			a.Status[l] = CellExcluded
			l++
			a.Pointers["left"] = l
			rec.Record(trace.PhaseMove, work, "Sum too small: move left pointer right", IndexKey(l))
		default:
			a.Status[r] = CellExcluded
			r--
			a.Pointers["right"] = r
			rec.Record(trace.PhaseMove, work, "Sum too large: move right pointer left", IndexKey(r))
		}
	}
	rec.Recordf(trace.PhaseNotFound, work, "No pair sums to %d", target)

	return rec.MustFinish(), PairResult{Left: -1, Right: -1}, nil
}

// WindowResult is the outcome of SlidingWindow.
type WindowResult struct {
	// Start is the first index of the best window.
	Start int
	Sum   int
}

// SlidingWindow records the maximum-sum search over every window of k
// consecutive values. The earliest window wins ties.
//
// Steps: PhaseInit, PhaseWindow for the first window, PhaseMove per slide
// (one value leaves, one enters), then PhaseDone with the best window.
//
// Complexity: O(n).
func SlidingWindow(values []int, k int) (trace.Trace[Snapshot], WindowResult, error) {
	if err := checkLen(values); err != nil {
		return trace.Trace[Snapshot]{}, WindowResult{}, err
	}
	if k < 1 || k > len(values) {
		return trace.Trace[Snapshot]{}, WindowResult{}, errors.Wrapf(ErrWindowSize, "k=%d with %d values", k, len(values))
	}
	work := Snapshot{Array: NewArray(values)}
	a := work.Array
	rec := trace.NewRecorder(AlgorithmSlidingWindow, Snapshot.Clone)
	rec.Recordf(trace.PhaseInit, work, "Maximum sum of %d consecutive values in %s", k, formatInts(values))

	ids := make([]string, 0, k)
	for i := 0; i < k; i++ {
		work.Sum += values[i]
		ids = append(ids, IndexKey(i))
	}
	a.Paint(0, k, CellWindow)
	a.Pointers["start"], a.Pointers["end"] = 0, k-1
	best := WindowResult{Start: 0, Sum: work.Sum}
	rec.Record(trace.PhaseWindow, work, fmt.Sprintf("First window [0, %d) sums to %d", k, work.Sum), ids...)

	for end := k; end < len(values); end++ {
		start := end - k + 1
		a.Status[start-1] = CellDefault
		a.Status[end] = CellWindow
		work.Sum += values[end] - values[start-1]
		a.Pointers["start"], a.Pointers["end"] = start, end
		desc := fmt.Sprintf("Drop %d, add %d: window [%d, %d) sums to %d", values[start-1], values[end], start, end+1, work.Sum)
		if work.Sum > best.Sum {
			best = WindowResult{Start: start, Sum: work.Sum}
			desc += " (new best)"
		}
		rec.Record(trace.PhaseMove, work, desc, IndexKey(start-1), IndexKey(end))
	}

	a.Paint(0, len(values), CellDefault)
	a.Paint(best.Start, best.Start+k, CellMatch)
	a.Pointers["start"], a.Pointers["end"] = best.Start, best.Start+k-1
	work.Sum = best.Sum
	ids = ids[:0]
	for i := best.Start; i < best.Start+k; i++ {
		ids = append(ids, IndexKey(i))
	}
	rec.Record(trace.PhaseDone, work, fmt.Sprintf("Best window [%d, %d) sums to %d", best.Start, best.Start+k, best.Sum), ids...)

	return rec.MustFinish(), best, nil
}
