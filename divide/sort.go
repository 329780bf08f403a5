package divide

import (
	"fmt"
	"math/rand"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// Trace names used by this package.
const (
	AlgorithmMergeSort = "merge-sort"
	AlgorithmQuickSort = "quick-sort"
)

// Snapshot is the state at one step.
type Snapshot struct {
	Tree Tree
}

// Clone deep-copies s.
func (s Snapshot) Clone() Snapshot { return Snapshot{Tree: s.Tree.Clone()} }

// Result summarises a sort.
type Result struct {
	Sorted []int

	// Calls is the number of recursion nodes.
	Calls int

	// Depth is the recursion depth.
	Depth int

	// Seed is the pivot seed when Randomized.
	Seed       int64
	Randomized bool
}

// Options configures QuickSort.
type Options struct {
	Seed       int64
	Randomized bool
}

// Option mutates Options.
type Option func(*Options)

// WithSeed picks each pivot uniformly at random from a generator seeded
// with seed. The seed is echoed in Result so the trace can be regenerated.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
		o.Randomized = true
	}
}

// DefaultOptions selects the last element as pivot.
func DefaultOptions() Options { return Options{} }

func checkSize(values []int) error {
	if len(values) > MaxValues {
		return errors.Wrapf(ErrTooLarge, "%d > %d", len(values), MaxValues)
	}

	return nil
}

// MergeSort records top-down merge sort of values. values is not modified.
//
// Steps:
//  1. PhaseInit with the root call.
//  2. For a call on 0 or 1 values: PhaseBase.
//  3. Otherwise PhaseDivide (children created with the two halves), both
//     subtrees, then PhaseMerge replacing the call's values with the merge.
//  4. PhaseDone.
//
// Complexity: O(n log n) comparisons, O(n log n) nodes' worth of values.
func MergeSort(values []int) (trace.Trace[Snapshot], Result, error) {
	if err := checkSize(values); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	var work Snapshot
	root := work.Tree.add(0, values)
	rec := trace.NewRecorder(AlgorithmMergeSort, Snapshot.Clone)
	rec.Record(trace.PhaseInit, work, "Merge sort "+formatValues(values), Key(root))

	var sortCall func(id int)
	sortCall = func(id int) {
		nodes := &work.Tree.Nodes
		vals := (*nodes)[id].Values
		if len(vals) <= 1 {
			(*nodes)[id].Status = StatusSorted
			rec.Record(trace.PhaseBase, work, "Base case "+formatValues(vals), Key(id))
			return
		}
		(*nodes)[id].Status = StatusActive
		mid := len(vals) / 2
		depth := (*nodes)[id].Depth + 1
		l := work.Tree.add(depth, vals[:mid])
		r := work.Tree.add(depth, vals[mid:])
		(*nodes)[id].Left, (*nodes)[id].Right = l, r
		rec.Record(trace.PhaseDivide, work,
			fmt.Sprintf("Split %s into %s and %s", formatValues(vals), formatValues(vals[:mid]), formatValues(vals[mid:])),
			Key(id), Key(l), Key(r))

		sortCall(l)
		sortCall(r)

		left, right := (*nodes)[l].Values, (*nodes)[r].Values
		merged := merge(left, right)
		(*nodes)[id].Values = merged
		(*nodes)[id].Status = StatusSorted
		rec.Record(trace.PhaseMerge, work,
			fmt.Sprintf("Merge %s and %s into %s", formatValues(left), formatValues(right), formatValues(merged)),
			Key(id), Key(l), Key(r))
	}
	sortCall(root)

	sorted := append([]int(nil), work.Tree.Nodes[root].Values...)
	rec.Record(trace.PhaseDone, work, "Sorted "+formatValues(sorted), Key(root))

	return rec.MustFinish(), Result{Sorted: sorted, Calls: len(work.Tree.Nodes), Depth: work.Tree.Depth()}, nil
}

// merge is stable: on ties the left element comes first.
func merge(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)

	return append(out, b[j:]...)
}

// QuickSort records quick sort of values. values is not modified.
//
// Steps:
//  1. PhaseInit with the root call.
//  2. For a call on 0 or 1 values: PhaseBase.
//  3. Otherwise PhasePartition (pivot chosen, values split into those less
//     than the pivot and the rest), PhaseDivide creating the two children,
//     both subtrees, then PhaseCombine: left ++ pivot ++ right.
//  4. PhaseDone.
//
// Complexity: O(n log n) expected with a random pivot, O(n²) worst case.
func QuickSort(values []int, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	if err := checkSize(values); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	var rng *rand.Rand
	if o.Randomized {
		rng = rand.New(rand.NewSource(o.Seed))
	}

	var work Snapshot
	root := work.Tree.add(0, values)
	rec := trace.NewRecorder(AlgorithmQuickSort, Snapshot.Clone)
	desc := "Quick sort " + formatValues(values) + ", pivot: last element"
	if o.Randomized {
		desc = fmt.Sprintf("Quick sort %s, pivot: random (seed %d)", formatValues(values), o.Seed)
	}
	rec.Record(trace.PhaseInit, work, desc, Key(root))

	var sortCall func(id int)
	sortCall = func(id int) {
		nodes := &work.Tree.Nodes
		vals := (*nodes)[id].Values
		if len(vals) <= 1 {
			(*nodes)[id].Status = StatusSorted
			rec.Record(trace.PhaseBase, work, "Base case "+formatValues(vals), Key(id))
			return
		}
		(*nodes)[id].Status = StatusActive
		pi := len(vals) - 1
		if rng != nil {
			pi = rng.Intn(len(vals))
		}
		pivot := vals[pi]
		var less, rest []int
		for i, v := range vals {
			switch {
			case i == pi:
			case v < pivot:
				less = append(less, v)
			default:
				rest = append(rest, v)
			}
		}
		(*nodes)[id].Pivot, (*nodes)[id].HasPivot = pivot, true
		rec.Record(trace.PhasePartition, work,
			fmt.Sprintf("Partition %s around %d: %s | %d | %s",
				formatValues(vals), pivot, formatValues(less), pivot, formatValues(rest)),
			Key(id))

		depth := (*nodes)[id].Depth + 1
		l := work.Tree.add(depth, less)
		r := work.Tree.add(depth, rest)
		(*nodes)[id].Left, (*nodes)[id].Right = l, r
		rec.Record(trace.PhaseDivide, work,
			fmt.Sprintf("Recurse on %s and %s", formatValues(less), formatValues(rest)),
			Key(id), Key(l), Key(r))

		sortCall(l)
		sortCall(r)

		left, right := (*nodes)[l].Values, (*nodes)[r].Values
		combined := make([]int, 0, len(vals))
		combined = append(combined, left...)
		combined = append(combined, pivot)
		combined = append(combined, right...)
		(*nodes)[id].Values = combined
		(*nodes)[id].Status = StatusSorted
		rec.Record(trace.PhaseCombine, work,
			fmt.Sprintf("Combine %s + %d + %s = %s", formatValues(left), pivot, formatValues(right), formatValues(combined)),
			Key(id), Key(l), Key(r))
	}
	sortCall(root)

	sorted := append([]int(nil), work.Tree.Nodes[root].Values...)
	rec.Record(trace.PhaseDone, work, "Sorted "+formatValues(sorted), Key(root))

	return rec.MustFinish(), Result{
		Sorted:     sorted,
		Calls:      len(work.Tree.Nodes),
		Depth:      work.Tree.Depth(),
		Seed:       o.Seed,
		Randomized: o.Randomized,
	}, nil
}
