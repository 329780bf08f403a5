package scan

import (
	"fmt"

	"github.com/katalvlaran/algotrace/trace"
)

// AlgorithmBinarySearch is the trace name of BinarySearch.
const AlgorithmBinarySearch = "binary-search"

// SearchResult is the outcome of BinarySearch.
type SearchResult struct {
	Found bool

	// Index of the match, or the insertion point when not found.
	Index int

	Probes int
}

// BinarySearch records the classic halving search for target in sorted
// values.
//
// Steps: PhaseInit, then per iteration PhaseProbe at the midpoint followed
// by PhaseFound, PhaseGoLeft or PhaseGoRight; PhaseNotFound once the range
// is empty.
//
// Complexity: O(log n) probes.
func BinarySearch(values []int, target int) (trace.Trace[Snapshot], SearchResult, error) {
	if err := checkLen(values); err != nil {
		return trace.Trace[Snapshot]{}, SearchResult{}, err
	}
	if err := checkSorted(values); err != nil {
		return trace.Trace[Snapshot]{}, SearchResult{}, err
	}
	work := Snapshot{Array: NewArray(values)}
	a := work.Array
	rec := trace.NewRecorder(AlgorithmBinarySearch, Snapshot.Clone)
	lo, hi := 0, len(values)-1
	a.Paint(lo, hi+1, CellWindow)
	a.Pointers["lo"], a.Pointers["hi"] = lo, hi
	rec.Recordf(trace.PhaseInit, work, "Search for %d in %s", target, formatInts(values))

	var res SearchResult
	for lo <= hi {
		mid := lo + (hi-lo)/2
		res.Probes++
		a.Pointers["mid"] = mid
		a.Status[mid] = CellActive
		rec.Record(trace.PhaseProbe, work,
			fmt.Sprintf("Probe index %d in [%d, %d]: %d", mid, lo, hi, values[mid]), IndexKey(mid))
		switch {
		case values[mid] == target:
			a.Status[mid] = CellMatch
			res.Found, res.Index = true, mid
			rec.Record(trace.PhaseFound, work, fmt.Sprintf("Found %d at index %d", target, mid), IndexKey(mid))
			return rec.MustFinish(), res, nil
		case values[mid] < target:
			a.Paint(lo, mid+1, CellExcluded)
			lo = mid + 1
			a.Pointers["lo"] = lo
			rec.Record(trace.PhaseGoRight, work, fmt.Sprintf("%d < %d: search right half", values[mid], target), IndexKey(mid))
		default:
			a.Paint(mid, hi+1, CellExcluded)
			hi = mid - 1
			a.Pointers["hi"] = hi
			rec.Record(trace.PhaseGoLeft, work, fmt.Sprintf("%d > %d: search left half", values[mid], target), IndexKey(mid))
		}
	}
	delete(a.Pointers, "mid")
	res.Index = lo
	rec.Recordf(trace.PhaseNotFound, work, "%d is absent; it would be inserted at index %d", target, lo)

	return rec.MustFinish(), res, nil
}
