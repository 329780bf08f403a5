package scan_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algotrace/scan"
	"github.com/katalvlaran/algotrace/trace"
)

func phasesOf(steps []trace.Step[scan.Snapshot]) []trace.Phase {
	out := make([]trace.Phase, len(steps))
	for i, s := range steps {
		out[i] = s.Phase
	}
	return out
}

// TestTwoPointers covers a hit and a miss.
func TestTwoPointers(t *testing.T) {
	tr, res, err := scan.TwoPointers([]int{1, 2, 4, 7, 11, 15}, 15)
	require.NoError(t, err)
	assert.Equal(t, scan.PairResult{Found: true, Left: 2, Right: 4}, res)
	assert.Equal(t, 9, tr.Len())
	last := tr.Last()
	assert.Equal(t, trace.PhaseFound, last.Phase)
	assert.Equal(t, scan.CellMatch, last.Snapshot.Array.Status[2])
	assert.Equal(t, scan.CellMatch, last.Snapshot.Array.Status[4])
	assert.Equal(t, 15, last.Snapshot.Sum)
	assert.Equal(t, map[string]int{"left": 2, "right": 4}, last.Snapshot.Array.Pointers)

	tr, res, err = scan.TwoPointers([]int{1, 2, 3}, 10)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, []trace.Phase{
		trace.PhaseInit,
		trace.PhaseCompare, trace.PhaseMove,
		trace.PhaseCompare, trace.PhaseMove,
		trace.PhaseNotFound,
	}, phasesOf(tr.Steps()))

	_, _, err = scan.TwoPointers([]int{3, 1}, 4)
	assert.ErrorIs(t, err, scan.ErrUnsorted)
}

// TestSlidingWindow picks the best window and reports it at the end.
func TestSlidingWindow(t *testing.T) {
	tr, res, err := scan.SlidingWindow([]int{2, 1, 5, 1, 3, 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, scan.WindowResult{Start: 2, Sum: 9}, res)
	assert.Equal(t, 6, tr.Len())
	assert.Equal(t, 3, tr.Count(trace.PhaseMove))

	last := tr.Last()
	assert.Equal(t, "Best window [2, 5) sums to 9", last.Description)
	assert.Equal(t, []string{"i2", "i3", "i4"}, last.Highlight)
	for i, s := range last.Snapshot.Array.Status {
		want := scan.CellDefault
		if i >= 2 && i < 5 {
			want = scan.CellMatch
		}
		assert.Equal(t, want, s, "cell %d", i)
	}

	_, res, err = scan.SlidingWindow([]int{1, 1, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Start, "earliest window wins ties")

	for _, k := range []int{0, 4} {
		_, _, err = scan.SlidingWindow([]int{1, 2, 3}, k)
		assert.ErrorIs(t, err, scan.ErrWindowSize, "k=%d", k)
	}
}

// TestSlidingWindow_Random compares with a brute-force maximum.
func TestSlidingWindow_Random(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for round := 0; round < 30; round++ {
		n := 1 + r.Intn(20)
		vals := make([]int, n)
		for i := range vals {
			vals[i] = r.Intn(41) - 20
		}
		k := 1 + r.Intn(n)
		_, res, err := scan.SlidingWindow(vals, k)
		require.NoError(t, err)

		best, bestStart := 0, -1
		for s := 0; s+k <= n; s++ {
			sum := 0
			for _, v := range vals[s : s+k] {
				sum += v
			}
			if bestStart < 0 || sum > best {
				best, bestStart = sum, s
			}
		}
		assert.Equal(t, scan.WindowResult{Start: bestStart, Sum: best}, res, "round %d", round)
	}
}

// TestBinarySearch traces a hit and a miss and agrees with sort.SearchInts.
func TestBinarySearch(t *testing.T) {
	vals := []int{1, 3, 5, 7, 9, 11}
	tr, res, err := scan.BinarySearch(vals, 7)
	require.NoError(t, err)
	assert.Equal(t, scan.SearchResult{Found: true, Index: 3, Probes: 3}, res)
	assert.Equal(t, []trace.Phase{
		trace.PhaseInit,
		trace.PhaseProbe, trace.PhaseGoRight,
		trace.PhaseProbe, trace.PhaseGoLeft,
		trace.PhaseProbe, trace.PhaseFound,
	}, phasesOf(tr.Steps()))

	tr, res, err = scan.BinarySearch(vals, 4)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 2, res.Index)
	assert.Equal(t, trace.PhaseNotFound, tr.Last().Phase)
	_, hasMid := tr.Last().Snapshot.Array.Pointers["mid"]
	assert.False(t, hasMid)

	tr, res, err = scan.BinarySearch(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
	assert.Zero(t, res.Probes)

	r := rand.New(rand.NewSource(5))
	for round := 0; round < 50; round++ {
		perm := r.Perm(60)[:1+r.Intn(30)]
		sort.Ints(perm)
		target := r.Intn(60)
		_, res, err := scan.BinarySearch(perm, target)
		require.NoError(t, err)
		want := sort.SearchInts(perm, target)
		assert.Equal(t, want, res.Index)
		assert.Equal(t, want < len(perm) && perm[want] == target, res.Found)
	}
}

// TestHashing checks chaining, collisions and lookups.
func TestHashing(t *testing.T) {
	tr, res, err := scan.Hashing([]int{15, 11, 27, 8, 12}, 7, []int{27, 5})
	require.NoError(t, err)
	assert.Equal(t, [][]int{nil, {15, 8}, nil, nil, {11}, {12}, {27}}, res.Buckets)
	assert.Equal(t, 1, res.Collisions)
	assert.Equal(t, []bool{true, false}, res.Found)
	assert.Equal(t, 18, tr.Len())
	assert.Equal(t, "5 keys in 7 buckets, 1 collisions", tr.Last().Description)

	first, _ := tr.At(0)
	for _, b := range first.Snapshot.Buckets {
		assert.Empty(t, b)
	}

	assert.Equal(t, 4, scan.Bucket(-3, 7))
	for _, m := range []int{0, scan.MaxBuckets + 1} {
		_, _, err = scan.Hashing([]int{1}, m, nil)
		assert.ErrorIs(t, err, scan.ErrBucketCount)
	}
}

// TestMinHeap traces a small heap exactly.
func TestMinHeap(t *testing.T) {
	tr, res, err := scan.MinHeap([]int{5, 3, 8, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 8}, res.Heap)
	assert.Equal(t, []int{1, 3}, res.Extracted)
	assert.Equal(t, 7, res.Swaps)
	assert.Equal(t, []trace.Phase{
		trace.PhaseInit,
		trace.PhaseInsert,
		trace.PhaseInsert, trace.PhaseSwap,
		trace.PhaseInsert,
		trace.PhaseInsert, trace.PhaseSwap, trace.PhaseSwap,
		trace.PhaseSwap, trace.PhaseSwap, trace.PhaseRemove,
		trace.PhaseSwap, trace.PhaseSwap, trace.PhaseRemove,
		trace.PhaseDone,
	}, phasesOf(tr.Steps()))

	afterInserts, _ := tr.At(7)
	assert.Equal(t, []int{1, 3, 8, 5}, afterInserts.Snapshot.Array.Values)

	_, _, err = scan.MinHeap([]int{1}, 2)
	assert.ErrorIs(t, err, scan.ErrExtractCount)
}

// TestMinHeap_Random extracts everything and expects sorted output, with
// the heap property holding after every removal.
func TestMinHeap_Random(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for round := 0; round < 20; round++ {
		vals := make([]int, r.Intn(40))
		for i := range vals {
			vals[i] = r.Intn(100)
		}
		tr, res, err := scan.MinHeap(vals, len(vals))
		require.NoError(t, err)
		want := append([]int(nil), vals...)
		sort.Ints(want)
		require.Len(t, res.Extracted, len(want))
		for i := range want {
			assert.Equal(t, want[i], res.Extracted[i], "round %d index %d", round, i)
		}
		assert.Empty(t, res.Heap)

		for _, s := range tr.Steps() {
			if s.Phase != trace.PhaseRemove {
				continue
			}
			h := s.Snapshot.Array.Values
			for i := 1; i < len(h); i++ {
				assert.LessOrEqual(t, h[(i-1)/2], h[i], "round %d step %d", round, s.Index)
			}
		}
	}
}

// TestDeterminismAndLimits compares repeated runs and checks size limits.
func TestDeterminismAndLimits(t *testing.T) {
	vals := []int{4, 9, 2, 7, 5, 1}
	a, _, err := scan.MinHeap(vals, 3)
	require.NoError(t, err)
	b, _, err := scan.MinHeap(vals, 3)
	require.NoError(t, err)
	assert.Empty(t, pretty.Diff(a.Steps(), b.Steps()))

	big := make([]int, scan.MaxValues+1)
	_, _, err = scan.BinarySearch(big, 0)
	assert.ErrorIs(t, err, scan.ErrTooLarge)
	_, _, err = scan.MinHeap(big, 0)
	assert.ErrorIs(t, err, scan.ErrTooLarge)
}
