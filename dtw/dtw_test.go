package dtw_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algotrace/dtw"
	"github.com/katalvlaran/algotrace/trace"
)

// TestDTW_DataDriven replays testdata/dtw. Input lines are "a: ..." and
// "b: ..." with space-separated values.
func TestDTW_DataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/dtw", func(t *testing.T, td *datadriven.TestData) string {
		if td.Cmd != "dtw" {
			t.Fatalf("unknown command %q", td.Cmd)
		}
		var opts []dtw.Option
		if td.HasArg("window") {
			var w int
			td.ScanArgs(t, "window", &w)
			opts = append(opts, dtw.WithWindow(w))
		}
		if td.HasArg("penalty") {
			var p int
			td.ScanArgs(t, "penalty", &p)
			opts = append(opts, dtw.WithSlopePenalty(int64(p)))
		}
		seqs := map[string][]int{}
		for _, line := range strings.Split(strings.TrimSpace(td.Input), "\n") {
			name, values, ok := strings.Cut(line, ":")
			require.True(t, ok, "bad input line %q", line)
			for _, f := range strings.Fields(values) {
				v, err := strconv.Atoi(f)
				require.NoError(t, err)
				seqs[strings.TrimSpace(name)] = append(seqs[strings.TrimSpace(name)], v)
			}
		}

		tr, res, err := dtw.DTW(seqs["a"], seqs["b"], opts...)
		if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}
		var b strings.Builder
		for _, s := range tr.Steps() {
			fmt.Fprintf(&b, "%s: %s [%s]\n", s.Phase, s.Description, strings.Join(s.Highlight, " "))
		}
		path := "(none)"
		if len(res.Path) > 0 {
			cells := make([]string, len(res.Path))
			for i, c := range res.Path {
				cells[i] = fmt.Sprintf("(%d,%d)", c.I, c.J)
			}
			path = strings.Join(cells, " ")
		}
		fmt.Fprintf(&b, "path: %s\n", path)
		fmt.Fprintf(&b, "distance: %s\n", dtw.FormatCost(res.Distance))
		return b.String()
	})
}

func TestDTW_Table(t *testing.T) {
	tr, res, err := dtw.DTW([]int{1, 2, 3}, []int{1, 2, 2, 3})
	require.NoError(t, err)
	require.True(t, res.Aligned)
	assert.Zero(t, res.Distance)
	assert.Equal(t, []dtw.Coord{{0, 0}, {1, 1}, {1, 2}, {2, 3}}, res.Path)

	assert.Equal(t, 18, tr.Len())
	assert.Equal(t, 12, tr.Count(trace.PhaseFill))
	assert.Equal(t, 4, tr.Count(trace.PhaseTraceback))
	assert.Equal(t, dtw.Algorithm, tr.Algorithm())

	first, _ := tr.At(0)
	assert.Equal(t, -1, first.Snapshot.I)
	assert.Equal(t, dtw.Inf, first.Snapshot.Table.Cost[1][1])
	assert.Zero(t, first.Snapshot.Table.Cost[0][0])

	last := tr.Last()
	assert.Equal(t, [][]int64{
		{0, dtw.Inf, dtw.Inf, dtw.Inf, dtw.Inf},
		{dtw.Inf, 0, 1, 2, 4},
		{dtw.Inf, 1, 0, 0, 1},
		{dtw.Inf, 3, 1, 1, 0},
	}, last.Snapshot.Table.Cost)
	assert.Equal(t, []dtw.Coord{{2, 3}, {1, 2}, {1, 1}, {0, 0}}, last.Snapshot.Path, "traceback order")
}

// TestDTW_Symmetric swaps the arguments; without a penalty both
// directions cost the same.
func TestDTW_Symmetric(t *testing.T) {
	pairs := [][2][]int{
		{{1, 2, 3}, {1, 2, 2, 3}},
		{{0, 4, 8, 4}, {1, 5, 7}},
		{{-3, 3}, {5}},
	}
	for _, p := range pairs {
		_, ab, err := dtw.DTW(p[0], p[1])
		require.NoError(t, err)
		_, ba, err := dtw.DTW(p[1], p[0])
		require.NoError(t, err)
		assert.Equal(t, ab.Distance, ba.Distance, "%v", p)
	}
}

func TestDTW_SingleValues(t *testing.T) {
	tr, res, err := dtw.DTW([]int{7}, []int{2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Distance)
	assert.Equal(t, []dtw.Coord{{0, 0}}, res.Path)
	assert.Equal(t, "Distance 5 over 1 aligned pairs", tr.Last().Description)
}

// TestDTW_Window compares a banded run with the unconstrained one.
func TestDTW_Window(t *testing.T) {
	a, b := []int{0, 9, 0, 0}, []int{0, 0, 9, 0}
	_, free, err := dtw.DTW(a, b)
	require.NoError(t, err)
	_, banded, err := dtw.DTW(a, b, dtw.WithWindow(0))
	require.NoError(t, err)
	require.True(t, banded.Aligned)
	assert.Equal(t, int64(18), banded.Distance, "lockstep")
	assert.Less(t, free.Distance, banded.Distance)

	tr, res, err := dtw.DTW([]int{1, 2, 3}, []int{1, 2, 3, 4}, dtw.WithWindow(0))
	require.NoError(t, err)
	assert.False(t, res.Aligned)
	assert.Equal(t, dtw.Inf, res.Distance)
	assert.Nil(t, res.Path)
	assert.Zero(t, tr.Count(trace.PhaseTraceback))
	assert.Equal(t, "No alignment within window 0", tr.Last().Description)
}

func TestDTW_Errors(t *testing.T) {
	long := make([]int, dtw.MaxLength+1)
	cases := []struct {
		name string
		a, b []int
		opts []dtw.Option
		want error
	}{
		{"empty a", nil, []int{1}, nil, dtw.ErrEmptySequence},
		{"empty b", []int{1}, []int{}, nil, dtw.ErrEmptySequence},
		{"too long", long, []int{1}, nil, dtw.ErrTooLong},
		{"value", []int{1}, []int{dtw.MaxValue + 1}, nil, dtw.ErrValueRange},
		{"window", []int{1}, []int{1}, []dtw.Option{dtw.WithWindow(-2)}, dtw.ErrOptionViolation},
		{"penalty", []int{1}, []int{1}, []dtw.Option{dtw.WithSlopePenalty(-1)}, dtw.ErrOptionViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, _, err := dtw.DTW(tc.a, tc.b, tc.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "%v", err)
			assert.True(t, tr.Empty())
		})
	}
}

// TestDTW_SnapshotsIsolated checks that later fills never leak into
// earlier snapshots or the caller's slices.
func TestDTW_SnapshotsIsolated(t *testing.T) {
	a, b := []int{4, 1}, []int{4, 2, 1}
	tr, _, err := dtw.DTW(a, b)
	require.NoError(t, err)

	s1, _ := tr.At(1)
	assert.Equal(t, 1, s1.Snapshot.I)
	assert.Equal(t, 1, s1.Snapshot.J)
	assert.Equal(t, dtw.Inf, s1.Snapshot.Table.Cost[2][3])
	assert.NotEqual(t, dtw.Inf, tr.Last().Snapshot.Table.Cost[2][3])

	tr.Last().Snapshot.Table.A[0] = 99
	assert.Equal(t, 4, a[0])
}
