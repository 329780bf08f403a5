package backtrack_test

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algotrace/backtrack"
	"github.com/katalvlaran/algotrace/trace"
)

func validPlacement(cols []int) bool {
	for r1 := range cols {
		for r2 := r1 + 1; r2 < len(cols); r2++ {
			dc := cols[r2] - cols[r1]
			if dc == 0 || dc == r2-r1 || dc == r1-r2 {
				return false
			}
		}
	}
	return true
}

// TestNQueens_FourAll finds exactly the two 4-queens solutions.
func TestNQueens_FourAll(t *testing.T) {
	tr, res, err := backtrack.NQueens(4, backtrack.WithAllSolutions())
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, [][]int{{1, 3, 0, 2}, {2, 0, 3, 1}}, res.Solutions)
	assert.Equal(t, 2, tr.Count(trace.PhaseSolution))
	assert.Equal(t, res.Places, res.Removes, "every placement is undone when enumerating")
	assert.Equal(t, res.Tries, res.Places+res.Conflicts)
	assert.Equal(t, "Found 2 solutions", tr.Last().Description)
	assert.Empty(t, tr.Last().Snapshot.Board.Queens())
}

// TestNQueens_FourFirst stops at the first solution with its queens in place.
func TestNQueens_FourFirst(t *testing.T) {
	tr, res, err := backtrack.NQueens(4)
	require.NoError(t, err)
	require.Len(t, res.Solutions, 1)
	assert.Equal(t, []int{1, 3, 0, 2}, res.Solutions[0])
	assert.Equal(t, 4, res.Places-res.Removes)

	last := tr.Last()
	assert.Equal(t, trace.PhaseDone, last.Phase)
	assert.Equal(t, ".Q..\n...Q\nQ...\n..Q.", last.Snapshot.Board.String())
	assert.Equal(t, 1, last.Snapshot.Solutions)
}

// TestNQueens_RemoveFollowsPlace checks every remove undoes the latest
// outstanding placement on the same cell.
func TestNQueens_RemoveFollowsPlace(t *testing.T) {
	tr, _, err := backtrack.NQueens(5, backtrack.WithAllSolutions())
	require.NoError(t, err)

	var stack []trace.Step[backtrack.QueensSnapshot]
	for _, s := range tr.Steps() {
		switch s.Phase {
		case trace.PhasePlace:
			stack = append(stack, s)
		case trace.PhaseRemove:
			require.NotEmpty(t, stack, "remove at step %d without a placement", s.Index)
			top := stack[len(stack)-1]
			assert.Equal(t, top.Snapshot.Row, s.Snapshot.Row, "step %d", s.Index)
			assert.Equal(t, top.Snapshot.Col, s.Snapshot.Col, "step %d", s.Index)
			stack = stack[:len(stack)-1]
		}
	}
	assert.Empty(t, stack)
}

// TestNQueens_WithoutUnchoose never solves 4-queens and leaves abandoned
// queens on the board.
func TestNQueens_WithoutUnchoose(t *testing.T) {
	tr, res, err := backtrack.NQueens(4, backtrack.WithoutUnchoose(), backtrack.WithAllSolutions())
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Empty(t, res.Solutions)
	assert.Zero(t, res.Removes)
	assert.Zero(t, tr.Count(trace.PhaseRemove))
	assert.Zero(t, tr.Count(trace.PhaseSolution))

	left := tr.Last().Snapshot.Board.Queens()
	assert.Len(t, left, res.Places)
	assert.NotEmpty(t, left)

	_, genuine, err := backtrack.NQueens(4, backtrack.WithAllSolutions())
	require.NoError(t, err)
	assert.Greater(t, genuine.Places, res.Places, "stale queens starve the search")
}

// TestNQueens_Sizes checks known solution counts and the size bounds.
func TestNQueens_Sizes(t *testing.T) {
	want := map[int]int{1: 1, 2: 0, 3: 0, 5: 10, 6: 4, 8: 92}
	for n, count := range want {
		tr, res, err := backtrack.NQueens(n, backtrack.WithAllSolutions())
		require.NoError(t, err)
		assert.Len(t, res.Solutions, count, "n=%d", n)
		assert.Equal(t, count > 0, res.Solved)
		for _, sol := range res.Solutions {
			assert.True(t, validPlacement(sol), "n=%d %v", n, sol)
		}
		assert.Equal(t, trace.PhaseDone, tr.Last().Phase)
	}

	for _, n := range []int{0, -1, backtrack.MaxBoard + 1} {
		_, _, err := backtrack.NQueens(n)
		assert.ErrorIs(t, err, backtrack.ErrBoardSize, "n=%d", n)
	}

	_, _, err := backtrack.NQueens(backtrack.MaxBoardAll+1, backtrack.WithAllSolutions())
	assert.ErrorIs(t, err, backtrack.ErrBoardSize)

	tr, res, err := backtrack.NQueens(backtrack.MaxBoard)
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Len(t, res.Solutions, 1)
	assert.Less(t, tr.Len(), 10_000)
}

// TestNQueens_Determinism compares two runs.
func TestNQueens_Determinism(t *testing.T) {
	a, _, err := backtrack.NQueens(5)
	require.NoError(t, err)
	b, _, err := backtrack.NQueens(5)
	require.NoError(t, err)
	assert.Empty(t, pretty.Diff(a.Steps(), b.Steps()))

	first, _ := a.At(0)
	assert.Empty(t, first.Snapshot.Board.Queens())
	assert.Equal(t, -1, first.Snapshot.Row)
}
