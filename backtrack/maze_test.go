package backtrack_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algotrace/backtrack"
	"github.com/katalvlaran/algotrace/trace"
)

const smallMaze = `
S.#
.##
..G
`

// TestSolveMaze_Small walks into the dead end first, backs out, then
// reaches the goal.
func TestSolveMaze_Small(t *testing.T) {
	m, err := backtrack.ParseMaze(smallMaze)
	require.NoError(t, err)
	tr, res, err := backtrack.SolveMaze(m)
	require.NoError(t, err)

	phases := make([]trace.Phase, 0, tr.Len())
	for _, s := range tr.Steps() {
		phases = append(phases, s.Phase)
	}
	assert.Equal(t, []trace.Phase{
		trace.PhaseInit,
		trace.PhaseVisit, trace.PhaseVisit, trace.PhaseDeadEnd, trace.PhaseUnvisit,
		trace.PhaseVisit, trace.PhaseVisit, trace.PhaseVisit, trace.PhaseSolution,
	}, phases)

	assert.True(t, res.Solved)
	assert.Equal(t, []backtrack.Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}, res.Path)
	assert.Equal(t, 6, res.Visits)
	assert.Equal(t, 1, res.DeadEnds)

	dead, _ := tr.At(3)
	assert.Equal(t, "Dead end at (0,1)", dead.Description)
	assert.Equal(t, backtrack.CellDeadEnd, dead.Snapshot.Maze.Cells[0][1])
	assert.Equal(t, []string{"0,1"}, dead.Highlight)

	last := tr.Last()
	for _, p := range res.Path {
		assert.Equal(t, backtrack.CellPath, last.Snapshot.Maze.Cells[p.Row][p.Col])
	}
	assert.Equal(t, backtrack.CellOpen, m.Cells[0][0], "input maze untouched")
}

// TestSolveMaze_Unreachable ends with a done step.
func TestSolveMaze_Unreachable(t *testing.T) {
	m, err := backtrack.ParseMaze("S#G")
	require.NoError(t, err)
	tr, res, err := backtrack.SolveMaze(m)
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Nil(t, res.Path)
	assert.Equal(t, 5, tr.Len())
	assert.Equal(t, trace.PhaseDone, tr.Last().Phase)
	assert.Equal(t, "No path from (0,0) to (0,2) after 1 visits", tr.Last().Description)
	assert.Empty(t, tr.Last().Snapshot.Path)
}

// TestSolveMaze_VisitUnvisitBalance checks the path retracts exactly as far
// as it grew on a maze with several branches.
func TestSolveMaze_VisitUnvisitBalance(t *testing.T) {
	m, err := backtrack.ParseMaze(`
S..#.
.#.#.
.#...
.###.
....G
`)
	require.NoError(t, err)
	tr, res, err := backtrack.SolveMaze(m)
	require.NoError(t, err)
	require.True(t, res.Solved)

	visits := tr.Count(trace.PhaseVisit) + 1
	assert.Equal(t, res.Visits, visits)
	assert.Equal(t, len(res.Path), visits-tr.Count(trace.PhaseUnvisit))
	assert.Equal(t, 1, res.DeadEnds)
	for _, s := range tr.Steps() {
		if s.Phase == trace.PhaseDeadEnd {
			continue
		}
		for _, p := range s.Snapshot.Path {
			assert.Equal(t, backtrack.CellPath, s.Snapshot.Maze.Cells[p.Row][p.Col], "step %d", s.Index)
		}
	}
	for i := 1; i < len(res.Path); i++ {
		a, b := res.Path[i-1], res.Path[i]
		assert.Equal(t, 1, abs(a.Row-b.Row)+abs(a.Col-b.Col), "path is contiguous")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TestParseMaze_Errors covers malformed input.
func TestParseMaze_Errors(t *testing.T) {
	cases := map[string]error{
		"":          backtrack.ErrEmptyMaze,
		"S.X\n..G":  backtrack.ErrMazeCell,
		"S..\n.G":   backtrack.ErrNonRectangular,
		"...\n..G":  backtrack.ErrMazeEndpoints,
		"SS.\n..G":  backtrack.ErrMazeEndpoints,
		"S" + strings.Repeat(".", 40) + "G": backtrack.ErrMazeTooLarge,
	}
	for in, want := range cases {
		_, err := backtrack.ParseMaze(in)
		assert.ErrorIs(t, err, want, "input %q", in)
	}

	_, _, err := backtrack.SolveMaze(backtrack.Maze{})
	assert.ErrorIs(t, err, backtrack.ErrEmptyMaze)

	m, err := backtrack.ParseMaze("S.G")
	require.NoError(t, err)
	m.Cells[0][2] = backtrack.CellWall
	_, _, err = backtrack.SolveMaze(m)
	assert.ErrorIs(t, err, backtrack.ErrMazeEndpoints)
}
