package backtrack

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// AlgorithmMaze is the trace name of SolveMaze.
const AlgorithmMaze = "maze"

// MaxMazeSide bounds maze width and height.
const MaxMazeSide = 32

// Sentinel errors for maze parsing.
var (
	ErrEmptyMaze      = errors.New("backtrack: maze must have at least one row and one column")
	ErrNonRectangular = errors.New("backtrack: all maze rows must have the same length")
	ErrMazeCell       = errors.New("backtrack: unknown maze cell")
	ErrMazeEndpoints  = errors.New("backtrack: maze needs exactly one S and one G")
	ErrMazeTooLarge   = errors.New("backtrack: maze too large")
)

// Point is a cell position.
type Point struct{ Row, Col int }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// CellStatus tags a maze cell.
type CellStatus uint8

const (
	CellOpen     CellStatus = iota
	CellWall                // impassable
	CellPath                // on the current path
	CellExplored            // visited and backtracked from
	CellDeadEnd             // visited, had no way forward
)

func (s CellStatus) String() string {
	switch s {
	case CellOpen:
		return "open"
	case CellWall:
		return "wall"
	case CellPath:
		return "path"
	case CellExplored:
		return "explored"
	case CellDeadEnd:
		return "dead_end"
	}

	return fmt.Sprintf("cell(%d)", s)
}

// Maze is a rectangular grid with a start and a goal.
type Maze struct {
	Cells [][]CellStatus
	Start Point
	Goal  Point
}

// neighbour order: north, east, south, west.
var offsets = [4]Point{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// ParseMaze reads rows of '#' (wall), '.' (open), 'S' (start) and 'G'
// (goal). Surrounding blank lines and per-line whitespace are ignored.
func ParseMaze(text string) (Maze, error) {
	var rows []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Maze{}, ErrEmptyMaze
	}
	h, w := len(rows), len(rows[0])
	if h > MaxMazeSide || w > MaxMazeSide {
		return Maze{}, errors.Wrapf(ErrMazeTooLarge, "%dx%d exceeds %d", h, w, MaxMazeSide)
	}
	m := Maze{Cells: make([][]CellStatus, h)}
	starts, goals := 0, 0
	for r, row := range rows {
		if len(row) != w {
			return Maze{}, errors.Wrapf(ErrNonRectangular, "row %d has %d cells, want %d", r, len(row), w)
		}
		m.Cells[r] = make([]CellStatus, w)
		for c, ch := range []byte(row) {
			switch ch {
			case '#':
				m.Cells[r][c] = CellWall
			case '.':
			case 'S':
				m.Start = Point{r, c}
				starts++
			case 'G':
				m.Goal = Point{r, c}
				goals++
			default:
				return Maze{}, errors.Wrapf(ErrMazeCell, "%q at %s", ch, Point{r, c})
			}
		}
	}
	if starts != 1 || goals != 1 {
		return Maze{}, errors.Wrapf(ErrMazeEndpoints, "found %d S and %d G", starts, goals)
	}

	return m, nil
}

// Clone deep-copies m.
func (m Maze) Clone() Maze {
	out := Maze{Cells: make([][]CellStatus, len(m.Cells)), Start: m.Start, Goal: m.Goal}
	for i, row := range m.Cells {
		out.Cells[i] = append([]CellStatus(nil), row...)
	}

	return out
}

func (m Maze) open(p Point) bool {
	return p.Row >= 0 && p.Row < len(m.Cells) && p.Col >= 0 && p.Col < len(m.Cells[0]) &&
		m.Cells[p.Row][p.Col] == CellOpen
}

// MazeSnapshot is the state at one maze step.
type MazeSnapshot struct {
	Maze Maze
	Path []Point
}

// Clone deep-copies s.
func (s MazeSnapshot) Clone() MazeSnapshot {
	return MazeSnapshot{Maze: s.Maze.Clone(), Path: append([]Point(nil), s.Path...)}
}

// MazeResult summarises a maze search.
type MazeResult struct {
	Solved bool
	Path   []Point

	Visits, DeadEnds int
}

// SolveMaze records a depth-first search from m.Start to m.Goal.
//
// Steps:
//  1. PhaseInit.
//  2. PhaseVisit on entering a cell; PhaseSolution and stop on the goal.
//  3. Neighbours are tried north, east, south, west.
//  4. A cell whose neighbours are all exhausted records PhaseDeadEnd if it
//     had no open neighbour at all, then PhaseUnvisit as the path retracts.
//  5. PhaseDone if the goal is unreachable.
//
// Visited cells stay marked after backtracking, so each cell is entered at
// most once. Complexity: O(W×H) steps.
func SolveMaze(m Maze) (trace.Trace[MazeSnapshot], MazeResult, error) {
	if len(m.Cells) == 0 || len(m.Cells[0]) == 0 {
		return trace.Trace[MazeSnapshot]{}, MazeResult{}, ErrEmptyMaze
	}
	for r, row := range m.Cells {
		if len(row) != len(m.Cells[0]) {
			return trace.Trace[MazeSnapshot]{}, MazeResult{}, errors.Wrapf(ErrNonRectangular, "row %d", r)
		}
	}
	if !m.open(m.Start) || !m.open(m.Goal) {
		return trace.Trace[MazeSnapshot]{}, MazeResult{}, errors.Wrapf(ErrMazeEndpoints, "start %s or goal %s is not an open cell", m.Start, m.Goal)
	}

	work := MazeSnapshot{Maze: m.Clone()}
	rec := trace.NewRecorder(AlgorithmMaze, MazeSnapshot.Clone)
	rec.Record(trace.PhaseInit, work, fmt.Sprintf("Find a path from %s to %s", m.Start, m.Goal),
		CellKey(m.Start.Row, m.Start.Col), CellKey(m.Goal.Row, m.Goal.Col))
	var res MazeResult

	var walk func(p Point) bool
	walk = func(p Point) bool {
		cells := work.Maze.Cells
		cells[p.Row][p.Col] = CellPath
		work.Path = append(work.Path, p)
		res.Visits++
		key := CellKey(p.Row, p.Col)
		if p == m.Goal {
			rec.Record(trace.PhaseSolution, work,
				fmt.Sprintf("Reached goal %s; path length %d", p, len(work.Path)), key)
			return true
		}
		rec.Record(trace.PhaseVisit, work, "Visit "+p.String(), key)

		moved := false
		for _, d := range offsets {
			next := Point{p.Row + d.Row, p.Col + d.Col}
			if !work.Maze.open(next) {
				continue
			}
			moved = true
			if walk(next) {
				return true
			}
		}
		if !moved {
			cells[p.Row][p.Col] = CellDeadEnd
			res.DeadEnds++
			rec.Record(trace.PhaseDeadEnd, work, "Dead end at "+p.String(), key)
		} else {
			cells[p.Row][p.Col] = CellExplored
		}
		work.Path = work.Path[:len(work.Path)-1]
		rec.Record(trace.PhaseUnvisit, work, "Backtrack from "+p.String(), key)
		return false
	}

	res.Solved = walk(m.Start)
	if res.Solved {
		res.Path = append([]Point(nil), work.Path...)
	} else {
		rec.Recordf(trace.PhaseDone, work, "No path from %s to %s after %d visits", m.Start, m.Goal, res.Visits)
	}

	return rec.MustFinish(), res, nil
}
