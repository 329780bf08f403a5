package trace

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Phase tags what a Step represents. The set of phases is closed.
type Phase uint8

const (
	PhaseInit Phase = iota // initial state, before the first operation
	PhaseDone              // terminal state of a run that finished normally

	// binary search tree
	PhaseCompare
	PhaseGoLeft
	PhaseGoRight
	PhaseFound
	PhaseInsert
	PhaseNotFound

	// divide and conquer
	PhaseDivide
	PhaseBase
	PhaseMerge
	PhasePartition
	PhaseCombine

	// minimum spanning tree
	PhaseConsider
	PhaseCandidate
	PhaseSelect
	PhaseReject

	// all-pairs shortest paths
	PhaseIntermediate
	PhaseRelax
	PhaseNoop

	// topological sort
	PhaseEnqueue
	PhaseDequeue
	PhaseDecrement
	PhaseCycle

	// backtracking
	PhaseTry
	PhaseConflict
	PhasePlace
	PhaseRemove
	PhaseSolution
	PhaseVisit
	PhaseUnvisit
	PhaseDeadEnd

	// array scans
	PhaseMove
	PhaseWindow
	PhaseProbe
	PhaseSwap
	PhaseHash

	// maximum flow
	PhaseAugment
	PhaseCut
	PhaseLevel

	// dynamic programming
	PhaseFill
	PhaseTraceback

	phaseCount // sentinel, keep last
)

var phaseNames = [phaseCount]string{
	PhaseInit:         "init",
	PhaseDone:         "done",
	PhaseCompare:      "compare",
	PhaseGoLeft:       "go_left",
	PhaseGoRight:      "go_right",
	PhaseFound:        "found",
	PhaseInsert:       "insert",
	PhaseNotFound:     "not_found",
	PhaseDivide:       "divide",
	PhaseBase:         "base",
	PhaseMerge:        "merge",
	PhasePartition:    "partition",
	PhaseCombine:      "combine",
	PhaseConsider:     "consider",
	PhaseCandidate:    "candidate",
	PhaseSelect:       "select",
	PhaseReject:       "reject",
	PhaseIntermediate: "intermediate",
	PhaseRelax:        "relax",
	PhaseNoop:         "noop",
	PhaseEnqueue:      "enqueue",
	PhaseDequeue:      "dequeue",
	PhaseDecrement:    "decrement",
	PhaseCycle:        "cycle",
	PhaseTry:          "try",
	PhaseConflict:     "conflict",
	PhasePlace:        "place",
	PhaseRemove:       "remove",
	PhaseSolution:     "solution",
	PhaseVisit:        "visit",
	PhaseUnvisit:      "unvisit",
	PhaseDeadEnd:      "dead_end",
	PhaseMove:         "move",
	PhaseWindow:       "window",
	PhaseProbe:        "probe",
	PhaseSwap:         "swap",
	PhaseHash:         "hash",
	PhaseAugment:      "augment",
	PhaseCut:          "cut",
	PhaseLevel:        "level",
	PhaseFill:         "fill",
	PhaseTraceback:    "traceback",
}

// ErrUnknownPhase is returned by ParsePhase for names outside the closed set.
var ErrUnknownPhase = errors.New("trace: unknown phase")

// String returns the snake_case name of p, or "phase(N)" for values outside the set.
func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}

	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Valid reports whether p is one of the declared phases.
func (p Phase) Valid() bool { return p < phaseCount }

// MarshalText implements encoding.TextMarshaler so phases print by name in
// YAML and JSON output.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.Wrapf(ErrUnknownPhase, "value %d", uint8(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(b []byte) error {
	parsed, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}

// ParsePhase maps a snake_case name back to its Phase.
// Complexity: O(number of phases).
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownPhase, "%q", name)
}

// Phases returns every declared phase in declaration order.
func Phases() []Phase {
	out := make([]Phase, 0, phaseCount)
	for p := Phase(0); p < phaseCount; p++ {
		out = append(out, p)
	}

	return out
}
