package trace

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for trace construction.
var (
	// ErrEmptyTrace indicates that a generator finished without recording a single step.
	ErrEmptyTrace = errors.New("trace: trace has no steps")

	// ErrIndexMismatch indicates that a step's Index does not equal its position.
	ErrIndexMismatch = errors.New("trace: step index does not match position")

	// ErrInvalidPhase indicates that a step carries a phase outside the closed set.
	ErrInvalidPhase = errors.New("trace: step has invalid phase")
)

// Step is one recorded state of an algorithm run.
//
// Snapshot is owned by the step: it was cloned at record time and no other
// step or working model shares its mutable parts. Callers must treat
// Snapshot and Highlight as read-only.
type Step[S any] struct {
	// Index is the position of the step inside its trace, starting at 0.
	Index int

	// Phase tags what happened at this step.
	Phase Phase

	// Description is a human-readable sentence for the step.
	Description string

	// Snapshot is the working model as it was when the step was recorded.
	Snapshot S

	// Highlight lists the identifiers (node, edge, cell ids) this step is about,
	// in the order the generator named them, without duplicates.
	Highlight []string
}

// Highlights reports whether id is part of the step's highlight set.
func (s Step[S]) Highlights(id string) bool {
	for _, h := range s.Highlight {
		if h == id {
			return true
		}
	}

	return false
}

// Trace is the full ordered sequence of Steps of one run.
// The zero value is an empty trace with no algorithm name.
type Trace[S any] struct {
	algorithm string
	steps     []Step[S]
}

// New builds a Trace from already numbered steps.
//
// Error Conditions:
//   - ErrEmptyTrace    : steps is empty.
//   - ErrIndexMismatch : steps[i].Index != i for some i.
//   - ErrInvalidPhase  : a step carries a Phase outside the declared set.
//
// The slice is copied; later changes to steps do not affect the Trace.
// Complexity: O(n).
func New[S any](algorithm string, steps []Step[S]) (Trace[S], error) {
	if len(steps) == 0 {
		return Trace[S]{}, ErrEmptyTrace
	}
	for i := range steps {
		if steps[i].Index != i {
			return Trace[S]{}, errors.Wrapf(ErrIndexMismatch, "position %d holds index %d", i, steps[i].Index)
		}
		if !steps[i].Phase.Valid() {
			return Trace[S]{}, errors.Wrapf(ErrInvalidPhase, "position %d", i)
		}
	}
	cp := make([]Step[S], len(steps))
	copy(cp, steps)

	return Trace[S]{algorithm: algorithm, steps: cp}, nil
}

// Algorithm returns the name of the generator that produced the trace.
func (t Trace[S]) Algorithm() string { return t.algorithm }

// Len returns the number of steps.
func (t Trace[S]) Len() int { return len(t.steps) }

// Empty reports whether the trace has no steps (only true for the zero value).
func (t Trace[S]) Empty() bool { return len(t.steps) == 0 }

// At returns the step at index i and whether i was in range.
func (t Trace[S]) At(i int) (Step[S], bool) {
	if i < 0 || i >= len(t.steps) {
		var zero Step[S]
		return zero, false
	}

	return t.steps[i], true
}

// Last returns the terminal step. It panics on an empty trace, which only the
// zero value can be.
func (t Trace[S]) Last() Step[S] {
	if len(t.steps) == 0 {
		panic(errors.AssertionFailedf("trace: Last on empty trace"))
	}

	return t.steps[len(t.steps)-1]
}

// Steps returns a copy of the step slice.
func (t Trace[S]) Steps() []Step[S] {
	out := make([]Step[S], len(t.steps))
	copy(out, t.steps)

	return out
}

// Count returns how many steps carry phase p.
func (t Trace[S]) Count(p Phase) int {
	n := 0
	for i := range t.steps {
		if t.steps[i].Phase == p {
			n++
		}
	}

	return n
}

// Erase converts a typed trace into a Trace[any] so heterogeneous traces can
// share one controller or one renderer. Snapshots are boxed, not copied again.
func Erase[S any](t Trace[S]) Trace[any] {
	out := Trace[any]{algorithm: t.algorithm, steps: make([]Step[any], len(t.steps))}
	for i, s := range t.steps {
		out.steps[i] = Step[any]{
			Index:       s.Index,
			Phase:       s.Phase,
			Description: s.Description,
			Snapshot:    s.Snapshot,
			Highlight:   s.Highlight,
		}
	}

	return out
}
