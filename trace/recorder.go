package trace

import "fmt"

// CloneFunc returns an independent deep copy of a working model.
type CloneFunc[S any] func(S) S

// Recorder accumulates steps while a generator runs.
//
// Every call to Record clones the model through the CloneFunc given to
// NewRecorder, so the generator may keep mutating its working copy.
// A Recorder is not safe for concurrent use; generation is single-threaded.
type Recorder[S any] struct {
	algorithm string
	clone     CloneFunc[S]
	steps     []Step[S]
}

// NewRecorder creates a Recorder for the named algorithm.
// clone must not be nil.
func NewRecorder[S any](algorithm string, clone CloneFunc[S]) *Recorder[S] {
	if clone == nil {
		panic("trace: NewRecorder requires a clone function")
	}

	return &Recorder[S]{algorithm: algorithm, clone: clone}
}

// Record appends a step holding a clone of model. ids are the highlighted
// identifiers; duplicates are dropped, first occurrence wins.
func (r *Recorder[S]) Record(phase Phase, model S, description string, ids ...string) {
	r.steps = append(r.steps, Step[S]{
		Index:       len(r.steps),
		Phase:       phase,
		Description: description,
		Snapshot:    r.clone(model),
		Highlight:   dedupe(ids),
	})
}

// Recordf is Record with a formatted description and no highlight.
func (r *Recorder[S]) Recordf(phase Phase, model S, format string, args ...any) {
	r.Record(phase, model, fmt.Sprintf(format, args...))
}

// Len returns the number of steps recorded so far.
func (r *Recorder[S]) Len() int { return len(r.steps) }

// Finish returns the recorded Trace. It fails with ErrEmptyTrace when nothing
// was recorded. The Recorder must not be used afterwards.
func (r *Recorder[S]) Finish() (Trace[S], error) {
	if len(r.steps) == 0 {
		return Trace[S]{}, ErrEmptyTrace
	}
	t := Trace[S]{algorithm: r.algorithm, steps: r.steps}
	r.steps = nil

	return t, nil
}

// MustFinish is Finish for generators that always record an init step.
// An empty trace there is a programming error.
func (r *Recorder[S]) MustFinish() Trace[S] {
	t, err := r.Finish()
	if err != nil {
		panic(err)
	}

	return t
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
