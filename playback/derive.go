package playback

import (
	"maps"

	"github.com/katalvlaran/algotrace/trace"
)

// Deriver folds steps into accumulated state that no single step carries.
// The controller calls Reset and then Apply for steps 0..index in order.
type Deriver interface {
	Reset()
	Apply(step trace.Step[any])
	Value() any
}

// Visited accumulates every highlighted id in first-seen order.
type Visited struct {
	ids  []string
	seen map[string]struct{}
}

// NewVisited returns an empty Visited deriver.
func NewVisited() *Visited { return &Visited{seen: map[string]struct{}{}} }

func (v *Visited) Reset() {
	v.ids = nil
	v.seen = map[string]struct{}{}
}

func (v *Visited) Apply(step trace.Step[any]) {
	for _, id := range step.Highlight {
		if _, ok := v.seen[id]; !ok {
			v.seen[id] = struct{}{}
			v.ids = append(v.ids, id)
		}
	}
}

// Value returns a []string copy.
func (v *Visited) Value() any { return append([]string(nil), v.ids...) }

// PathHistory records the first highlighted id of each step that has one.
type PathHistory struct {
	path []string
}

// NewPathHistory returns an empty PathHistory deriver.
func NewPathHistory() *PathHistory { return &PathHistory{} }

func (p *PathHistory) Reset() { p.path = nil }

func (p *PathHistory) Apply(step trace.Step[any]) {
	if len(step.Highlight) > 0 {
		p.path = append(p.path, step.Highlight[0])
	}
}

// Value returns a []string copy.
func (p *PathHistory) Value() any { return append([]string(nil), p.path...) }

// PhaseCounts tallies steps per phase.
type PhaseCounts struct {
	counts map[trace.Phase]int
}

// NewPhaseCounts returns an empty PhaseCounts deriver.
func NewPhaseCounts() *PhaseCounts { return &PhaseCounts{counts: map[trace.Phase]int{}} }

func (c *PhaseCounts) Reset() { c.counts = map[trace.Phase]int{} }

func (c *PhaseCounts) Apply(step trace.Step[any]) { c.counts[step.Phase]++ }

// Value returns a map[trace.Phase]int copy.
func (c *PhaseCounts) Value() any { return maps.Clone(c.counts) }
