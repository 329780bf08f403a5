package mst

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// ErrInvalidGraph indicates that the input is nil, directed, or fails graph.Validate.
var ErrInvalidGraph = errors.New("mst: MST requires a valid undirected graph")

// ErrEmptyGraph indicates a graph without nodes.
var ErrEmptyGraph = errors.New("mst: graph has no nodes")

// ErrEmptyRoot indicates that no start vertex was given to Prim.
var ErrEmptyRoot = errors.New("mst: empty root vertex")

// ErrRootNotFound indicates that Prim's root is not a node of the graph.
var ErrRootNotFound = errors.New("mst: root vertex not found")

// MethodPrim selects Prim's algorithm.
const MethodPrim = "prim"

// MethodKruskal selects Kruskal's algorithm.
const MethodKruskal = "kruskal"

// Snapshot is the state captured at each step.
type Snapshot struct {
	// Graph carries node and edge statuses.
	Graph *graph.Graph

	// Selected lists the ids of accepted edges in acceptance order.
	Selected []string

	// Total is the weight of Selected.
	Total int64

	// Components is the current disjoint-set partition (Kruskal only).
	Components [][]string

	// Visited lists visited node ids in visiting order (Prim only).
	Visited []string
}

// Clone deep-copies s.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Graph:    s.Graph.Clone(),
		Selected: append([]string(nil), s.Selected...),
		Total:    s.Total,
		Visited:  append([]string(nil), s.Visited...),
	}
	if s.Components != nil {
		c.Components = make([][]string, len(s.Components))
		for i, g := range s.Components {
			c.Components[i] = append([]string(nil), g...)
		}
	}

	return c
}

// Result summarises a finished run.
type Result struct {
	// Edges are the selected edges in selection order.
	Edges []graph.Edge

	// Total is the sum of selected weights.
	Total int64

	// Spanning reports whether the selection covers every node (|V|-1 edges).
	Spanning bool
}

// Options configures a run.
type Options struct {
	// Method is MethodKruskal or MethodPrim.
	Method string

	// Root is Prim's start vertex; ignored by Kruskal.
	Root string

	// SkipConsider drops the per-edge PhaseConsider steps for a shorter trace.
	SkipConsider bool
}

// Option mutates Options.
type Option func(*Options)

// WithMethod sets the algorithm used by Compute.
func WithMethod(m string) Option {
	return func(o *Options) { o.Method = m }
}

// WithRoot sets Prim's start vertex.
func WithRoot(root string) Option {
	return func(o *Options) { o.Root = root }
}

// WithSkipConsider drops PhaseConsider steps.
func WithSkipConsider() Option {
	return func(o *Options) { o.SkipConsider = true }
}

// DefaultOptions returns Kruskal with every step recorded.
func DefaultOptions() Options {
	return Options{Method: MethodKruskal}
}

// Compute dispatches to Kruskal or Prim according to opts.
// An unknown method returns ErrInvalidGraph.
func Compute(g *graph.Graph, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch o.Method {
	case MethodKruskal:
		return Kruskal(g, opts...)
	case MethodPrim:
		return Prim(g, o.Root, opts...)
	default:
		return trace.Trace[Snapshot]{}, Result{}, errors.Wrapf(ErrInvalidGraph, "unknown method %q", o.Method)
	}
}

func validate(g *graph.Graph) error {
	if g == nil || g.Directed {
		return ErrInvalidGraph
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("mst: %w: %w", ErrInvalidGraph, err)
	}
	if len(g.Nodes) == 0 {
		return ErrEmptyGraph
	}

	return nil
}

func cloneSnapshot(s Snapshot) Snapshot { return s.Clone() }
