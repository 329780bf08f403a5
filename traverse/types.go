package traverse

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
)

// Algorithm names recorded in traces.
const (
	AlgorithmBFS      = "bfs"
	AlgorithmDFS      = "dfs"
	AlgorithmDijkstra = "dijkstra"
)

// Inf marks an unreached node. It is never used as an addend.
const Inf int64 = math.MaxInt64

// MaxNodes bounds the graph size.
const MaxNodes = 256

// MaxWeight bounds absolute edge weights, so path sums stay far from overflow.
const MaxWeight int64 = 1 << 40

var (
	// ErrInvalidGraph indicates a nil or inconsistent graph.
	ErrInvalidGraph = errors.New("traverse: invalid graph")

	// ErrTooLarge indicates more than MaxNodes nodes.
	ErrTooLarge = errors.New("traverse: too many nodes")

	// ErrEmptyStart indicates an empty start vertex id.
	ErrEmptyStart = errors.New("traverse: start vertex is empty")

	// ErrStartNotFound indicates a start vertex absent from the graph.
	ErrStartNotFound = errors.New("traverse: start vertex not found")

	// ErrNegativeWeight indicates a negative edge weight given to Dijkstra.
	ErrNegativeWeight = errors.New("traverse: negative edge weight")

	// ErrWeightRange indicates an edge weight above MaxWeight.
	ErrWeightRange = errors.New("traverse: edge weight out of range")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("traverse: invalid option")

	// ErrUnreachable is returned by Result.PathTo for nodes never reached.
	ErrUnreachable = errors.New("traverse: vertex not reached")
)

// Snapshot is the state captured at each step.
type Snapshot struct {
	// Graph carries node and edge statuses. Tree edges are EdgeSelected.
	Graph *graph.Graph

	// Dist is aligned with Graph.Nodes: hop depth for BFS and DFS, path
	// weight for Dijkstra, Inf when unreached.
	Dist []int64

	// Parent is aligned with Graph.Nodes; "" for the start and unreached nodes.
	Parent []string

	// Frontier is the BFS queue front first, the DFS recursion stack bottom
	// first, or the Dijkstra heap in pop order.
	Frontier []string

	// Order lists nodes in visit order.
	Order []string
}

func cloneSnapshot(s Snapshot) Snapshot {
	return Snapshot{
		Graph:    s.Graph.Clone(),
		Dist:     append([]int64(nil), s.Dist...),
		Parent:   append([]string(nil), s.Parent...),
		Frontier: append([]string(nil), s.Frontier...),
		Order:    append([]string(nil), s.Order...),
	}
}

// Result summarises a traversal.
type Result struct {
	Start string

	// Order is the visit order: dequeue order for BFS, discovery order for
	// DFS, settle order for Dijkstra.
	Order []string

	// Finish is the DFS post-order; nil for BFS and Dijkstra.
	Finish []string

	// Dist holds depth or distance for every reached node.
	Dist map[string]int64

	// Parent maps each reached node except Start to its predecessor.
	Parent map[string]string
}

// PathTo reconstructs the path from Start to dest.
func (r Result) PathTo(dest string) ([]string, error) {
	if _, ok := r.Dist[dest]; !ok {
		return nil, errors.Wrapf(ErrUnreachable, "%q", dest)
	}
	var path []string
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// Options tunes a traversal.
type Options struct {
	// MaxDepth, if > 0, stops BFS and DFS from going deeper.
	MaxDepth int

	// MaxDistance stops Dijkstra from settling nodes farther than this.
	MaxDistance int64

	err error
}

// Option mutates Options.
type Option func(*Options)

// WithMaxDepth limits BFS and DFS to depth d. 0 means no limit; a negative
// d makes the traversal fail with ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = errors.Wrapf(ErrOptionViolation, "max depth %d is negative", d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMaxDistance limits Dijkstra to nodes within x of the start.
func WithMaxDistance(x int64) Option {
	return func(o *Options) {
		if x < 0 {
			o.err = errors.Wrapf(ErrOptionViolation, "max distance %d is negative", x)
			return
		}
		o.MaxDistance = x
	}
}

// DefaultOptions sets no depth or distance limit.
func DefaultOptions() Options {
	return Options{MaxDistance: Inf}
}

// prepare validates g and start and applies opts.
func prepare(g *graph.Graph, start string, opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, o.err
	}
	if g == nil {
		return o, errors.Wrap(ErrInvalidGraph, "graph is nil")
	}
	if err := g.Validate(); err != nil {
		return o, fmt.Errorf("traverse: %w: %w", ErrInvalidGraph, err)
	}
	if len(g.Nodes) > MaxNodes {
		return o, errors.Wrapf(ErrTooLarge, "%d nodes > %d", len(g.Nodes), MaxNodes)
	}
	if start == "" {
		return o, ErrEmptyStart
	}
	if g.NodeIndex(start) < 0 {
		return o, errors.Wrapf(ErrStartNotFound, "%q", start)
	}

	return o, nil
}

// newWork returns a status-cleared snapshot with every distance at Inf.
func newWork(g *graph.Graph) Snapshot {
	work := Snapshot{
		Graph:  g.Clone(),
		Dist:   make([]int64, len(g.Nodes)),
		Parent: make([]string, len(g.Nodes)),
	}
	work.Graph.ResetStatus()
	for i := range work.Dist {
		work.Dist[i] = Inf
	}

	return work
}

// result converts the final snapshot into a Result.
func result(start string, work Snapshot) Result {
	res := Result{
		Start:  start,
		Order:  append([]string(nil), work.Order...),
		Dist:   map[string]int64{},
		Parent: map[string]string{},
	}
	for i, n := range work.Graph.Nodes {
		if work.Dist[i] == Inf {
			continue
		}
		res.Dist[n.ID] = work.Dist[i]
		if work.Parent[i] != "" {
			res.Parent[n.ID] = work.Parent[i]
		}
	}

	return res
}

// neighbour returns the far end of edge e when leaving u, or "" when a
// directed edge does not leave u.
func neighbour(g *graph.Graph, e graph.Edge, u string) string {
	if g.Directed && e.Source != u {
		return ""
	}

	return e.Other(u)
}
