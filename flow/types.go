package flow

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
)

// Algorithm names recorded in traces.
const (
	AlgorithmEdmondsKarp   = "edmonds-karp"
	AlgorithmFordFulkerson = "ford-fulkerson"
	AlgorithmDinic         = "dinic"
)

// MaxNodes bounds the network size.
const MaxNodes = 64

// MaxCapacity bounds a single edge capacity.
const MaxCapacity int64 = 1 << 20

// DefaultMaxAugmentations bounds the number of augmenting paths.
const DefaultMaxAugmentations = 1000

var (
	// ErrInvalidGraph indicates a nil or inconsistent network.
	ErrInvalidGraph = errors.New("flow: invalid graph")

	// ErrTooLarge indicates more than MaxNodes nodes.
	ErrTooLarge = errors.New("flow: too many nodes")

	// ErrSourceNotFound indicates an empty or missing source vertex.
	ErrSourceNotFound = errors.New("flow: source vertex not found")

	// ErrSinkNotFound indicates an empty or missing sink vertex.
	ErrSinkNotFound = errors.New("flow: sink vertex not found")

	// ErrSameTerminals indicates source == sink.
	ErrSameTerminals = errors.New("flow: source and sink are the same vertex")

	// ErrNegativeCapacity is matched by every EdgeError.
	ErrNegativeCapacity = errors.New("flow: negative capacity")

	// ErrCapacityRange indicates a capacity above MaxCapacity.
	ErrCapacityRange = errors.New("flow: capacity out of range")

	// ErrAugmentLimit indicates the run needed more augmenting paths than
	// allowed.
	ErrAugmentLimit = errors.New("flow: augmentation limit reached")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("flow: invalid option")
)

// EdgeError reports a negative capacity. errors.Is(err, ErrNegativeCapacity)
// holds for it.
type EdgeError struct {
	Edge     string
	From, To string
	Cap      int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on edge %s (%q→%q): %d", e.Edge, e.From, e.To, e.Cap)
}

// Is matches ErrNegativeCapacity.
func (e EdgeError) Is(target error) bool { return target == ErrNegativeCapacity }

// Snapshot is the state captured at each step.
//
// Edge statuses: EdgeConsidering for the path about to be augmented,
// EdgeSelected for saturated edges, EdgeCandidate for edges carrying flow
// below capacity, EdgeDefault for edges without flow.
type Snapshot struct {
	Graph *graph.Graph

	// Flow is aligned with Graph.Edges and signed in the Source→Target
	// direction. It is never negative on directed edges.
	Flow []int64

	// Path is the current augmenting path, source first; nil outside
	// consider and augment steps.
	Path []string

	// Total is the flow value so far.
	Total int64

	// SourceSide lists the source side of the minimum cut in node order;
	// set from the cut step on.
	SourceSide []string

	// Level is the current Dinic level graph, aligned with Graph.Nodes,
	// -1 for nodes outside it. Nil for the other methods.
	Level []int
}

func cloneSnapshot(s Snapshot) Snapshot {
	return Snapshot{
		Graph:      s.Graph.Clone(),
		Flow:       append([]int64(nil), s.Flow...),
		Path:       append([]string(nil), s.Path...),
		Total:      s.Total,
		SourceSide: append([]string(nil), s.SourceSide...),
		Level:      append([]int(nil), s.Level...),
	}
}

// Result summarises a run.
type Result struct {
	Source, Sink string

	// Value is the maximum flow.
	Value int64

	// Flow maps each edge id to its final signed flow.
	Flow map[string]int64

	// Paths lists every augmenting path in order, source first.
	Paths [][]string

	// SourceSide and Cut describe a minimum cut: the nodes reachable from
	// the source in the final residual network, and the edges leaving them.
	SourceSide []string
	Cut        []string
}

// Augmentations is the number of augmenting paths.
func (r Result) Augmentations() int { return len(r.Paths) }

// Options tunes a run.
type Options struct {
	// MaxAugmentations aborts the run with ErrAugmentLimit when exceeded.
	MaxAugmentations int

	err error
}

// Option mutates Options.
type Option func(*Options)

// WithMaxAugmentations replaces DefaultMaxAugmentations. n must be positive.
func WithMaxAugmentations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = errors.Wrapf(ErrOptionViolation, "max augmentations %d < 1", n)
			return
		}
		o.MaxAugmentations = n
	}
}

// DefaultOptions returns the defaults.
func DefaultOptions() Options {
	return Options{MaxAugmentations: DefaultMaxAugmentations}
}
