package graph

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for graph construction and validation.
var (
	// ErrEmptyNodeID indicates that a node id is the empty string.
	ErrEmptyNodeID = errors.New("graph: node id is empty")

	// ErrDuplicateNode indicates that a node id was added twice.
	ErrDuplicateNode = errors.New("graph: duplicate node id")

	// ErrUnknownNode indicates that an edge or lookup referenced a missing node.
	ErrUnknownNode = errors.New("graph: unknown node id")

	// ErrDuplicateEdge indicates that two edges share an id.
	ErrDuplicateEdge = errors.New("graph: duplicate edge id")

	// ErrUnknownEdge indicates a lookup referenced a missing edge.
	ErrUnknownEdge = errors.New("graph: unknown edge id")
)

// NodeStatus is the display state of a node.
type NodeStatus uint8

const (
	NodeDefault NodeStatus = iota // untouched
	NodeActive                    // currently being processed
	NodeVisited                   // reached / part of the tree
	NodeDone                      // fully processed
)

func (s NodeStatus) String() string {
	switch s {
	case NodeDefault:
		return "default"
	case NodeActive:
		return "active"
	case NodeVisited:
		return "visited"
	case NodeDone:
		return "done"
	default:
		return fmt.Sprintf("NodeStatus(%d)", uint8(s))
	}
}

// EdgeStatus is the display state of an edge.
type EdgeStatus uint8

const (
	EdgeDefault     EdgeStatus = iota // untouched
	EdgeCandidate                     // on the frontier (Prim) or queued for inspection
	EdgeConsidering                   // the edge currently being examined
	EdgeSelected                      // accepted into the result
	EdgeRejected                      // discarded, e.g. it would close a cycle
)

func (s EdgeStatus) String() string {
	switch s {
	case EdgeDefault:
		return "default"
	case EdgeCandidate:
		return "candidate"
	case EdgeConsidering:
		return "considering"
	case EdgeSelected:
		return "selected"
	case EdgeRejected:
		return "rejected"
	default:
		return fmt.Sprintf("EdgeStatus(%d)", uint8(s))
	}
}

// Node is a vertex of the working model.
type Node struct {
	ID     string
	Status NodeStatus
}

// Edge connects Source to Target. For undirected graphs the orientation only
// records how the edge was entered.
type Edge struct {
	ID     string
	Source string
	Target string
	Weight int64
	Status EdgeStatus
}

// Other returns the endpoint of e opposite to id.
func (e Edge) Other(id string) string {
	if e.Source == id {
		return e.Target
	}

	return e.Source
}

// Touches reports whether id is an endpoint of e.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// Graph is the value-typed working model. Nodes and Edges keep insertion order,
// which engines rely on for tie-breaking.
type Graph struct {
	Directed bool
	Nodes    []Node
	Edges    []Edge
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithDirected makes every edge one-way Source→Target.
func WithDirected() Option {
	return func(g *Graph) { g.Directed = true }
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
