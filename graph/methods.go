package graph

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// AddNode appends a node with the given id.
//
// Error Conditions:
//   - ErrEmptyNodeID   : id == "".
//   - ErrDuplicateNode : the id already exists.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if g.NodeIndex(id) >= 0 {
		return errors.Wrapf(ErrDuplicateNode, "%q", id)
	}
	g.Nodes = append(g.Nodes, Node{ID: id})

	return nil
}

// AddEdge appends an edge source→target with weight w, creating missing
// endpoints in order of appearance. It returns the new edge id.
// Parallel edges get a "#n" suffix so ids stay unique.
func (g *Graph) AddEdge(source, target string, w int64) (string, error) {
	for _, id := range [2]string{source, target} {
		if id == "" {
			return "", ErrEmptyNodeID
		}
		if g.NodeIndex(id) < 0 {
			g.Nodes = append(g.Nodes, Node{ID: id})
		}
	}
	base := source + "-" + target
	if g.Directed {
		base = source + "->" + target
	}
	id := base
	for n := 2; g.EdgeIndex(id) >= 0; n++ {
		id = fmt.Sprintf("%s#%d", base, n)
	}
	g.Edges = append(g.Edges, Edge{ID: id, Source: source, Target: target, Weight: w})

	return id, nil
}

// NodeIndex returns the position of node id, or -1.
// Complexity: O(V).
func (g *Graph) NodeIndex(id string) int {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return i
		}
	}

	return -1
}

// EdgeIndex returns the position of edge id, or -1.
// Complexity: O(E).
func (g *Graph) EdgeIndex(id string) int {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return i
		}
	}

	return -1
}

// NodeIDs returns node ids in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.ID
	}

	return out
}

// SetNodeStatus tags node id. It panics on an unknown id: engines only name
// nodes they validated beforehand.
func (g *Graph) SetNodeStatus(id string, s NodeStatus) {
	i := g.NodeIndex(id)
	if i < 0 {
		panic(errors.AssertionFailedf("graph: SetNodeStatus on unknown node %q", id))
	}
	g.Nodes[i].Status = s
}

// SetEdgeStatus tags the edge at position i.
func (g *Graph) SetEdgeStatus(i int, s EdgeStatus) {
	g.Edges[i].Status = s
}

// Incident returns positions of the edges leaving id, in insertion order.
// For undirected graphs every edge touching id is incident.
func (g *Graph) Incident(id string) []int {
	var out []int
	for i, e := range g.Edges {
		if e.Source == id || (!g.Directed && e.Target == id) {
			out = append(out, i)
		}
	}

	return out
}

// Validate checks referential integrity: non-empty unique node ids, unique
// edge ids, and edge endpoints that name existing nodes.
// Complexity: O(V + E).
func (g *Graph) Validate() error {
	if g == nil {
		return errors.Wrap(ErrUnknownNode, "graph is nil")
	}
	nodes := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrEmptyNodeID
		}
		if _, ok := nodes[n.ID]; ok {
			return errors.Wrapf(ErrDuplicateNode, "%q", n.ID)
		}
		nodes[n.ID] = struct{}{}
	}
	edges := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := edges[e.ID]; ok {
			return errors.Wrapf(ErrDuplicateEdge, "%q", e.ID)
		}
		edges[e.ID] = struct{}{}
		if _, ok := nodes[e.Source]; !ok {
			return errors.Wrapf(ErrUnknownNode, "edge %q source %q", e.ID, e.Source)
		}
		if _, ok := nodes[e.Target]; !ok {
			return errors.Wrapf(ErrUnknownNode, "edge %q target %q", e.ID, e.Target)
		}
	}

	return nil
}

// Clone returns a deep copy. Nodes and Edges hold only value fields, so a slice
// copy is a full copy.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	c := &Graph{Directed: g.Directed}
	c.Nodes = append([]Node(nil), g.Nodes...)
	c.Edges = append([]Edge(nil), g.Edges...)

	return c
}

// ResetStatus returns every node and edge to its default status.
func (g *Graph) ResetStatus() {
	for i := range g.Nodes {
		g.Nodes[i].Status = NodeDefault
	}
	for i := range g.Edges {
		g.Edges[i].Status = EdgeDefault
	}
}

// WeightOf sums the weights of edges with status s.
func (g *Graph) WeightOf(s EdgeStatus) int64 {
	var total int64
	for _, e := range g.Edges {
		if e.Status == s {
			total += e.Weight
		}
	}

	return total
}

// EdgesWith returns the ids of edges with status s, in insertion order.
func (g *Graph) EdgesWith(s EdgeStatus) []string {
	var out []string
	for _, e := range g.Edges {
		if e.Status == s {
			out = append(out, e.ID)
		}
	}

	return out
}
