package topo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// Algorithm is the trace name used by this package.
const Algorithm = "topo-sort"

// ErrInvalidGraph indicates a nil, undirected or inconsistent graph.
var ErrInvalidGraph = errors.New("topo: topological sort requires a valid directed graph")

// Snapshot is the state at one step.
type Snapshot struct {
	// Graph carries node and edge statuses.
	Graph *graph.Graph

	// InDegree is aligned with Graph.Nodes: remaining unprocessed in-edges.
	InDegree []int

	// Queue holds node ids waiting to be emitted, front first.
	Queue []string

	// Order is the topological order emitted so far.
	Order []string

	// HasCycle is set on the terminal step when some node was never emitted.
	HasCycle bool
}

// Clone deep-copies s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Graph:    s.Graph.Clone(),
		InDegree: append([]int(nil), s.InDegree...),
		Queue:    append([]string(nil), s.Queue...),
		Order:    append([]string(nil), s.Order...),
		HasCycle: s.HasCycle,
	}
}

// Result summarises a run.
type Result struct {
	// Order is the emitted order; shorter than the node count when HasCycle.
	Order []string

	// HasCycle reports that the remaining nodes lie on or behind a cycle.
	HasCycle bool

	// Remaining lists the nodes never emitted, in node order.
	Remaining []string
}

// Sort records Kahn's algorithm over the directed graph g. g is not modified.
//
// Steps:
//  1. Validate; compute in-degrees; record PhaseInit.
//  2. Enqueue every in-degree-0 node (PhaseEnqueue each).
//  3. While the queue is non-empty:
//     a. pop the front, append it to the order (PhaseDequeue),
//     b. for each out-edge decrement the target (PhaseDecrement) and enqueue
//     it when it reaches zero (PhaseEnqueue).
//  4. If fewer nodes were emitted than exist, set HasCycle and record
//     PhaseCycle; otherwise record PhaseDone.
func Sort(g *graph.Graph) (trace.Trace[Snapshot], Result, error) {
	// 1. Validate and compute in-degrees.
	if g == nil || !g.Directed {
		return trace.Trace[Snapshot]{}, Result{}, ErrInvalidGraph
	}
	if err := g.Validate(); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, fmt.Errorf("topo: %w: %w", ErrInvalidGraph, err)
	}
	work := Snapshot{Graph: g.Clone()}
	wg := work.Graph
	wg.ResetStatus()
	work.InDegree = make([]int, len(wg.Nodes))
	// Parallel edges count twice and are removed twice.
	for _, e := range wg.Edges {
		work.InDegree[wg.NodeIndex(e.Target)]++
	}
	rec := trace.NewRecorder(Algorithm, Snapshot.Clone)
	rec.Record(trace.PhaseInit, work, "In-degrees: "+formatDegrees(wg, work.InDegree))

	// 2. Seed the queue.
	enqueue := func(id string, why string) {
		work.Queue = append(work.Queue, id)
		wg.SetNodeStatus(id, graph.NodeActive)
		rec.Record(trace.PhaseEnqueue, work, fmt.Sprintf("Enqueue %s: %s", id, why), id)
	}
	// Sources enter the queue in node order.
	for i, n := range wg.Nodes {
		if work.InDegree[i] == 0 {
			enqueue(n.ID, "no incoming edges")
		}
	}

	// 3. Drain.
	for len(work.Queue) > 0 {
		u := work.Queue[0] // FIFO
		work.Queue = work.Queue[1:]
		work.Order = append(work.Order, u)
		wg.SetNodeStatus(u, graph.NodeDone)
		rec.Record(trace.PhaseDequeue, work,
			fmt.Sprintf("Dequeue %s; order so far: %s", u, strings.Join(work.Order, " ")), u)

		// Out-edges in input order; removing each one may free its target.
		for _, ei := range wg.Incident(u) {
			e := wg.Edges[ei]
			ti := wg.NodeIndex(e.Target)
			work.InDegree[ti]--
			wg.SetEdgeStatus(ei, graph.EdgeSelected)
			rec.Record(trace.PhaseDecrement, work,
				fmt.Sprintf("Remove %s: in-degree of %s drops to %d", e.ID, e.Target, work.InDegree[ti]),
				e.ID, e.Target)
			if work.InDegree[ti] == 0 {
				enqueue(e.Target, "all prerequisites done")
			}
		}
	}

	// 4. Terminal state.
	res := Result{Order: append([]string(nil), work.Order...)}
	if len(work.Order) < len(wg.Nodes) {
		// Every node on or behind a cycle keeps a positive in-degree.
		work.HasCycle = true
		res.HasCycle = true
		for i, n := range wg.Nodes {
			if work.InDegree[i] > 0 {
				res.Remaining = append(res.Remaining, n.ID)
			}
		}
		// Edges never removed are the ones blocking the order.
		for i, e := range wg.Edges {
			if e.Status != graph.EdgeSelected {
				wg.SetEdgeStatus(i, graph.EdgeRejected)
			}
		}
		rec.Record(trace.PhaseCycle, work,
			fmt.Sprintf("Cycle detected: %d of %d nodes never reached in-degree 0 (%s)",
				len(res.Remaining), len(wg.Nodes), strings.Join(res.Remaining, " ")),
			res.Remaining...)

		return rec.MustFinish(), res, nil
	}
	rec.Record(trace.PhaseDone, work, "Topological order: "+strings.Join(work.Order, " "), work.Order...)

	return rec.MustFinish(), res, nil
}

// SortEdges is Sort over nodes "0".."n-1" connected by the given pairs.
// n <= 0 derives the node count from the largest id.
func SortEdges(n int, edges [][2]int) (trace.Trace[Snapshot], Result, error) {
	g, err := BuildGraph(n, edges)
	if err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}

	return Sort(g)
}

// BuildGraph turns numeric pairs into a directed graph with nodes "0".."n-1".
func BuildGraph(n int, edges [][2]int) (*graph.Graph, error) {
	if n <= 0 {
		for _, e := range edges {
			n = max(n, e[0]+1, e[1]+1)
		}
	}
	if n > MaxNodes {
		return nil, errors.Wrapf(ErrMalformedEdgeList, "%d nodes exceeds limit %d", n, MaxNodes)
	}
	g := graph.New(graph.WithDirected())
	for i := 0; i < n; i++ {
		_ = g.AddNode(strconv.Itoa(i))
	}
	for k, e := range edges {
		if e[0] < 0 || e[1] < 0 || e[0] >= n || e[1] >= n {
			return nil, errors.Wrapf(ErrMalformedEdgeList, "edge %d (%d->%d) outside 0..%d", k, e[0], e[1], n-1)
		}
		if _, err := g.AddEdge(strconv.Itoa(e[0]), strconv.Itoa(e[1]), 0); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func formatDegrees(g *graph.Graph, deg []int) string {
	parts := make([]string, len(deg))
	for i, d := range deg {
		parts[i] = fmt.Sprintf("%s=%d", g.Nodes[i].ID, d)
	}

	return strings.Join(parts, " ")
}
