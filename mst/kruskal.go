package mst

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
	"github.com/katalvlaran/algotrace/unionfind"
)

// Kruskal records Kruskal's MST algorithm over g. g itself is not modified.
//
// Error Conditions:
//   - ErrInvalidGraph : g is nil, directed, or inconsistent.
//   - ErrEmptyGraph   : g has no nodes.
//
// Steps:
//  1. Validate g and clone it into the working snapshot; reset all statuses.
//  2. Record the initial state (every node its own component).
//  3. Stable-sort edge positions by weight; mark them candidates and record.
//  4. For each sorted edge, until |V|-1 edges are selected:
//     a. record PhaseConsider (unless WithSkipConsider),
//     b. Union(source, target): true selects the edge, false rejects it.
//  5. Reset unexamined edges to default and record PhaseDone.
//
// Self-loops need no special case: Union(x, x) is false, so they are rejected.
// Complexity: O(E log E + α(V)·E) plus O(V+E) per step for the snapshot clone.
func Kruskal(g *graph.Graph, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	// 1. Validate and prepare the working copy.
	if err := validate(g); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	work := Snapshot{Graph: g.Clone()} // caller's graph stays untouched
	work.Graph.ResetStatus()
	wg := work.Graph
	// One singleton set per node; the DSU lives outside the snapshot and
	// Groups() copies its view into each step.
	ds := unionfind.New(wg.NodeIDs()...)
	work.Components = ds.Groups()
	rec := trace.NewRecorder(MethodKruskal, cloneSnapshot)

	// 2. Initial state.
	rec.Record(trace.PhaseInit, work,
		fmt.Sprintf("Start Kruskal on %d nodes and %d edges; every node is its own component", len(wg.Nodes), len(wg.Edges)))

	// 3. Stable sort by weight keeps input order among equal weights.
	// Sort positions rather than edges so statuses are set in place.
	order := make([]int, len(wg.Edges))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return wg.Edges[order[a]].Weight < wg.Edges[order[b]].Weight
	})
	labels := make([]string, len(order))
	for k, i := range order {
		wg.SetEdgeStatus(i, graph.EdgeCandidate)
		labels[k] = fmt.Sprintf("%s(%d)", wg.Edges[i].ID, wg.Edges[i].Weight)
	}
	rec.Record(trace.PhaseCandidate, work, "Sort edges by weight: "+strings.Join(labels, " "))

	// 4. Scan sorted edges.
	need := len(wg.Nodes) - 1 // a spanning tree has |V|-1 edges
	var res Result
	for _, i := range order {
		if len(work.Selected) == need {
			// Tree complete; the rest of the edges stay unexamined.
			break
		}
		e := wg.Edges[i]
		if !o.SkipConsider {
			wg.SetEdgeStatus(i, graph.EdgeConsidering)
			rec.Record(trace.PhaseConsider, work,
				fmt.Sprintf("Consider %s (weight %d)", e.ID, e.Weight), e.ID, e.Source, e.Target)
		}
		// Union reports whether the endpoints were in different sets.
		if ds.Union(e.Source, e.Target) {
			wg.SetEdgeStatus(i, graph.EdgeSelected)
			wg.SetNodeStatus(e.Source, graph.NodeVisited)
			wg.SetNodeStatus(e.Target, graph.NodeVisited)
			work.Selected = append(work.Selected, e.ID)
			work.Total += e.Weight
			work.Components = ds.Groups() // refresh after the merge
			e.Status = graph.EdgeSelected
			res.Edges = append(res.Edges, e)
			rec.Record(trace.PhaseSelect, work,
				fmt.Sprintf("Select %s: %s and %s were in different components; total weight %d", e.ID, e.Source, e.Target, work.Total),
				e.ID, e.Source, e.Target)
		} else {
			// Same set: the edge would close a cycle.
			wg.SetEdgeStatus(i, graph.EdgeRejected)
			rec.Record(trace.PhaseReject, work,
				fmt.Sprintf("Reject %s: %s and %s are already connected, it would form a cycle", e.ID, e.Source, e.Target),
				e.ID, e.Source, e.Target)
		}
	}

	// 5. Terminal state.
	// Candidates never reached by the scan go back to default.
	for i := range wg.Edges {
		if wg.Edges[i].Status == graph.EdgeCandidate {
			wg.SetEdgeStatus(i, graph.EdgeDefault)
		}
	}
	res.Total = work.Total
	res.Spanning = len(work.Selected) == need // false for a disconnected graph
	rec.Record(trace.PhaseDone, work, doneDescription(res, len(wg.Nodes)), work.Selected...)

	return rec.MustFinish(), res, nil
}

func doneDescription(res Result, nodes int) string {
	if res.Spanning {
		return fmt.Sprintf("Minimum spanning tree complete: %d edges, total weight %d", len(res.Edges), res.Total)
	}

	return fmt.Sprintf("Graph is disconnected: spanning forest of %d edges (need %d), total weight %d",
		len(res.Edges), nodes-1, res.Total)
}
