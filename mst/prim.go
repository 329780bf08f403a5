package mst

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// Prim records Prim's MST algorithm over g, growing from root.
//
// Error Conditions:
//   - ErrInvalidGraph : g is nil, directed, or inconsistent.
//   - ErrEmptyGraph   : g has no nodes.
//   - ErrEmptyRoot    : root == "".
//   - ErrRootNotFound : root is not a node of g.
//
// Steps:
//  1. Validate, clone, reset statuses; mark root visited; record init.
//  2. Recompute the frontier and record it.
//  3. While some node is unvisited:
//     a. pick the lightest candidate edge, earliest in insertion order on ties;
//     stop if there is none (disconnected),
//     b. record PhaseConsider (unless WithSkipConsider),
//     c. select it, visit its unvisited endpoint, record PhaseSelect,
//     d. recompute the frontier: non-selected edges with both endpoints visited
//     are rejected (PhaseReject), new cross edges become candidates
//     (PhaseCandidate).
//  4. Record PhaseDone.
//
// Complexity: O(V·E) plus O(V+E) per step for the snapshot clone.
func Prim(g *graph.Graph, root string, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	// 1. Validate input.
	if err := validate(g); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	if root == "" {
		return trace.Trace[Snapshot]{}, Result{}, ErrEmptyRoot
	}
	if g.NodeIndex(root) < 0 {
		return trace.Trace[Snapshot]{}, Result{}, ErrRootNotFound
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	work := Snapshot{Graph: g.Clone()}
	work.Graph.ResetStatus()
	wg := work.Graph
	// visited mirrors work.Visited for O(1) membership tests.
	visited := make(map[string]bool, len(wg.Nodes))
	visit := func(id string) {
		visited[id] = true
		work.Visited = append(work.Visited, id)
		wg.SetNodeStatus(id, graph.NodeVisited)
	}
	visit(root)
	rec := trace.NewRecorder(MethodPrim, cloneSnapshot)
	rec.Record(trace.PhaseInit, work, fmt.Sprintf("Start Prim from %s", root), root)

	// 2. Initial frontier.
	_, added := refreshFrontier(wg, visited)
	if len(added) > 0 {
		rec.Record(trace.PhaseCandidate, work, "Frontier: "+strings.Join(added, ", "), added...)
	}

	// 3. Grow the tree.
	var res Result
	for len(work.Visited) < len(wg.Nodes) {
		// Linear scan for the lightest candidate; strict < keeps the earliest
		// edge among equal weights.
		best := -1
		for i := range wg.Edges {
			if wg.Edges[i].Status != graph.EdgeCandidate {
				continue
			}
			if best < 0 || wg.Edges[i].Weight < wg.Edges[best].Weight {
				best = i
			}
		}
		if best < 0 {
			// Empty frontier before every node is visited: disconnected.
			break
		}
		e := wg.Edges[best]
		if !o.SkipConsider {
			wg.SetEdgeStatus(best, graph.EdgeConsidering)
			rec.Record(trace.PhaseConsider, work,
				fmt.Sprintf("Lightest candidate is %s (weight %d)", e.ID, e.Weight), e.ID)
		}
		// Exactly one endpoint is outside the tree; pick it.
		far := e.Target
		if visited[far] {
			far = e.Source
		}
		wg.SetEdgeStatus(best, graph.EdgeSelected)
		visit(far)
		work.Selected = append(work.Selected, e.ID)
		work.Total += e.Weight
		e.Status = graph.EdgeSelected
		res.Edges = append(res.Edges, e)
		rec.Record(trace.PhaseSelect, work,
			fmt.Sprintf("Select %s and visit %s; total weight %d", e.ID, far, work.Total), e.ID, far)

		// The new node turns some candidates internal and exposes new cross edges.
		rejected, added := refreshFrontier(wg, visited)
		if len(rejected) > 0 {
			rec.Record(trace.PhaseReject, work,
				"Now internal, rejected: "+strings.Join(rejected, ", "), rejected...)
		}
		if len(added) > 0 {
			rec.Record(trace.PhaseCandidate, work,
				"New frontier edges: "+strings.Join(added, ", "), added...)
		}
	}

	// 4. Terminal state.
	res.Total = work.Total
	res.Spanning = len(work.Visited) == len(wg.Nodes)
	rec.Record(trace.PhaseDone, work, doneDescription(res, len(wg.Nodes)), work.Selected...)

	return rec.MustFinish(), res, nil
}

// refreshFrontier re-derives edge statuses from the visited set. It returns
// the ids that turned rejected and the ids that turned candidate.
func refreshFrontier(g *graph.Graph, visited map[string]bool) (rejected, added []string) {
	for i, e := range g.Edges {
		if e.Status == graph.EdgeSelected || e.Status == graph.EdgeRejected {
			continue // final statuses never change
		}
		s, t := visited[e.Source], visited[e.Target]
		switch {
		case s && t:
			// Both ends in the tree: it can only close a cycle.
			g.SetEdgeStatus(i, graph.EdgeRejected)
			rejected = append(rejected, e.ID)
		case s != t && e.Status != graph.EdgeCandidate:
			// Crosses the cut for the first time.
			g.SetEdgeStatus(i, graph.EdgeCandidate)
			added = append(added, e.ID)
		}
	}

	return rejected, added
}
