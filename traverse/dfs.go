package traverse

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// dfsWalker holds the mutable DFS state.
type dfsWalker struct {
	rec    *trace.Recorder[Snapshot]
	work   Snapshot
	opts   Options
	finish []string
}

// DFS records a recursive depth-first search from start.
//
// Steps:
//  1. PhaseInit.
//  2. PhaseVisit on discovering a node (pre-order), with the tree edge
//     marked selected.
//  3. PhaseUnvisit when every neighbour of a node is exhausted (post-order).
//  4. PhaseDone with the discovery order.
//
// Result.Finish holds the post-order.
//
// Complexity: O(V + E) plus O(V + E) per step for the snapshot clone.
func DFS(g *graph.Graph, start string, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	o, err := prepare(g, start, opts)
	if err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	w := &dfsWalker{
		rec:  trace.NewRecorder(AlgorithmDFS, cloneSnapshot),
		work: newWork(g),
		opts: o,
	}
	w.rec.Record(trace.PhaseInit, w.work, fmt.Sprintf("Depth-first search from %s", start), start)
	w.traverse(start, 0, "", -1)

	wg := w.work.Graph
	w.rec.Record(trace.PhaseDone, w.work,
		fmt.Sprintf("Visited %d of %d nodes: %s", len(w.work.Order), len(wg.Nodes), strings.Join(w.work.Order, " ")),
		w.work.Order...)
	res := result(start, w.work)
	res.Finish = w.finish

	return w.rec.MustFinish(), res, nil
}

// traverse visits id at depth, reached from parent over edge via (-1 for
// the start).
func (w *dfsWalker) traverse(id string, depth int, parent string, via int) {
	wg := w.work.Graph
	i := wg.NodeIndex(id)
	w.work.Dist[i] = int64(depth)
	w.work.Parent[i] = parent
	w.work.Order = append(w.work.Order, id)
	w.work.Frontier = append(w.work.Frontier, id)
	wg.SetNodeStatus(id, graph.NodeActive)
	if via < 0 {
		w.rec.Record(trace.PhaseVisit, w.work, fmt.Sprintf("Visit %s at depth 0", id), id)
	} else {
		wg.SetEdgeStatus(via, graph.EdgeSelected)
		e := wg.Edges[via]
		w.rec.Record(trace.PhaseVisit, w.work, fmt.Sprintf("Visit %s via %s at depth %d", id, e.ID, depth), e.ID, id)
	}

	for _, ei := range wg.Incident(id) {
		v := neighbour(wg, wg.Edges[ei], id)
		if v == "" || w.work.Dist[wg.NodeIndex(v)] != Inf {
			continue
		}
		if w.opts.MaxDepth > 0 && depth+1 > w.opts.MaxDepth {
			continue
		}
		wg.SetNodeStatus(id, graph.NodeVisited)
		w.traverse(v, depth+1, id, ei)
		wg.SetNodeStatus(id, graph.NodeActive)
	}

	wg.SetNodeStatus(id, graph.NodeDone)
	w.work.Frontier = w.work.Frontier[:len(w.work.Frontier)-1]
	w.finish = append(w.finish, id)
	w.rec.Record(trace.PhaseUnvisit, w.work, fmt.Sprintf("Finish %s", id), id)
}
