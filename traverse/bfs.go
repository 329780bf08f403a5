package traverse

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// bfsWalker holds the mutable BFS state.
type bfsWalker struct {
	rec   *trace.Recorder[Snapshot]
	work  Snapshot
	opts  Options
	queue []string
}

// BFS records a breadth-first search from start. Edge weights are ignored.
//
// Steps:
//  1. PhaseInit, then PhaseEnqueue for the start at depth 0.
//  2. While the queue is non-empty:
//     a. pop the front and record PhaseDequeue,
//     b. for each unseen neighbour within MaxDepth, mark the tree edge
//     selected and record PhaseEnqueue.
//  3. PhaseDone with the visit order.
//
// Complexity: O(V + E) plus O(V + E) per step for the snapshot clone.
func BFS(g *graph.Graph, start string, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	o, err := prepare(g, start, opts)
	if err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	w := &bfsWalker{
		rec:  trace.NewRecorder(AlgorithmBFS, cloneSnapshot),
		work: newWork(g),
		opts: o,
	}
	w.rec.Record(trace.PhaseInit, w.work, fmt.Sprintf("Breadth-first search from %s", start), start)
	w.enqueue(start, 0, "", -1)
	for len(w.queue) > 0 {
		u := w.dequeue()
		w.enqueueNeighbours(u)
	}

	wg := w.work.Graph
	w.rec.Record(trace.PhaseDone, w.work,
		fmt.Sprintf("Visited %d of %d nodes: %s", len(w.work.Order), len(wg.Nodes), strings.Join(w.work.Order, " ")),
		w.work.Order...)

	return w.rec.MustFinish(), result(start, w.work), nil
}

// enqueue marks id seen at depth d and records the step. via is the tree
// edge position, or -1 for the start.
func (w *bfsWalker) enqueue(id string, d int, parent string, via int) {
	wg := w.work.Graph
	i := wg.NodeIndex(id)
	w.work.Dist[i] = int64(d)
	w.work.Parent[i] = parent
	wg.SetNodeStatus(id, graph.NodeVisited)
	w.queue = append(w.queue, id)
	w.work.Frontier = append([]string(nil), w.queue...)
	if via < 0 {
		w.rec.Record(trace.PhaseEnqueue, w.work, fmt.Sprintf("Enqueue %s at depth 0", id), id)
		return
	}
	wg.SetEdgeStatus(via, graph.EdgeSelected)
	e := wg.Edges[via]
	w.rec.Record(trace.PhaseEnqueue, w.work, fmt.Sprintf("Enqueue %s via %s at depth %d", id, e.ID, d), e.ID, id)
}

// dequeue pops the front, appends it to the visit order and records it.
func (w *bfsWalker) dequeue() string {
	u := w.queue[0]
	w.queue = w.queue[1:]
	w.work.Frontier = append([]string(nil), w.queue...)
	w.work.Order = append(w.work.Order, u)
	w.work.Graph.SetNodeStatus(u, graph.NodeActive)
	d := w.work.Dist[w.work.Graph.NodeIndex(u)]
	w.rec.Record(trace.PhaseDequeue, w.work, fmt.Sprintf("Dequeue %s (depth %d)", u, d), u)

	return u
}

func (w *bfsWalker) enqueueNeighbours(u string) {
	wg := w.work.Graph
	d := int(w.work.Dist[wg.NodeIndex(u)])
	for _, ei := range wg.Incident(u) {
		v := neighbour(wg, wg.Edges[ei], u)
		if v == "" || w.work.Dist[wg.NodeIndex(v)] != Inf {
			continue
		}
		if w.opts.MaxDepth > 0 && d+1 > w.opts.MaxDepth {
			continue
		}
		w.enqueue(v, d+1, u, ei)
	}
	wg.SetNodeStatus(u, graph.NodeDone)
}
