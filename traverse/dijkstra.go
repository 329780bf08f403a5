package traverse

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// Dijkstra records single-source shortest paths from start over
// non-negative weights.
//
// Steps:
//  1. PhaseInit with every distance at Inf except the start.
//  2. Pop the nearest heap entry. A stale entry (node already settled)
//     records PhaseNoop; otherwise the node is settled with PhaseDequeue.
//  3. For each edge to an unsettled neighbour, PhaseRelax when the path
//     through the settled node is strictly shorter, PhaseNoop otherwise.
//     The improving edge becomes the tree edge; the one it replaces is
//     rejected.
//  4. Stop when the heap drains or the nearest entry exceeds MaxDistance,
//     then PhaseDone with the final distances.
//
// Complexity: O((V + E) log V) plus O(V + E) per step for the snapshot clone.
func Dijkstra(g *graph.Graph, start string, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	o, err := prepare(g, start, opts)
	if err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	// Reject bad weights before recording anything.
	for _, e := range g.Edges {
		if e.Weight < 0 {
			return trace.Trace[Snapshot]{}, Result{}, errors.Wrapf(ErrNegativeWeight, "edge %s weight=%d", e.ID, e.Weight)
		}
		if e.Weight > MaxWeight {
			return trace.Trace[Snapshot]{}, Result{}, errors.Wrapf(ErrWeightRange, "edge %s weight=%d > %d", e.ID, e.Weight, MaxWeight)
		}
	}

	r := &runner{
		rec:     trace.NewRecorder(AlgorithmDijkstra, cloneSnapshot),
		work:    newWork(g),
		opts:    o,
		settled: make([]bool, len(g.Nodes)),
		via:     make([]int, len(g.Nodes)),
	}
	for i := range r.via {
		r.via[i] = -1 // no tree edge yet
	}
	wg := r.work.Graph
	r.work.Dist[wg.NodeIndex(start)] = 0
	heap.Init(&r.pq)
	r.push(start, 0)
	r.rec.Record(trace.PhaseInit, r.work, fmt.Sprintf("Dijkstra from %s: %s = 0, every other node ∞", start, start), start)
	r.process()

	r.work.Frontier = nil
	r.rec.Record(trace.PhaseDone, r.work, "Shortest distances: "+r.formatDistances(), r.work.Order...)

	return r.rec.MustFinish(), result(start, r.work), nil
}

// runner holds the mutable state of one Dijkstra run.
type runner struct {
	rec     *trace.Recorder[Snapshot]
	work    Snapshot
	opts    Options
	pq      nodePQ
	seq     int
	settled []bool
	via     []int // tree edge position per node, -1 if none
}

func (r *runner) process() {
	wg := r.work.Graph
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		r.syncFrontier()
		ui := wg.NodeIndex(item.id)
		// Lazy deletion: an older, longer entry for a settled node.
		if r.settled[ui] {
			r.rec.Record(trace.PhaseNoop, r.work,
				fmt.Sprintf("Skip stale entry %s:%d, already settled at %d", item.id, item.dist, r.work.Dist[ui]), item.id)
			continue
		}
		if item.dist > r.opts.MaxDistance {
			// Heap order means every remaining entry is farther still.
			break
		}
		r.settled[ui] = true
		r.work.Order = append(r.work.Order, item.id)
		wg.SetNodeStatus(item.id, graph.NodeActive)
		r.rec.Record(trace.PhaseDequeue, r.work, fmt.Sprintf("Settle %s at distance %d", item.id, item.dist), item.id)
		r.relax(item.id)
		wg.SetNodeStatus(item.id, graph.NodeDone) // its distance is final
	}
}

// relax examines every edge leaving u towards an unsettled node.
func (r *runner) relax(u string) {
	wg := r.work.Graph
	du := r.work.Dist[wg.NodeIndex(u)]
	for _, ei := range wg.Incident(u) {
		e := wg.Edges[ei]
		v := neighbour(wg, e, u)
		if v == "" {
			continue // directed edge pointing into u
		}
		vi := wg.NodeIndex(v)
		if r.settled[vi] {
			continue
		}
		// du and e.Weight are both finite and bounded, so cand cannot overflow.
		cand := du + e.Weight
		old := r.work.Dist[vi]
		if cand > r.opts.MaxDistance || cand >= old {
			// Ties keep the earlier parent.
			if wg.Edges[ei].Status == graph.EdgeDefault {
				wg.SetEdgeStatus(ei, graph.EdgeRejected)
			}
			r.rec.Record(trace.PhaseNoop, r.work,
				fmt.Sprintf("%s: %d + %d = %d, keep %s = %s", e.ID, du, e.Weight, cand, v, FormatDistance(old)), e.ID, v)
			continue
		}

		r.work.Dist[vi] = cand
		r.work.Parent[vi] = u
		// The superseded tree edge is no longer on any shortest path.
		if prev := r.via[vi]; prev >= 0 {
			wg.SetEdgeStatus(prev, graph.EdgeRejected)
		}
		r.via[vi] = ei
		wg.SetEdgeStatus(ei, graph.EdgeSelected)
		wg.SetNodeStatus(v, graph.NodeVisited)
		r.push(v, cand) // the old entry for v goes stale
		r.rec.Record(trace.PhaseRelax, r.work,
			fmt.Sprintf("%s: %d + %d = %d < %s, %s now %d", e.ID, du, e.Weight, cand, FormatDistance(old), v, cand), e.ID, v)
	}
}

func (r *runner) push(id string, dist int64) {
	heap.Push(&r.pq, &nodeItem{id: id, dist: dist, seq: r.seq})
	r.seq++
	r.syncFrontier()
}

// syncFrontier copies the heap into the snapshot in pop order.
func (r *runner) syncFrontier() {
	// Sort a copy; the heap's own slice order must not change.
	items := append(nodePQ(nil), r.pq...)
	sort.Sort(items)
	r.work.Frontier = r.work.Frontier[:0]
	for _, it := range items {
		r.work.Frontier = append(r.work.Frontier, fmt.Sprintf("%s:%d", it.id, it.dist))
	}
}

func (r *runner) formatDistances() string {
	parts := make([]string, len(r.work.Graph.Nodes))
	for i, n := range r.work.Graph.Nodes {
		parts[i] = n.ID + "=" + FormatDistance(r.work.Dist[i])
	}

	return strings.Join(parts, " ")
}

// FormatDistance renders d, or ∞ for Inf.
func FormatDistance(d int64) string {
	if d == Inf {
		return "∞"
	}

	return fmt.Sprintf("%d", d)
}

// nodeItem is a heap entry. Entries go stale instead of being updated.
type nodeItem struct {
	id   string
	dist int64
	seq  int
}

// nodePQ is a min-heap ordered by dist, then push order.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
