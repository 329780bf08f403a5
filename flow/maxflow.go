package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// EdmondsKarp records a maximum flow from source to sink using shortest
// augmenting paths.
//
// Error Conditions:
//   - ErrInvalidGraph, ErrTooLarge: bad network.
//   - ErrSourceNotFound, ErrSinkNotFound, ErrSameTerminals: bad terminals.
//   - EdgeError (matches ErrNegativeCapacity), ErrCapacityRange: bad edge.
//   - ErrAugmentLimit: more than MaxAugmentations paths were needed.
//   - ctx.Err(): cancelled between augmentations.
func EdmondsKarp(ctx context.Context, g *graph.Graph, source, sink string, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	return run(ctx, AlgorithmEdmondsKarp, finder(shortestPath), g, source, sink, opts)
}

// FordFulkerson records a maximum flow from source to sink using the first
// augmenting path a depth-first search finds. Errors are as for EdmondsKarp.
func FordFulkerson(ctx context.Context, g *graph.Graph, source, sink string, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	return run(ctx, AlgorithmFordFulkerson, finder(firstPath), g, source, sink, opts)
}

// Dinic records a maximum flow from source to sink using blocking flows on
// BFS level graphs. Each level graph is recorded as a PhaseLevel step before
// the paths found in it; the last one shows the sink unreachable. Errors
// are as for EdmondsKarp.
func Dinic(ctx context.Context, g *graph.Graph, source, sink string, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	return run(ctx, AlgorithmDinic, &dinic{}, g, source, sink, opts)
}

// run is the shared augmenting-path loop.
//
// Steps:
//  1. Validate, clear statuses, zero every flow, record PhaseInit.
//  2. Until find returns no path:
//     a. when find rebuilt a level graph, record PhaseLevel,
//     b. bottleneck = min residual along the path,
//     c. mark the path considering and record PhaseConsider,
//     d. push the bottleneck, refresh statuses and record PhaseAugment.
//  3. Compute the source side of the residual network and record PhaseCut
//     with the edges leaving it.
//  4. Record PhaseDone.
func run(ctx context.Context, algorithm string, find search, g *graph.Graph, source, sink string, opts []Option) (trace.Trace[Snapshot], Result, error) {
	o, err := prepare(g, source, sink, opts)
	if err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}

	// 1. Working state.
	work := Snapshot{Graph: g.Clone(), Flow: make([]int64, len(g.Edges))}
	work.Graph.ResetStatus()
	net := network{g: work.Graph, flow: work.Flow}
	rec := trace.NewRecorder(algorithm, cloneSnapshot)
	rec.Record(trace.PhaseInit, work, fmt.Sprintf("Max flow from %s to %s", source, sink), source, sink)

	// 2. Augment.
	res := Result{Source: source, Sink: sink}
	for {
		if err := ctx.Err(); err != nil {
			return trace.Trace[Snapshot]{}, Result{}, errors.Wrap(err, "flow")
		}
		path, levels := find.next(net, source, sink)
		if levels != nil {
			work.Path = nil
			work.Level = levels
			desc, ids := describeLevels(work.Graph, levels, sink)
			rec.Record(trace.PhaseLevel, work, desc, ids...)
		}
		if path == nil {
			break
		}
		if len(res.Paths) == o.MaxAugmentations {
			return trace.Trace[Snapshot]{}, Result{}, errors.Wrapf(ErrAugmentLimit, "%d paths", o.MaxAugmentations)
		}

		b := net.residual(path[0])
		for _, a := range path[1:] {
			b = min(b, net.residual(a))
		}
		nodes := []string{source}
		ids := make([]string, 0, 2*len(path)+1)
		ids = append(ids, source)
		for _, a := range path {
			nodes = append(nodes, net.head(a))
			ids = append(ids, work.Graph.Edges[a.edge].ID, net.head(a))
			work.Graph.SetEdgeStatus(a.edge, graph.EdgeConsidering)
		}
		route := strings.Join(nodes, " → ")
		work.Path = nodes
		rec.Record(trace.PhaseConsider, work, fmt.Sprintf("Path %s, bottleneck %d", route, b), ids...)

		for _, a := range path {
			net.push(a, b)
		}
		work.Total += b
		refresh(work)
		res.Paths = append(res.Paths, nodes)
		rec.Record(trace.PhaseAugment, work, fmt.Sprintf("Push %d along %s, total flow %d", b, route, work.Total), ids...)
	}

	// 3. Minimum cut.
	work.Path = nil
	side := net.reachable(source)
	var sinkSide []string
	for _, n := range work.Graph.Nodes {
		if side[n.ID] {
			work.SourceSide = append(work.SourceSide, n.ID)
			work.Graph.SetNodeStatus(n.ID, graph.NodeVisited)
		} else {
			sinkSide = append(sinkSide, n.ID)
		}
	}
	var cut []string
	var capacity int64
	for _, e := range work.Graph.Edges {
		if crosses(work.Graph.Directed, e, side) {
			cut = append(cut, e.ID)
			capacity += e.Weight
		}
	}
	crossing := strings.Join(cut, ", ")
	if crossing == "" {
		crossing = "no edges"
	}
	rec.Record(trace.PhaseCut, work,
		fmt.Sprintf("Min cut %s | %s: %s (capacity %d)",
			strings.Join(work.SourceSide, " "), strings.Join(sinkSide, " "), crossing, capacity),
		cut...)
	if capacity != work.Total {
		panic(errors.AssertionFailedf("flow: cut capacity %d != flow %d", capacity, work.Total))
	}

	// 4. Done.
	rec.Record(trace.PhaseDone, work,
		fmt.Sprintf("Maximum flow %d after %d augmenting paths", work.Total, len(res.Paths)), source, sink)

	res.Value = work.Total
	res.Flow = make(map[string]int64, len(work.Flow))
	for i, e := range work.Graph.Edges {
		res.Flow[e.ID] = work.Flow[i]
	}
	res.SourceSide = append([]string(nil), work.SourceSide...)
	res.Cut = cut

	return rec.MustFinish(), res, nil
}

// describeLevels lists the nodes of a level graph in node order.
func describeLevels(g *graph.Graph, levels []int, sink string) (string, []string) {
	var parts, ids []string
	for i, n := range g.Nodes {
		if levels[i] >= 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", n.ID, levels[i]))
			ids = append(ids, n.ID)
		}
	}
	desc := "Level graph " + strings.Join(parts, " ")
	if levels[g.NodeIndex(sink)] < 0 {
		desc += ", sink unreachable"
	}

	return desc, ids
}

// crosses reports whether e leaves the source side. Undirected edges count
// when exactly one endpoint is on it.
func crosses(directed bool, e graph.Edge, side map[string]bool) bool {
	if e.Source == e.Target {
		return false
	}
	if directed {
		return side[e.Source] && !side[e.Target]
	}

	return side[e.Source] != side[e.Target]
}

// refresh derives every edge status from its flow.
func refresh(s Snapshot) {
	for i, e := range s.Graph.Edges {
		f := s.Flow[i]
		if f < 0 {
			f = -f
		}
		switch {
		case f == 0:
			s.Graph.SetEdgeStatus(i, graph.EdgeDefault)
		case f == e.Weight:
			s.Graph.SetEdgeStatus(i, graph.EdgeSelected)
		default:
			s.Graph.SetEdgeStatus(i, graph.EdgeCandidate)
		}
	}
}

// prepare validates the network and terminals and applies opts.
func prepare(g *graph.Graph, source, sink string, opts []Option) (Options, error) {
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
		return o, fmt.Errorf("flow: %w: %w", ErrInvalidGraph, err)
	}
	if len(g.Nodes) > MaxNodes {
		return o, errors.Wrapf(ErrTooLarge, "%d nodes > %d", len(g.Nodes), MaxNodes)
	}
	if source == "" || g.NodeIndex(source) < 0 {
		return o, errors.Wrapf(ErrSourceNotFound, "%q", source)
	}
	if sink == "" || g.NodeIndex(sink) < 0 {
		return o, errors.Wrapf(ErrSinkNotFound, "%q", sink)
	}
	if source == sink {
		return o, errors.Wrapf(ErrSameTerminals, "%q", source)
	}
	for _, e := range g.Edges {
		if e.Weight < 0 {
			return o, EdgeError{Edge: e.ID, From: e.Source, To: e.Target, Cap: e.Weight}
		}
		if e.Weight > MaxCapacity {
			return o, errors.Wrapf(ErrCapacityRange, "edge %s capacity %d > %d", e.ID, e.Weight, MaxCapacity)
		}
	}

	return o, nil
}
