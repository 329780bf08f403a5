package mst_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/mst"
	"github.com/katalvlaran/algotrace/trace"
	"github.com/katalvlaran/algotrace/unionfind"
)

// buildTriangle constructs A-B (1), B-C (2), A-C (3); its MST is {A-B, B-C}.
func buildTriangle() *graph.Graph {
	g := graph.New()
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 2)
	_, _ = g.AddEdge("A", "C", 3)

	return g
}

// buildRandomGraph creates a connected graph: a chain for connectivity, then
// extra random edges. Seeded for reproducibility.
func buildRandomGraph(seed int64, n, extra int) *graph.Graph {
	r := rand.New(rand.NewSource(seed))
	g := graph.New()
	for i := 0; i < n; i++ {
		_ = g.AddNode(fmt.Sprintf("V%d", i))
	}
	for i := 1; i < n; i++ {
		_, _ = g.AddEdge(fmt.Sprintf("V%d", i-1), fmt.Sprintf("V%d", i), int64(1+r.Intn(10)))
	}
	for k := 0; k < extra; k++ {
		u, v := r.Intn(n), r.Intn(n)
		if u == v {
			continue
		}
		_, _ = g.AddEdge(fmt.Sprintf("V%d", u), fmt.Sprintf("V%d", v), int64(1+r.Intn(10)))
	}

	return g
}

// bruteForceMST enumerates every (|V|-1)-edge subset and returns the least
// weight of those that span the graph.
func bruteForceMST(g *graph.Graph) int64 {
	n, m := len(g.Nodes), len(g.Edges)
	best := int64(-1)
	var rec func(start int, picked []int)
	rec = func(start int, picked []int) {
		if len(picked) == n-1 {
			ds := unionfind.New(g.NodeIDs()...)
			var w int64
			for _, i := range picked {
				if !ds.Union(g.Edges[i].Source, g.Edges[i].Target) {
					return
				}
				w += g.Edges[i].Weight
			}
			if best < 0 || w < best {
				best = w
			}
			return
		}
		for i := start; i < m; i++ {
			rec(i+1, append(picked, i))
		}
	}
	rec(0, nil)

	return best
}

// TestDemoGraph_BothAlgorithms checks the teaching graph: five edges, weight 14.
func TestDemoGraph_BothAlgorithms(t *testing.T) {
	g := graph.Demo()

	trK, resK, err := mst.Kruskal(g)
	require.NoError(t, err)
	assert.True(t, resK.Spanning)
	assert.Len(t, resK.Edges, 5)
	assert.Equal(t, int64(14), resK.Total)
	assert.Equal(t, []string{"A-C", "D-E", "B-D", "E-F", "A-B"}, trK.Last().Snapshot.Selected)

	trP, resP, err := mst.Prim(g, "A")
	require.NoError(t, err)
	assert.True(t, resP.Spanning)
	assert.Len(t, resP.Edges, 5)
	assert.Equal(t, int64(14), resP.Total)
	assert.Equal(t, []string{"A-C", "A-B", "B-D", "D-E", "E-F"}, trP.Last().Snapshot.Selected)
	assert.Equal(t, []string{"A", "C", "B", "D", "E", "F"}, trP.Last().Snapshot.Visited)

	assert.Equal(t, bruteForceMST(g), resK.Total)
	assert.Equal(t, trace.PhaseDone, trK.Last().Phase)
	assert.Equal(t, trace.PhaseDone, trP.Last().Phase)
}

// TestKruskal_RejectsCycleEdge verifies the reject step on the triangle.
func TestKruskal_RejectsCycleEdge(t *testing.T) {
	tr, res, err := mst.Kruskal(buildTriangle())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 2, tr.Count(trace.PhaseSelect))
	// |V|-1 edges reached before A-C is examined.
	assert.Equal(t, 0, tr.Count(trace.PhaseReject))

	g := buildTriangle()
	_, _ = g.AddEdge("C", "D", 9)
	tr, res, err = mst.Kruskal(g)
	require.NoError(t, err)
	assert.Equal(t, int64(12), res.Total)
	require.Equal(t, 1, tr.Count(trace.PhaseReject))
	for _, s := range tr.Steps() {
		if s.Phase == trace.PhaseReject {
			assert.Equal(t, "A-C", s.Highlight[0])
			idx := s.Snapshot.Graph.EdgeIndex("A-C")
			assert.Equal(t, graph.EdgeRejected, s.Snapshot.Graph.Edges[idx].Status)
		}
	}
}

// TestPrim_TieBreakByInsertionOrder checks that equal weights resolve to the
// earlier edge.
func TestPrim_TieBreakByInsertionOrder(t *testing.T) {
	g := graph.New()
	_, _ = g.AddEdge("R", "X", 5)
	_, _ = g.AddEdge("R", "Y", 5)
	_, _ = g.AddEdge("X", "Y", 5)

	_, res, err := mst.Prim(g, "R")
	require.NoError(t, err)
	require.Len(t, res.Edges, 2)
	assert.Equal(t, "R-X", res.Edges[0].ID)
	assert.Equal(t, "R-Y", res.Edges[1].ID)
}

// TestPrim_FrontierRejection checks that edges turning internal are rejected.
func TestPrim_FrontierRejection(t *testing.T) {
	tr, _, err := mst.Prim(buildTriangle(), "A")
	require.NoError(t, err)
	last := tr.Last().Snapshot.Graph
	assert.Equal(t, graph.EdgeRejected, last.Edges[last.EdgeIndex("A-C")].Status)
	assert.Equal(t, 1, tr.Count(trace.PhaseReject))
}

// TestDisconnected_IsTerminalNotError covers the forest case for both algorithms.
func TestDisconnected_IsTerminalNotError(t *testing.T) {
	g := graph.New()
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("C", "D", 2)

	trK, resK, err := mst.Kruskal(g)
	require.NoError(t, err)
	assert.False(t, resK.Spanning)
	assert.Equal(t, int64(3), resK.Total)
	assert.Equal(t, trace.PhaseDone, trK.Last().Phase)
	assert.Len(t, trK.Last().Snapshot.Components, 2)

	trP, resP, err := mst.Prim(g, "A")
	require.NoError(t, err)
	assert.False(t, resP.Spanning)
	assert.Equal(t, int64(1), resP.Total)
	assert.Contains(t, trP.Last().Description, "disconnected")
}

// TestValidation covers malformed input.
func TestValidation(t *testing.T) {
	_, _, err := mst.Kruskal(nil)
	assert.ErrorIs(t, err, mst.ErrInvalidGraph)

	_, _, err = mst.Kruskal(graph.New(graph.WithDirected()))
	assert.ErrorIs(t, err, mst.ErrInvalidGraph)

	_, _, err = mst.Kruskal(graph.New())
	assert.ErrorIs(t, err, mst.ErrEmptyGraph)

	bad := &graph.Graph{
		Nodes: []graph.Node{{ID: "A"}},
		Edges: []graph.Edge{{ID: "A-Q", Source: "A", Target: "Q", Weight: 1}},
	}
	_, _, err = mst.Prim(bad, "A")
	assert.ErrorIs(t, err, mst.ErrInvalidGraph)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)

	_, _, err = mst.Prim(graph.Demo(), "")
	assert.ErrorIs(t, err, mst.ErrEmptyRoot)

	_, _, err = mst.Prim(graph.Demo(), "Z")
	assert.ErrorIs(t, err, mst.ErrRootNotFound)

	_, _, err = mst.Compute(graph.Demo(), mst.WithMethod("boruvka"))
	assert.ErrorIs(t, err, mst.ErrInvalidGraph)
}

// TestSingleNode yields an empty spanning tree.
func TestSingleNode(t *testing.T) {
	g := graph.New()
	_ = g.AddNode("X")
	_, res, err := mst.Kruskal(g)
	require.NoError(t, err)
	assert.True(t, res.Spanning)
	assert.Empty(t, res.Edges)

	tr, res, err := mst.Prim(g, "X")
	require.NoError(t, err)
	assert.True(t, res.Spanning)
	assert.Equal(t, 2, tr.Len())
}

// TestDeterminism runs each generator twice and diffs the traces.
func TestDeterminism(t *testing.T) {
	g := buildRandomGraph(3, 8, 12)
	for _, method := range []string{mst.MethodKruskal, mst.MethodPrim} {
		a, _, err := mst.Compute(g, mst.WithMethod(method), mst.WithRoot("V0"))
		require.NoError(t, err)
		b, _, err := mst.Compute(g, mst.WithMethod(method), mst.WithRoot("V0"))
		require.NoError(t, err)
		if diff := pretty.Diff(a.Steps(), b.Steps()); len(diff) > 0 {
			t.Fatalf("%s: traces differ:\n%s", method, pretty.Sprint(diff))
		}
	}
}

// TestSnapshotIsolation mutates the input graph and a returned snapshot and
// checks that no other step changes.
func TestSnapshotIsolation(t *testing.T) {
	g := graph.Demo()
	tr, _, err := mst.Kruskal(g)
	require.NoError(t, err)

	before := tr.Last().Snapshot.Clone()
	g.Edges[0].Weight = 1000
	g.SetNodeStatus("A", graph.NodeDone)
	first, _ := tr.At(0)
	first.Snapshot.Graph.Edges[0].Status = graph.EdgeRejected
	first.Snapshot.Selected = append(first.Snapshot.Selected, "bogus")

	assert.Equal(t, before, tr.Last().Snapshot)
	second, _ := tr.At(1)
	assert.Equal(t, graph.EdgeCandidate, second.Snapshot.Graph.Edges[0].Status)
	assert.Equal(t, int64(4), second.Snapshot.Graph.Edges[0].Weight)
}

// TestRandomGraphs_MatchBruteForce compares both generators against exhaustive
// search on small graphs.
func TestRandomGraphs_MatchBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		g := buildRandomGraph(seed, 6, 5)
		want := bruteForceMST(g)

		_, resK, err := mst.Kruskal(g, mst.WithSkipConsider())
		require.NoError(t, err)
		_, resP, err := mst.Prim(g, "V3")
		require.NoError(t, err)

		assert.Equal(t, want, resK.Total, "seed %d kruskal", seed)
		assert.Equal(t, want, resP.Total, "seed %d prim", seed)
		assert.Len(t, resK.Edges, len(g.Nodes)-1)
		assert.Len(t, resP.Edges, len(g.Nodes)-1)
	}
}
