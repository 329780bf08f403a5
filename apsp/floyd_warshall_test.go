// SPDX-License-Identifier: MIT

package apsp_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algotrace/apsp"
	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// clrs builds the classic CLRS 5-node directed example (negative edges, no
// negative cycle).
func clrs(t *testing.T) *apsp.Matrix {
	t.Helper()
	m, err := apsp.NewMatrix("1", "2", "3", "4", "5")
	require.NoError(t, err)
	for _, e := range []struct {
		u, v string
		w    int64
	}{
		{"1", "2", 3}, {"1", "3", 8}, {"1", "5", -4},
		{"2", "4", 1}, {"2", "5", 7},
		{"3", "2", 4},
		{"4", "1", 2}, {"4", "3", -5},
		{"5", "4", 6},
	} {
		require.NoError(t, m.SetEdge(e.u, e.v, e.w))
	}

	return m
}

// bellmanFord is the reference: relax every edge |V| times from each source.
func bellmanFord(m *apsp.Matrix) [][]int64 {
	n := m.Order()
	out := make([][]int64, n)
	for s := 0; s < n; s++ {
		dist := make([]int64, n)
		for i := range dist {
			dist[i] = apsp.Inf
		}
		dist[s] = 0
		for round := 0; round < n; round++ {
			for u := 0; u < n; u++ {
				for v := 0; v < n; v++ {
					w := m.Dist[u][v]
					if u == v || w == apsp.Inf || dist[u] == apsp.Inf {
						continue
					}
					if dist[u]+w < dist[v] {
						dist[v] = dist[u] + w
					}
				}
			}
		}
		out[s] = dist
	}

	return out
}

// randomDirected builds a seeded directed graph with non-negative weights.
func randomDirected(seed int64, n, edges int) *graph.Graph {
	r := rand.New(rand.NewSource(seed))
	g := graph.New(graph.WithDirected())
	for i := 0; i < n; i++ {
		_ = g.AddNode(fmt.Sprintf("N%d", i))
	}
	for k := 0; k < edges; k++ {
		u, v := r.Intn(n), r.Intn(n)
		_, _ = g.AddEdge(fmt.Sprintf("N%d", u), fmt.Sprintf("N%d", v), int64(r.Intn(20)))
	}

	return g
}

// TestFloydWarshall_CLRS checks the textbook answer.
func TestFloydWarshall_CLRS(t *testing.T) {
	tr, res, err := apsp.FloydWarshall(clrs(t))
	require.NoError(t, err)
	exp := [][]int64{
		{0, 1, -3, 2, -4},
		{3, 0, -4, 1, -1},
		{7, 4, 0, 5, 3},
		{2, -1, -5, 0, -2},
		{8, 5, 1, 6, 0},
	}
	assert.Equal(t, exp, res.Matrix.Dist)
	assert.False(t, res.NegativeCycle)
	assert.Equal(t, []string{"1", "5", "4", "3", "2"}, res.Matrix.Path("1", "2"))

	// init + n markers + n³ probes + done
	assert.Equal(t, 1+5+125+1, tr.Len())
	assert.Equal(t, res.Relaxations, tr.Count(trace.PhaseRelax))
	assert.Equal(t, trace.PhaseDone, tr.Last().Phase)
}

// TestFloydWarshall_Convergence checks the triangle inequality and the fixed point
// on random graphs, and compares against Bellman–Ford.
func TestFloydWarshall_Convergence(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := randomDirected(seed, 7, 16)
		m, err := apsp.FromGraph(g)
		require.NoError(t, err)
		want := bellmanFord(m)

		_, res, err := apsp.FloydWarshall(m, apsp.WithRelaxOnly())
		require.NoError(t, err)
		d := res.Matrix.Dist
		n := res.Matrix.Order()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				for k := 0; k < n; k++ {
					if d[i][k] == apsp.Inf || d[k][j] == apsp.Inf {
						continue
					}
					require.LessOrEqual(t, d[i][j], d[i][k]+d[k][j], "seed %d: d[%d][%d] via %d", seed, i, j, k)
				}
			}
		}
		assert.Equal(t, want, d, "seed %d", seed)

		_, again, err := apsp.FloydWarshall(res.Matrix)
		require.NoError(t, err)
		assert.Zero(t, again.Relaxations, "seed %d: second sweep must be a fixed point", seed)
		assert.Equal(t, d, again.Matrix.Dist)
	}
}

// TestFloydWarshall_DemoGraph checks a few known distances on the teaching graph.
func TestFloydWarshall_DemoGraph(t *testing.T) {
	_, res, err := apsp.FloydWarshallGraph(graph.Demo())
	require.NoError(t, err)
	m := res.Matrix
	at := func(u, v string) int64 { return m.Dist[m.Index(u)][m.Index(v)] }
	assert.Equal(t, int64(6), at("A", "E"))
	assert.Equal(t, int64(9), at("A", "F"))
	assert.Equal(t, int64(8), at("B", "F"))
	assert.Equal(t, at("F", "B"), at("B", "F"))
	assert.Equal(t, []string{"A", "C", "E", "F"}, m.Path("A", "F"))
}

// TestFloydWarshall_Unreachable keeps Inf and never adds to it.
func TestFloydWarshall_Unreachable(t *testing.T) {
	g := graph.New(graph.WithDirected())
	_, _ = g.AddEdge("a", "b", 2)
	_ = g.AddNode("c")
	_, res, err := apsp.FloydWarshallGraph(g)
	require.NoError(t, err)
	m := res.Matrix
	assert.Equal(t, apsp.Inf, m.Dist[m.Index("b")][m.Index("a")])
	assert.Equal(t, apsp.Inf, m.Dist[m.Index("a")][m.Index("c")])
	assert.Nil(t, m.Path("b", "a"))
	assert.Equal(t, []string{"c"}, m.Path("c", "c"))
	assert.Contains(t, m.String(), "∞")
}

// TestFloydWarshall_NegativeCycle flags the cycle instead of failing.
func TestFloydWarshall_NegativeCycle(t *testing.T) {
	g := graph.New(graph.WithDirected())
	_, _ = g.AddEdge("x", "y", 1)
	_, _ = g.AddEdge("y", "x", -3)
	tr, res, err := apsp.FloydWarshallGraph(g)
	require.NoError(t, err)
	assert.True(t, res.NegativeCycle)
	assert.Contains(t, tr.Last().Description, "negative cycle")
}

// TestFloydWarshall_Validation covers malformed input.
func TestFloydWarshall_Validation(t *testing.T) {
	_, _, err := apsp.FloydWarshall(nil)
	assert.ErrorIs(t, err, apsp.ErrNilMatrix)

	m, _ := apsp.NewMatrix("a", "b")
	m.Dist[1] = m.Dist[1][:1]
	_, _, err = apsp.FloydWarshall(m)
	assert.ErrorIs(t, err, apsp.ErrNonSquare)

	m, _ = apsp.NewMatrix("a", "b")
	m.Dist[0][0] = 3
	_, _, err = apsp.FloydWarshall(m)
	assert.ErrorIs(t, err, apsp.ErrNonZeroDiagonal)

	_, err = apsp.NewMatrix("a", "a")
	assert.ErrorIs(t, err, apsp.ErrBadIDs)

	g := graph.New()
	_, _ = g.AddEdge("a", "b", apsp.MaxWeight+1)
	_, _, err = apsp.FloydWarshallGraph(g)
	assert.ErrorIs(t, err, apsp.ErrWeightRange)

	_, _, err = apsp.FloydWarshallGraph(nil)
	assert.ErrorIs(t, err, apsp.ErrInvalidGraph)

	dangling := &graph.Graph{
		Directed: true,
		Nodes:    []graph.Node{{ID: "a"}},
		Edges:    []graph.Edge{{ID: "a->q", Source: "a", Target: "q", Weight: 1}},
	}
	_, _, err = apsp.FloydWarshallGraph(dangling)
	assert.True(t, errors.Is(err, apsp.ErrInvalidGraph), "%v", err)
	assert.True(t, errors.Is(err, graph.ErrUnknownNode), "%v", err)
}

// TestFloydWarshall_NegativeSaturation drives every entry of an all-negative
// complete digraph to -Inf without wrapping.
func TestFloydWarshall_NegativeSaturation(t *testing.T) {
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%d", i)
	}
	m, err := apsp.NewMatrix(ids...)
	require.NoError(t, err)
	for _, u := range ids {
		for _, v := range ids {
			require.NoError(t, m.SetEdge(u, v, -apsp.MaxWeight))
		}
	}

	_, res, err := apsp.FloydWarshall(m, apsp.WithRelaxOnly())
	require.NoError(t, err)
	assert.True(t, res.NegativeCycle)
	for i, row := range res.Matrix.Dist {
		for j, d := range row {
			require.Equal(t, -apsp.Inf, d, "d[%d][%d]", i, j)
		}
	}
	assert.Equal(t, "-∞", apsp.FormatDistance(res.Matrix.Dist[0][1]))
}

// TestFloydWarshall_SizeLimit accepts MaxNodes nodes and rejects one more.
func TestFloydWarshall_SizeLimit(t *testing.T) {
	g, err := graph.Random(apsp.MaxNodes, 0.3, 5, 9, graph.WithDirected())
	require.NoError(t, err)
	tr, _, err := apsp.FloydWarshallGraph(g, apsp.WithRelaxOnly())
	require.NoError(t, err)
	assert.Equal(t, trace.PhaseDone, tr.Last().Phase)

	g, err = graph.Random(apsp.MaxNodes+1, 0.3, 5, 9, graph.WithDirected())
	require.NoError(t, err)
	_, _, err = apsp.FloydWarshallGraph(g)
	assert.ErrorIs(t, err, apsp.ErrTooLarge)
}

// TestFloydWarshall_StepsAndIsolation checks probe bookkeeping, determinism and
// snapshot isolation.
func TestFloydWarshall_StepsAndIsolation(t *testing.T) {
	m := clrs(t)
	a, _, err := apsp.FloydWarshall(m)
	require.NoError(t, err)
	b, _, err := apsp.FloydWarshall(m)
	require.NoError(t, err)
	if diff := pretty.Diff(a.Steps(), b.Steps()); len(diff) > 0 {
		t.Fatalf("traces differ:\n%s", pretty.Sprint(diff))
	}

	init, _ := a.At(0)
	assert.Equal(t, int64(3), init.Snapshot.Matrix.Dist[0][1])
	m.Dist[0][1] = 99
	assert.Equal(t, int64(3), init.Snapshot.Matrix.Dist[0][1])

	// Probes appear in k, i, j order.
	lastK, lastI, lastJ := -1, 0, 0
	for _, s := range a.Steps() {
		if s.Phase != trace.PhaseRelax && s.Phase != trace.PhaseNoop {
			continue
		}
		cur := [3]int{s.Snapshot.K, s.Snapshot.I, s.Snapshot.J}
		prev := [3]int{lastK, lastI, lastJ}
		assert.True(t, less(prev, cur), "probe %v after %v", cur, prev)
		lastK, lastI, lastJ = cur[0], cur[1], cur[2]
		if s.Phase == trace.PhaseRelax {
			assert.Len(t, s.Highlight, 3)
		}
	}
}

func less(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
