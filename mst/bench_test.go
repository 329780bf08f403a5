package mst_test

import (
	"testing"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/mst"
)

// BenchmarkKruskal records a full trace over a random 40-node graph.
func BenchmarkKruskal(b *testing.B) {
	g, err := graph.Random(40, 0.3, 1, 50)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mst.Kruskal(g)
	}
}

// BenchmarkPrim is BenchmarkKruskal from root "v0".
func BenchmarkPrim(b *testing.B) {
	g, err := graph.Random(40, 0.3, 1, 50)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mst.Prim(g, "v0")
	}
}
