package mst_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/mst"
)

// ExampleKruskal prints the selection order on the teaching graph.
func ExampleKruskal() {
	tr, res, err := mst.Kruskal(graph.Demo(), mst.WithSkipConsider())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range tr.Steps() {
		fmt.Printf("%-9s %s\n", s.Phase, s.Description)
	}
	fmt.Println("total:", res.Total)
	// Output:
	// init      Start Kruskal on 6 nodes and 9 edges; every node is its own component
	// candidate Sort edges by weight: A-C(2) D-E(2) B-D(3) E-F(3) A-B(4) C-E(4) A-D(5) B-C(6) D-F(6)
	// select    Select A-C: A and C were in different components; total weight 2
	// select    Select D-E: D and E were in different components; total weight 4
	// select    Select B-D: B and D were in different components; total weight 7
	// select    Select E-F: E and F were in different components; total weight 10
	// select    Select A-B: A and B were in different components; total weight 14
	// done      Minimum spanning tree complete: 5 edges, total weight 14
	// total: 14
}

// ExamplePrim shows the selected edges when growing from A.
func ExamplePrim() {
	_, res, err := mst.Prim(graph.Demo(), "A")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	parts := make([]string, 0, len(res.Edges))
	for _, e := range res.Edges {
		parts = append(parts, fmt.Sprintf("%s(%d)", e.ID, e.Weight))
	}
	fmt.Println(strings.Join(parts, " "))
	fmt.Println("total:", res.Total)
	// Output:
	// A-C(2) A-B(4) B-D(3) D-E(2) E-F(3)
	// total: 14
}
