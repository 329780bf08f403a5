// SPDX-License-Identifier: MIT

package apsp_test

import (
	"fmt"

	"github.com/katalvlaran/algotrace/apsp"
	"github.com/katalvlaran/algotrace/graph"
)

// ExampleFloydWarshallGraph prints the final matrix of a three-node chain.
func ExampleFloydWarshallGraph() {
	g := graph.New(graph.WithDirected())
	_, _ = g.AddEdge("a", "b", 2)
	_, _ = g.AddEdge("b", "c", 3)
	_, _ = g.AddEdge("a", "c", 9)

	_, res, err := apsp.FloydWarshallGraph(g, apsp.WithRelaxOnly())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Matrix)
	fmt.Println("relaxations:", res.Relaxations)
	// Output:
	//       a   b   c
	//   a   0   2   5
	//   b   ∞   0   3
	//   c   ∞   ∞   0
	// relaxations: 1
}
