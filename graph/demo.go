package graph

// Demo returns the six-node undirected teaching graph used across the MST and
// shortest-path chapters:
//
//	A-B 4, A-C 2, A-D 5, B-C 6, B-D 3, C-E 4, D-E 2, D-F 6, E-F 3
//
// Its minimum spanning tree weighs 14: A-C, D-E, B-D, E-F and one of A-B or C-E.
func Demo() *Graph {
	g := New()
	for _, id := range []string{"A", "B", "C", "D", "E", "F"} {
		_ = g.AddNode(id)
	}
	for _, e := range []struct {
		u, v string
		w    int64
	}{
		{"A", "B", 4}, {"A", "C", 2}, {"A", "D", 5},
		{"B", "C", 6}, {"B", "D", 3}, {"C", "E", 4},
		{"D", "E", 2}, {"D", "F", 6}, {"E", "F", 3},
	} {
		_, _ = g.AddEdge(e.u, e.v, e.w)
	}

	return g
}
