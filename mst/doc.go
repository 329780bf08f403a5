// Package mst records step-by-step traces of Kruskal's and Prim's minimum
// spanning tree algorithms over a graph.Graph.
//
// What & Why
//
//   - Given an undirected, weighted graph G = (V, E), a minimum spanning tree is
//     a subset T ⊆ E that connects every vertex with the least total weight.
//   - Both generators run to completion before returning and capture the graph,
//     edge statuses and running weight at each step in a Snapshot.
//
// Algorithms Provided
//
//   - Kruskal(g, opts...)
//
//   - Strategy: stable-sort edges ascending by weight (equal weights keep input
//     order), then for each edge ask the disjoint set to Union its endpoints.
//     A true result selects the edge; false rejects it as cycle-forming.
//     Stops at |V|-1 selected edges or when edges run out.
//
//   - Complexity: O(E log E + α(V)·E) time, plus O(V+E) per recorded step.
//
//   - Prim(g, root, opts...)
//
//   - Strategy: grow a tree from root. The candidate frontier holds every edge
//     with exactly one visited endpoint. Each round extracts the lightest
//     candidate (earliest inserted on ties), visits its far endpoint, rejects
//     edges that became internal and marks new cross edges as candidates.
//     Stops when every node is visited or the frontier is empty.
//
//   - Complexity: O(V·E) time; the frontier is rescanned each round so the
//     snapshot always reflects it exactly.
//
// Terminal Outcomes
//
//	A disconnected graph is not an error: the final step is PhaseDone and
//	Result.Spanning is false. Only malformed input fails:
//
//	- ErrInvalidGraph : nil graph, directed graph, or inconsistent node/edge ids.
//	- ErrEmptyGraph   : no nodes.
//	- ErrEmptyRoot    : Prim called with root == "".
//	- ErrRootNotFound : Prim root is not a node of the graph.
package mst
