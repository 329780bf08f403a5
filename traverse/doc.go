// Package traverse records graph traversals as replayable traces:
// breadth-first search, depth-first search and Dijkstra's single-source
// shortest paths.
//
// All three run over a graph.Graph and honour its Directed flag: directed
// edges are followed Source→Target only, undirected edges both ways.
//
// Determinism:
//   - Neighbours are examined in edge insertion order.
//   - Dijkstra breaks distance ties by push order, so equal-distance nodes
//     settle first-come first-served.
//
// Complexity:
//
//   - BFS, DFS: Time O(V + E), Memory O(V).
//   - Dijkstra: Time O((V + E) log V) with a lazy decrease-key heap,
//     Memory O(V + E).
//   - Every recorded step adds an O(V + E) snapshot clone.
package traverse
