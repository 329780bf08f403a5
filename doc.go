// Package algotrace records classic algorithms as replayable, step-by-step
// traces: every meaningful state change becomes an immutable Step holding
// a private snapshot of the working model, a phase, a one-line description
// and the ids worth highlighting.
//
// 🚀 What is algotrace?
//
//	A deterministic trace-and-playback engine that brings together:
//		• Recording: trace.Recorder, trace.Trace and the closed Phase enum
//		• Playback: a clock-driven controller with play, pause, seek and speed
//		• Trees: BST build, insert and search
//		• Divide & conquer: merge sort and quick sort recursion trees
//		• Graphs: Kruskal, Prim, Floyd–Warshall, Kahn, BFS, DFS, Dijkstra
//		• Flow: Edmonds–Karp, Ford–Fulkerson and Dinic with the minimum cut
//		• Dynamic programming: Dynamic Time Warping table fill and traceback
//		• Backtracking: N-Queens and maze solving
//		• Scans: two pointers, sliding window, binary search, hashing, heaps
//
// ✨ Why algotrace?
//
//   - Deterministic: identical params always yield identical traces
//   - Isolated: later steps never leak into earlier snapshots
//   - Typed: each engine exposes its own Snapshot; trace.Erase feeds the
//     shared catalog and controller
//
// Packages:
//
//	trace/          Step, Trace, Recorder and Phase
//	playback/       Controller, Scheduler and derived playback state
//	catalog/        name → generator registry with typed, validated params
//	graph/          the shared Graph model, edge-list parser and sampler
//	unionfind/      disjoint sets with path compression and union by rank
//	apsp/ bst/ backtrack/ divide/ dtw/ flow/ mst/ scan/ topo/ traverse/
//	                one engine family each
//	cmd/algotrace   the command-line front end
//
// Quick start:
//
//	tr, res, err := traverse.Dijkstra(graph.Demo(), "A")
//	for _, s := range tr.Steps() {
//		fmt.Println(s.Phase, s.Description)
//	}
//
//	go install github.com/katalvlaran/algotrace/cmd/algotrace@latest
package algotrace
