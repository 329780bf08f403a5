// Package flow records maximum-flow computations as replayable traces.
//
// Three augmenting-path methods share one loop and differ only in how they
// search the residual network:
//
//   - Edmonds–Karp: breadth-first search, so every path has the fewest
//     edges. At most O(V·E) augmentations.
//   - Ford–Fulkerson: depth-first search, taking the first path found.
//     Bounded by the flow value, so a run may need many augmentations.
//   - Dinic: BFS assigns levels, then depth-first searches push along arcs
//     that climb exactly one level until the level graph is blocked. Each
//     level graph is recorded as a level step.
//
// Networks are graph.Graph values whose edge weights are capacities.
// Directed edges carry flow Source→Target only; undirected edges carry it
// either way up to their capacity. Each edge keeps its own flow, so
// parallel edges are never merged and self-loops never carry flow.
//
// Each augmentation records a consider step with the path and its
// bottleneck, then an augment step with the updated flows. After the last
// path the minimum cut is recorded: the nodes still reachable from the
// source in the residual network, and the edges leaving them. Its capacity
// always equals the flow value.
//
// Determinism: searches examine edges in insertion order.
//
// Complexity:
//
//   - Edmonds–Karp: Time O(V·E²), Memory O(V + E).
//   - Ford–Fulkerson: Time O(E·F) for flow value F, Memory O(V + E).
//   - Dinic: Time O(V²·E), Memory O(V + E).
//   - Every recorded step adds an O(V + E) snapshot clone.
package flow
