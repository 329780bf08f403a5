// Package topo records Kahn's topological sort as a replayable trace and parses
// the free-form dependency lists users type in.
//
// Sort computes a linear ordering of nodes such that for every directed edge
// u→v, u appears before v. If the graph contains a cycle the queue drains
// before every node is emitted; that is reported through Result.HasCycle and a
// final PhaseCycle step, never as an error.
//
// Determinism:
//   - The queue is FIFO, seeded with in-degree-0 nodes in node insertion order.
//   - Out-edges are relaxed in edge insertion order.
//
// Complexity:
//
//   - Time:   O(V + E) for the algorithm, plus O(V + E) per recorded step.
//   - Memory: O(V) for in-degrees and the queue.
package topo
