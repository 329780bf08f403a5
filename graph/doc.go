// Package graph defines the Graph working model shared by the MST,
// shortest-path and topological-sort engines.
//
// A Graph is a plain value: nodes and edges live in slices, edges refer to
// their endpoints by node id, and there are no pointers between elements.
// Clone therefore yields a fully independent copy, which is what trace
// snapshots require.
//
// Each node and edge carries a status tag (NodeStatus, EdgeStatus). Engines
// move those tags as they run; renderers read them from snapshots.
//
// Edge ids are derived from their endpoints: "A-B" for undirected edges and
// "A->B" for directed ones, with a "#n" suffix for parallel edges.
package graph
