// Package unionfind provides a disjoint-set (union-find) structure over string
// identifiers, with full path compression and union by rank.
//
// What & Why
//
//   - Kruskal's MST needs to ask "are u and v already connected?" for every edge
//     and to merge two components when they are not. With both heuristics a
//     sequence of m operations on n elements costs O(m·α(n)), α being the
//     inverse Ackermann function.
//
// Guarantees
//
//   - Find(x) terminates and is idempotent; after it returns, every node on
//     the walked path points directly at the root.
//   - Union(x, y) returns true only when x and y were in different sets;
//     afterwards Find(x) == Find(y).
//   - Rank never decreases. Path compression changes lookup cost only, never
//     the represented partition.
//
// Determinism
//
//   - When two roots of equal rank are merged, the root of the first argument
//     wins. Groups() reports the partition in sorted order.
package unionfind
