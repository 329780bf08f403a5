// SPDX-License-Identifier: MIT
// Package apsp records all-pairs shortest paths (Floyd–Warshall) as a
// replayable trace over a distance Matrix.
//
// Purpose:
//   - Show every (k, i, j) probe of the classic triple loop, marking the cells
//     that relax and the ones that do not.
//   - Keep a next-hop matrix so any shortest path can be reconstructed.
//
// Contract:
//   - Loop order is fixed: intermediate k, then source i, then destination j.
//   - Inf marks "no path". A probe only computes d[i][k] + d[k][j] when both
//     operands are finite; relaxation requires a strict improvement.
//   - Edge weights are bounded by MaxWeight so no finite sum can overflow and
//     no finite distance can collide with Inf.
//
// Complexity: O(n³) probes; each recorded step clones the n×n matrix.
package apsp
