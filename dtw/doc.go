// Package dtw records Dynamic Time Warping as a dynamic-programming table
// fill followed by a traceback of the optimal warping path.
//
// The table D has (n+1)×(m+1) cells for sequences a (length n) and b
// (length m):
//
//	D[0][0] = 0, D[i][0] = D[0][j] = ∞
//	D[i][j] = |a[i-1] - b[j-1]| + min(D[i-1][j-1], D[i-1][j] + p, D[i][j-1] + p)
//
// where p is the slope penalty for a non-diagonal move. With a
// Sakoe–Chiba window w, cells with |i-j| > w stay ∞ and are skipped.
//
// Ties prefer the diagonal, then up, then left, so the path is unique.
//
// Values are ints and costs int64, which keeps every trace exact and
// comparable. ∞ is never used as an addend.
//
// Complexity: Time O(n·m), Memory O(n·m); every recorded step adds an
// O(n·m) table clone.
package dtw
