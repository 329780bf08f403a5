// Package backtrack records choose / explore / un-choose searches as
// replayable traces: N-Queens placement and depth-first maze solving.
//
// Failed attempts are recorded too (PhaseConflict, PhaseDeadEnd), and every
// backtrack emits an explicit PhaseRemove or PhaseUnvisit step. NQueens can
// be run WithoutUnchoose to show what happens when that step is skipped:
// abandoned queens stay on the board and the search starves.
package backtrack
