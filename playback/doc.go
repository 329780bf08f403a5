// Package playback drives a recorded trace: stepping forward and back,
// seeking, and auto-advancing on a timer.
//
// A Controller owns exactly one trace, its current index and the derived
// state folded from steps 0..index. Its lifecycle is
//
//	Idle → Ready → Running ⇄ Paused → Complete
//
// Timers come from a Scheduler. The controller holds at most one live Token
// and cancels it before issuing another; each token is bound to an epoch
// and a tick from an older epoch is dropped, so a late tick can never move
// a trace that was reset, paused or replaced.
//
// Misuse (seeking out of range, stepping past either end, playing without a
// trace) is clamped or ignored, never an error.
package playback
