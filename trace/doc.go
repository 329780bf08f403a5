// Package trace defines the recorded form of an algorithm run: an ordered,
// immutable sequence of Steps, each holding a private clone of the working
// model at that moment.
//
// What & Why
//
//   - A generator runs its algorithm once, eagerly, and calls Recorder.Record
//     at every meaningful state change. Record clones the working model, so the
//     generator may keep mutating its own copy without touching steps that were
//     already appended (snapshot isolation).
//   - The resulting Trace is consumed by the playback controller and by
//     renderers; neither of them mutates a Step.
//
// Determinism
//
//   - Steps are numbered 0..n-1 in append order. Two runs of a generator with
//     identical parameters must yield identical traces; generators that draw
//     randomness take an explicit seed.
//
// Phases
//
//   - Phase is a closed enum shared by every engine in this module. Renderers
//     switch on it exhaustively instead of matching free-form strings.
//
// Complexity: Record is O(size of the working model) because of the clone.
package trace
