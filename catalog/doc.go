// Package catalog maps algorithm names to trace generators.
//
// Every generator takes loosely typed parameters (from command-line flags or
// a YAML config), decodes them into a typed params struct with mapstructure,
// validates the struct with go-playground/validator and runs the engine. The
// result is a type-erased trace.Trace[any], ready for a playback.Controller.
//
//	reg := catalog.New()
//	tr, err := reg.Generate("n-queens", map[string]any{"n": 6})
//
// Parameters that fail decoding or validation, and engine input errors, are
// wrapped with ErrInvalidParams. The engine's own sentinel stays in the same
// chain, so both match with the standard errors.Is.
package catalog
