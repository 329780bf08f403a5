package playback

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// State is the controller lifecycle position.
type State uint8

const (
	StateIdle     State = iota // no trace loaded
	StateReady                 // trace loaded, index 0, not playing
	StateRunning               // autoplay timer active
	StatePaused                // stopped somewhere before the end
	StateComplete              // at the last step
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateComplete:
		return "complete"
	}

	return fmt.Sprintf("state(%d)", s)
}

var (
	// ErrInvalidSpeed indicates a non-positive autoplay period.
	ErrInvalidSpeed = errors.New("playback: speed must be positive")

	// ErrEmptyTrace indicates an attempt to load a trace without steps.
	ErrEmptyTrace = errors.New("playback: trace has no steps")
)

// View is a consistent read of the controller for renderers.
type View struct {
	Session   string
	Algorithm string
	State     State
	Index     int
	Len       int
	Speed     time.Duration

	// Step is the current step; valid when HasStep.
	Step    trace.Step[any]
	HasStep bool

	// Derived holds each Deriver's value in registration order.
	Derived []any
}
