package trace_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algotrace/trace"
)

// cloneInts is the CloneFunc used by the tests below.
func cloneInts(s []int) []int { return slices.Clone(s) }

// TestRecorder_SnapshotIsolation mutates the working model after each Record
// and checks that earlier steps keep their values.
func TestRecorder_SnapshotIsolation(t *testing.T) {
	rec := trace.NewRecorder("test", cloneInts)
	model := []int{1, 2, 3}

	rec.Record(trace.PhaseInit, model, "start")
	model[0] = 42
	rec.Record(trace.PhaseSwap, model, "changed", "0")
	model[1] = 99

	tr, err := rec.Finish()
	require.NoError(t, err)
	require.Equal(t, 2, tr.Len())

	first, _ := tr.At(0)
	second, _ := tr.At(1)
	assert.Equal(t, []int{1, 2, 3}, first.Snapshot)
	assert.Equal(t, []int{42, 2, 3}, second.Snapshot)
	assert.Equal(t, "test", tr.Algorithm())
}

// TestRecorder_IndicesAndHighlight checks numbering and highlight de-duplication.
func TestRecorder_IndicesAndHighlight(t *testing.T) {
	rec := trace.NewRecorder("test", cloneInts)
	rec.Record(trace.PhaseInit, nil, "a")
	rec.Record(trace.PhaseCompare, nil, "b", "x", "y", "x")
	rec.Recordf(trace.PhaseDone, nil, "done after %d", 2)

	tr := rec.MustFinish()
	for i, s := range tr.Steps() {
		assert.Equal(t, i, s.Index)
	}
	s1, _ := tr.At(1)
	assert.Equal(t, []string{"x", "y"}, s1.Highlight)
	assert.True(t, s1.Highlights("y"))
	assert.False(t, s1.Highlights("z"))
	assert.Equal(t, "done after 2", tr.Last().Description)
	assert.Equal(t, 1, tr.Count(trace.PhaseCompare))
}

// TestRecorder_Empty verifies that an empty recorder refuses to finish.
func TestRecorder_Empty(t *testing.T) {
	_, err := trace.NewRecorder("test", cloneInts).Finish()
	assert.ErrorIs(t, err, trace.ErrEmptyTrace)
}

// TestNew_Validation covers the constructor's error conditions.
func TestNew_Validation(t *testing.T) {
	_, err := trace.New[int]("x", nil)
	assert.ErrorIs(t, err, trace.ErrEmptyTrace)

	_, err = trace.New("x", []trace.Step[int]{{Index: 1}})
	assert.ErrorIs(t, err, trace.ErrIndexMismatch)

	_, err = trace.New("x", []trace.Step[int]{{Index: 0, Phase: trace.Phase(250)}})
	assert.ErrorIs(t, err, trace.ErrInvalidPhase)

	steps := []trace.Step[int]{{Index: 0, Snapshot: 7}}
	tr, err := trace.New("x", steps)
	require.NoError(t, err)
	steps[0].Snapshot = 8
	s, ok := tr.At(0)
	assert.True(t, ok)
	assert.Equal(t, 7, s.Snapshot)

	_, ok = tr.At(5)
	assert.False(t, ok)
}

// TestErase keeps metadata and boxes snapshots.
func TestErase(t *testing.T) {
	rec := trace.NewRecorder("erase", cloneInts)
	rec.Record(trace.PhaseInit, []int{5}, "init", "a")
	tr := trace.Erase(rec.MustFinish())

	assert.Equal(t, "erase", tr.Algorithm())
	s, _ := tr.At(0)
	assert.Equal(t, []int{5}, s.Snapshot)
	assert.Equal(t, []string{"a"}, s.Highlight)
}

// TestPhase_RoundTrip checks naming for every declared phase.
func TestPhase_RoundTrip(t *testing.T) {
	for _, p := range trace.Phases() {
		name := p.String()
		got, err := trace.ParsePhase(name)
		require.NoError(t, err, name)
		assert.Equal(t, p, got)

		b, err := p.MarshalText()
		require.NoError(t, err)
		var back trace.Phase
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, p, back)
	}

	_, err := trace.ParsePhase("teleport")
	assert.ErrorIs(t, err, trace.ErrUnknownPhase)
	assert.Equal(t, "phase(200)", trace.Phase(200).String())
	assert.Equal(t, "go_left", trace.PhaseGoLeft.String())
}
