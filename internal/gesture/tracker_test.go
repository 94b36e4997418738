package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerVerdicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		begin float64
		end   float64
		want  Verdict
	}{
		{name: "drag left past threshold", begin: 100, end: 40, want: VerdictDismiss},
		{name: "drag right past threshold", begin: 40, end: 100, want: VerdictLike},
		{name: "short drag left", begin: 100, end: 60, want: VerdictNone},
		{name: "short drag right", begin: 60, end: 100, want: VerdictNone},
		{name: "exactly at threshold left", begin: 100, end: 50, want: VerdictNone},
		{name: "exactly at threshold right", begin: 50, end: 100, want: VerdictNone},
		{name: "one past threshold left", begin: 100, end: 49, want: VerdictDismiss},
		{name: "one past threshold right", begin: 49, end: 100, want: VerdictLike},
		{name: "no movement", begin: 80, end: 80, want: VerdictNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tr := NewTracker(DefaultThreshold)
			tr.Begin(tc.begin)
			tr.Update(tc.end)

			assert.Equal(t, tc.want, tr.End())
			assert.Zero(t, tr.Offset(), "offset must reset after End on every path")
			assert.False(t, tr.Active())
		})
	}
}

func TestTrackerEndWithoutUpdateIsInconclusive(t *testing.T) {
	t.Parallel()

	tr := NewTracker(DefaultThreshold)
	tr.Begin(100)

	assert.Equal(t, VerdictNone, tr.End())
	assert.Zero(t, tr.Offset())
}

func TestTrackerEndWithoutBeginIsInconclusive(t *testing.T) {
	t.Parallel()

	tr := NewTracker(DefaultThreshold)

	assert.Equal(t, VerdictNone, tr.End())
	assert.Zero(t, tr.Offset())
}

func TestTrackerStrayUpdateIgnored(t *testing.T) {
	t.Parallel()

	tr := NewTracker(DefaultThreshold)

	// Motion events with no interaction in progress (pointer re-entry,
	// stray events) must not change anything.
	tr.Update(500)
	assert.Zero(t, tr.Offset())
	assert.False(t, tr.Active())
	assert.Equal(t, VerdictNone, tr.End())

	// And after a completed interaction, motion is stray again.
	tr.Begin(10)
	tr.Update(20)
	tr.End()
	tr.Update(900)
	assert.Zero(t, tr.Offset())
}

func TestTrackerOffsetAndFeedback(t *testing.T) {
	t.Parallel()

	tr := NewTracker(DefaultThreshold)
	tr.Begin(100)
	tr.Update(40)

	assert.InDelta(t, -60.0, tr.Offset(), 1e-9)
	assert.InDelta(t, -6.0, tr.Rotation(), 1e-9)
	assert.InDelta(t, 0.8, tr.Opacity(), 1e-9)

	// distance = 100 - 40 = 60 > 50
	assert.Equal(t, VerdictDismiss, tr.End())
}

func TestTrackerOpacityClampsAtZero(t *testing.T) {
	t.Parallel()

	tr := NewTracker(DefaultThreshold)
	tr.Begin(0)
	tr.Update(400)

	assert.InDelta(t, 0.0, tr.Opacity(), 1e-9)
	assert.False(t, math.Signbit(tr.Opacity()))
}

func TestTrackerBeginOverwritesPriorInteraction(t *testing.T) {
	t.Parallel()

	tr := NewTracker(DefaultThreshold)
	tr.Begin(0)
	tr.Update(300)

	// A new Begin mid-drag discards origin and current entirely.
	tr.Begin(100)
	assert.Zero(t, tr.Offset())

	// The fresh interaction has no current coordinate yet, so an
	// immediate End is inconclusive rather than a leftover like.
	assert.Equal(t, VerdictNone, tr.End())
}

func TestTrackerCustomThreshold(t *testing.T) {
	t.Parallel()

	tr := NewTracker(10)
	tr.Begin(0)
	tr.Update(11)
	assert.Equal(t, VerdictLike, tr.End())

	tr.Begin(0)
	tr.Update(10)
	assert.Equal(t, VerdictNone, tr.End())
}

func TestTrackerNonPositiveThresholdUsesDefault(t *testing.T) {
	t.Parallel()

	tr := NewTracker(0)
	tr.Begin(0)
	tr.Update(50)
	assert.Equal(t, VerdictNone, tr.End())

	tr.Begin(0)
	tr.Update(51)
	assert.Equal(t, VerdictLike, tr.End())
}
