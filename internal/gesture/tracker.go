// Package gesture converts a stream of horizontal pointer positions
// into discrete swipe verdicts.
//
// A tracker lives across many interactions but carries no state from
// one to the next: every Begin fully overwrites the previous origin,
// and End resets the tracker no matter which branch it takes.
package gesture

import "math"

// Verdict is the outcome of a completed pointer interaction.
type Verdict int

const (
	// VerdictNone means the gesture was inconclusive; the card
	// snaps back and no decision is recorded.
	VerdictNone Verdict = iota
	// VerdictLike is a swipe right past the threshold.
	VerdictLike
	// VerdictDismiss is a swipe left past the threshold.
	VerdictDismiss
)

// String implements fmt.Stringer for log output.
func (v Verdict) String() string {
	switch v {
	case VerdictLike:
		return "like"
	case VerdictDismiss:
		return "dismiss"
	default:
		return "none"
	}
}

// DefaultThreshold is the drag distance past which a gesture decides.
const DefaultThreshold = 50.0

// Tracker is the swipe state machine for the interaction currently in
// progress. Only the horizontal axis is meaningful. Not safe for
// concurrent use; the UI event loop serializes all calls.
type Tracker struct {
	threshold float64

	originX    float64
	currentX   float64
	hasOrigin  bool
	hasCurrent bool
	active     bool
	offset     float64
}

// NewTracker returns a Tracker with the given decision threshold.
// A non-positive threshold falls back to DefaultThreshold.
func NewTracker(threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold}
}

// Begin starts a new interaction at x, discarding any prior one.
func (t *Tracker) Begin(x float64) {
	t.originX = x
	t.hasOrigin = true
	t.currentX = 0
	t.hasCurrent = false
	t.active = true
	t.offset = 0
}

// Update records the pointer moving to x. Updates arriving while no
// interaction is active (stray motion, pointer re-entry) are ignored.
func (t *Tracker) Update(x float64) {
	if !t.active {
		return
	}
	t.currentX = x
	t.hasCurrent = true
	t.offset = t.currentX - t.originX
}

// End completes the interaction and returns its verdict. The tie case
// (distance exactly at the threshold) is inconclusive. The tracker is
// reset on every path, so the card always snaps back to center when no
// decision was reached.
func (t *Tracker) End() Verdict {
	defer t.reset()

	if !t.active || !t.hasOrigin || !t.hasCurrent {
		return VerdictNone
	}

	distance := t.originX - t.currentX
	switch {
	case distance > t.threshold:
		return VerdictDismiss
	case distance < -t.threshold:
		return VerdictLike
	default:
		return VerdictNone
	}
}

func (t *Tracker) reset() {
	t.active = false
	t.hasOrigin = false
	t.hasCurrent = false
	t.offset = 0
}

// Active reports whether an interaction is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Offset is the current horizontal displacement from the origin.
// Positive means a drag to the right.
func (t *Tracker) Offset() float64 {
	return t.offset
}

// Rotation is the card tilt, in degrees, implied by the offset.
func (t *Tracker) Rotation() float64 {
	return t.offset * 0.1
}

// Opacity is the card opacity implied by the offset, in [0, 1].
func (t *Tracker) Opacity() float64 {
	return math.Max(0, 1-math.Abs(t.offset)/300)
}
