package exercise

// MaxFrameGapSeconds is the sanity ceiling on the timestamp delta between
// consecutive frames of a hold exercise. Deltas at or above it are treated
// as a tracking glitch and contribute zero duration instead of corrupting
// the accumulated total.
const MaxFrameGapSeconds = 0.5

// holdTracker accumulates correct-form time for timed-hold exercises.
// Entry into "actively holding" is gated by the same N-consecutive-frame
// confirmation as the rep tracker; breaking form drops out immediately with
// no grace window, pausing the clock rather than restarting it.
type holdTracker struct {
	confirmFrames int

	holding bool
	streak  int
	total   float64

	lastTS  float64
	hasLast bool
}

func newHoldTracker(confirmFrames int) *holdTracker {
	return &holdTracker{confirmFrames: confirmFrames}
}

// Observe feeds one frame. correct is the frame's form classification and
// ts its timestamp in seconds. Returns the duration credited for this frame
// (zero unless actively holding with a sane positive delta).
func (h *holdTracker) Observe(correct bool, ts float64) float64 {
	var delta float64

	if correct {
		h.streak++
		if !h.holding && h.streak >= h.confirmFrames {
			h.holding = true
		}
		if h.holding && h.hasLast {
			d := ts - h.lastTS
			// Non-monotonic or oversized deltas credit nothing.
			if d > 0 && d < MaxFrameGapSeconds {
				delta = d
				h.total += d
			}
		}
	} else {
		h.holding = false
		h.streak = 0
	}

	h.lastTS = ts
	h.hasLast = true
	return delta
}

// LoseVisibility pauses the hold without resetting the total, exactly like
// a broken-form frame, and additionally forgets the last timestamp so the
// gap while the subject was out of sight is never credited.
func (h *holdTracker) LoseVisibility() {
	h.holding = false
	h.streak = 0
	h.hasLast = false
}

// Holding reports whether the subject is currently in a confirmed hold.
func (h *holdTracker) Holding() bool {
	return h.holding
}

// Total returns the accumulated correct-form duration in seconds.
func (h *holdTracker) Total() float64 {
	return h.total
}

// Reset zeroes the accumulator and all counters and clears the last
// timestamp so the next frame cannot compute a delta against a stale one.
func (h *holdTracker) Reset() {
	h.holding = false
	h.streak = 0
	h.total = 0
	h.lastTS = 0
	h.hasLast = false
}
