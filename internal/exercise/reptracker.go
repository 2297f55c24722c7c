package exercise

// repTracker implements the confirm-then-commit protocol shared by all
// rep-counted classifiers.
//
// Raw per-frame threshold comparison is too jittery to use as a discrete
// state, so two mechanisms stack: hysteresis (callers use different enter
// and leave thresholds when computing the closed/open candidates) and
// temporal debouncing (a transition commits only after confirmFrames
// consecutive agreeing frames). Each direction keeps its own counter and
// only the counter for the currently attempted direction is live; a
// disagreeing frame zeroes that counter without touching the committed
// state.
type repTracker struct {
	confirmFrames int

	// inClosed is the last committed coarse state: false = Open (standing,
	// arms down), true = Closed (squat bottom, arms overhead).
	inClosed bool

	closedStreak int
	openStreak   int
}

func newRepTracker(confirmFrames int) *repTracker {
	return &repTracker{confirmFrames: confirmFrames}
}

// Observe feeds one frame's candidate classification into the tracker.
// closed and open are the hysteresis predicates for the two phases; they are
// never true simultaneously for sane thresholds, but if they were, the
// direction away from the committed state wins. Returns true exactly when a
// Closed-to-Open commit completes a full cycle, i.e. one repetition.
func (t *repTracker) Observe(closed, open bool) bool {
	if !t.inClosed {
		if closed {
			t.closedStreak++
			if t.closedStreak >= t.confirmFrames {
				t.inClosed = true
				t.closedStreak = 0
				t.openStreak = 0
			}
		} else {
			t.closedStreak = 0
		}
		return false
	}

	if open {
		t.openStreak++
		if t.openStreak >= t.confirmFrames {
			t.inClosed = false
			t.openStreak = 0
			t.closedStreak = 0
			return true
		}
	} else {
		t.openStreak = 0
	}
	return false
}

// LoseVisibility is called when required landmarks drop out mid-stream.
// Both pending counters reset so a single noisy frame after reacquisition
// cannot complete a transition, but the committed state is preserved:
// losing sight of the subject does not retroactively cancel a rep in
// progress.
func (t *repTracker) LoseVisibility() {
	t.closedStreak = 0
	t.openStreak = 0
}

// InClosed reports the committed coarse state.
func (t *repTracker) InClosed() bool {
	return t.inClosed
}

// Reset returns the tracker to its initial Open state with zeroed counters.
func (t *repTracker) Reset() {
	t.inClosed = false
	t.closedStreak = 0
	t.openStreak = 0
}
