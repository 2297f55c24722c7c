// Package session provides the workout session orchestrator: it owns the
// active exercise, routes frames to it, aggregates rep count and held time,
// and debounces how often form feedback is forwarded to subscribers.
package session

import (
	"sync"
	"time"

	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/pose"
)

// DefaultFeedbackDebounce is the minimum interval between forwarded
// feedback messages. It exists purely to prevent delivery flooding (e.g.
// repeated speech) and is independent of the classifiers' own internal
// frame debounce.
const DefaultFeedbackDebounce = 3 * time.Second

// Snapshot is a thread-safe copy of the externally visible session state.
// UI readers must consume snapshots instead of reaching into the runtime
// state that ProcessFrame mutates.
type Snapshot struct {
	Active            bool               `json:"active"`
	Exercise          string             `json:"exercise,omitempty"`
	Kind              exercise.Kind      `json:"kind,omitempty"`
	PlankVariant      string             `json:"plank_variant,omitempty"`
	Reps              int                `json:"reps"`
	HoldSeconds       float64            `json:"hold_seconds"`
	Holding           bool               `json:"holding"`
	Feedback          *exercise.Feedback `json:"feedback,omitempty"`
	TargetReps        int                `json:"target_reps,omitempty"`
	TargetHoldSeconds float64            `json:"target_hold_seconds,omitempty"`
	Completed         bool               `json:"completed"`
	StartedAt         time.Time          `json:"started_at,omitzero"`
}

// Session holds at most one active exercise and its aggregated results.
// ProcessFrame must be called strictly sequentially; Start and Stop must
// not be interleaved with an in-progress ProcessFrame from another
// goroutine. The internal mutex serializes these against each other and
// against Snapshot readers.
type Session struct {
	mu  sync.RWMutex
	now func() time.Time

	ex   exercise.Exercise
	cfg  exercise.Config
	name string

	reps      int
	hold      float64
	holding   bool
	completed bool
	startedAt time.Time

	feedback        *exercise.Feedback
	feedbackDeb     time.Duration
	lastForwardedAt time.Time

	onRep      func(reps int)
	onFeedback func(fb *exercise.Feedback)
	onComplete func(snap Snapshot)
	onStop     func(snap Snapshot)
}

// New creates an idle session. A non-positive debounce selects the default.
func New(feedbackDebounce time.Duration) *Session {
	if feedbackDebounce <= 0 {
		feedbackDebounce = DefaultFeedbackDebounce
	}
	return &Session{
		feedbackDeb: feedbackDebounce,
		now:         time.Now,
	}
}

// OnRep sets the callback fired once per confirmed repetition with the new
// total. Called synchronously from ProcessFrame, outside the session lock.
func (s *Session) OnRep(fn func(reps int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRep = fn
}

// OnFeedback sets the callback fired when the forwarded feedback changes,
// including the nil transition that clears a corrected defect.
func (s *Session) OnFeedback(fn func(fb *exercise.Feedback)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFeedback = fn
}

// OnComplete sets the callback fired once when the configured target is
// reached.
func (s *Session) OnComplete(fn func(snap Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

// Start activates the named exercise with the given configuration,
// discarding any previous exercise state. The configuration is validated
// here; a rejected config leaves the session idle.
func (s *Session) Start(name string, cfg exercise.Config) error {
	ex, err := exercise.New(name, cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ex = ex
	s.cfg = cfg
	s.name = name
	s.reps = 0
	s.hold = 0
	s.holding = false
	s.completed = false
	s.feedback = nil
	s.lastForwardedAt = time.Time{}
	s.startedAt = s.now()
	return nil
}

// OnStop sets the callback fired with the final snapshot when an active
// session is stopped.
func (s *Session) OnStop(fn func(snap Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStop = fn
}

// Stop deactivates the session, discarding the exercise state.
func (s *Session) Stop() {
	s.mu.Lock()
	wasActive := s.ex != nil
	final := s.snapshotLocked()
	s.ex = nil
	s.holding = false
	s.feedback = nil
	fn := s.onStop
	s.mu.Unlock()

	if wasActive && fn != nil {
		fn(final)
	}
}

// Active reports whether an exercise is currently running.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ex != nil
}

// ProcessFrame routes one landmark frame to the active exercise and applies
// the results. It is a no-op while idle.
func (s *Session) ProcessFrame(f *pose.Frame) {
	s.mu.Lock()

	if s.ex == nil {
		s.mu.Unlock()
		return
	}

	res := s.ex.ProcessFrame(f)

	var fire []func()

	if res.Rep {
		s.reps++
		if fn, n := s.onRep, s.reps; fn != nil {
			fire = append(fire, func() { fn(n) })
		}
	}
	s.hold += res.HoldDelta
	s.holding = res.Holding

	if !s.completed && s.targetReached() {
		s.completed = true
		if fn, snap := s.onComplete, s.snapshotLocked(); fn != nil {
			fire = append(fire, func() { fn(snap) })
		}
	}

	if fn := s.applyFeedback(res.Feedback); fn != nil {
		fire = append(fire, fn)
	}

	s.mu.Unlock()

	// Callbacks run outside the lock so subscribers may take snapshots.
	for _, fn := range fire {
		fn()
	}
}

// applyFeedback implements the delivery debounce: a newly nonempty value is
// forwarded only if the debounce interval has elapsed since the last
// forwarded one, while the nonempty-to-empty transition forwards
// immediately so a corrected-form indicator clears promptly.
func (s *Session) applyFeedback(fb *exercise.Feedback) func() {
	fn := s.onFeedback

	if fb == nil {
		if s.feedback == nil {
			return nil
		}
		s.feedback = nil
		if fn == nil {
			return nil
		}
		return func() { fn(nil) }
	}

	if !s.lastForwardedAt.IsZero() && s.now().Sub(s.lastForwardedAt) < s.feedbackDeb {
		return nil
	}

	s.feedback = fb
	s.lastForwardedAt = s.now()
	if fn == nil {
		return nil
	}
	forwarded := *fb
	return func() { fn(&forwarded) }
}

func (s *Session) targetReached() bool {
	if s.cfg.TargetReps > 0 && s.reps >= s.cfg.TargetReps {
		return true
	}
	if s.cfg.TargetHoldSeconds > 0 && s.hold >= s.cfg.TargetHoldSeconds {
		return true
	}
	return false
}

// Snapshot returns a consistent copy of the visible session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Active:            s.ex != nil,
		Reps:              s.reps,
		HoldSeconds:       s.hold,
		Holding:           s.holding,
		TargetReps:        s.cfg.TargetReps,
		TargetHoldSeconds: s.cfg.TargetHoldSeconds,
		Completed:         s.completed,
		StartedAt:         s.startedAt,
	}
	if s.ex != nil {
		snap.Exercise = s.name
		snap.Kind = s.ex.Kind()
		snap.PlankVariant = s.cfg.PlankVariant
	}
	if s.feedback != nil {
		fb := *s.feedback
		snap.Feedback = &fb
	}
	return snap
}
