// Package exercise implements the per-exercise pose classifiers: repetition
// counting with hysteresis and frame-confirmation debouncing, timed-hold
// accumulation, and prioritized form-defect feedback.
package exercise

import (
	"errors"
	"fmt"

	"github.com/ayusman/repcoach/internal/pose"
)

// Kind distinguishes repetition-counted exercises from timed holds.
type Kind string

const (
	// KindReps marks exercises scored by counted repetitions.
	KindReps Kind = "reps"
	// KindHold marks exercises scored by accumulated correct-form time.
	KindHold Kind = "hold"
)

// Plank variant names.
const (
	VariantForearm     = "forearm"
	VariantStraightArm = "straightArm"
)

// ErrUnknownExercise is returned by New for an unrecognized exercise name.
var ErrUnknownExercise = errors.New("unknown exercise")

// Result is the outcome of processing one frame. Nothing is retained by the
// classifier beyond its own runtime state; results are only returned to the
// caller.
type Result struct {
	// Rep is true exactly once per completed open-closed-open cycle.
	Rep bool
	// HoldDelta is the correct-form time in seconds contributed by this
	// frame. Always zero for rep-counted exercises.
	HoldDelta float64
	// Holding is true while a hold exercise is in a confirmed hold.
	Holding bool
	// Feedback is the highest-priority form defect detected on this frame,
	// or nil when form is acceptable or could not be assessed.
	Feedback *Feedback
}

// Exercise is the capability interface implemented by every classifier.
// ProcessFrame must be called strictly sequentially for one instance:
// the internal counters and accumulators are order-dependent.
type Exercise interface {
	Name() string
	Kind() Kind

	// ProcessFrame classifies a single landmark frame. It never blocks,
	// performs I/O, or fails: frames that cannot be assessed (missing or
	// low-visibility landmarks, degenerate geometry) produce a zero Result.
	ProcessFrame(f *pose.Frame) Result

	// Reset returns the classifier to its initial state so the next frame
	// is processed as if the exercise had just started.
	Reset()
}

// Config holds the immutable tunables for one exercise instance. It is
// threaded in at construction and never mutated during a session.
type Config struct {
	// TargetReps is the session goal for rep-counted exercises. Zero means
	// no target.
	TargetReps int `json:"targetReps"`
	// TargetHoldSeconds is the session goal for hold exercises. Zero means
	// no target.
	TargetHoldSeconds float64 `json:"targetHoldSeconds"`
	// VisibilityThreshold is the minimum landmark confidence accepted by
	// the classifier's visibility gate. Zero selects the exercise default.
	VisibilityThreshold float64 `json:"landmarkVisibilityThreshold"`
	// ConfirmFrames is the number of consecutive agreeing frames required
	// to commit a state transition. Zero selects the default (3).
	ConfirmFrames int `json:"requiredConsecutiveFrames"`
	// PlankVariant selects the plank arm position: "forearm" (default) or
	// "straightArm". Ignored by other exercises.
	PlankVariant string `json:"plankVariant"`
}

// Default tunables, applied when the corresponding Config field is zero.
const (
	DefaultVisibility    = 0.5
	DefaultConfirmFrames = 3
)

// Validate checks the configuration for values the classifiers cannot run
// with. It is the one place a hard failure is acceptable: a rejected config
// at start beats a misbehaving classifier mid-stream.
func (c Config) Validate() error {
	if c.TargetReps < 0 {
		return fmt.Errorf("targetReps must be >= 0, got %d", c.TargetReps)
	}
	if c.TargetHoldSeconds < 0 {
		return fmt.Errorf("targetHoldSeconds must be >= 0, got %g", c.TargetHoldSeconds)
	}
	if c.VisibilityThreshold < 0 || c.VisibilityThreshold > 1 {
		return fmt.Errorf("landmarkVisibilityThreshold must be in [0,1], got %g", c.VisibilityThreshold)
	}
	if c.ConfirmFrames < 0 {
		return fmt.Errorf("requiredConsecutiveFrames must be >= 1, got %d", c.ConfirmFrames)
	}
	switch c.PlankVariant {
	case "", VariantForearm, VariantStraightArm:
	default:
		return fmt.Errorf("plankVariant must be %q or %q, got %q", VariantForearm, VariantStraightArm, c.PlankVariant)
	}
	return nil
}

// visibility returns the configured visibility threshold or the given
// exercise default.
func (c Config) visibility(def float64) float64 {
	if c.VisibilityThreshold > 0 {
		return c.VisibilityThreshold
	}
	return def
}

// confirmFrames returns the configured confirmation count or the default.
func (c Config) confirmFrames() int {
	if c.ConfirmFrames > 0 {
		return c.ConfirmFrames
	}
	return DefaultConfirmFrames
}

// Names lists the supported exercise names accepted by New.
func Names() []string {
	return []string{"squat", "pushup", "jumping_jack", "wall_slide", "plank"}
}

// New constructs the named exercise with the given configuration.
// The config is validated here; frame processing never fails afterwards.
func New(name string, cfg Config) (Exercise, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch name {
	case "squat":
		return NewSquat(cfg), nil
	case "pushup":
		return NewPushup(cfg), nil
	case "jumping_jack":
		return NewJumpingJack(cfg), nil
	case "wall_slide":
		return NewWallSlide(cfg), nil
	case "plank":
		return NewPlank(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, name)
	}
}
