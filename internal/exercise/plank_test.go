package exercise

import (
	"testing"

	"github.com/ayusman/repcoach/internal/pose"
)

func TestPlank_AccumulatesHeldTime(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1})

	var total float64
	for i := 0; i <= 10; i++ {
		res := p.ProcessFrame(pose.PlankFrame(float64(i) * 0.1))
		total += res.HoldDelta
	}

	if !almostEqual(total, 1.0) {
		t.Errorf("summed deltas = %g, want 1.0", total)
	}
	if !almostEqual(p.Total(), 1.0) {
		t.Errorf("Total() = %g, want 1.0", p.Total())
	}
}

func TestPlank_BrokenFormFreezesAccumulator(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1})

	sag := pose.PlankFrame(0)
	sag.Landmarks[pose.LeftHip].Y = 0.70
	sag.Landmarks[pose.RightHip].Y = 0.70

	p.ProcessFrame(pose.PlankFrame(0.0))
	p.ProcessFrame(pose.PlankFrame(0.1))
	p.ProcessFrame(pose.PlankFrame(0.2))

	sag.Timestamp = 0.3
	res := p.ProcessFrame(sag)
	if res.Holding {
		t.Error("still holding through a broken-form frame")
	}
	if res.Feedback == nil || res.Feedback.Code != "hips_sagging" {
		t.Errorf("feedback = %v, want hips_sagging", res.Feedback)
	}
	if !almostEqual(p.Total(), 0.2) {
		t.Fatalf("Total() = %g after break, want 0.2", p.Total())
	}

	// Resuming credits only time from the broken frame forward.
	p.ProcessFrame(pose.PlankFrame(0.4))
	p.ProcessFrame(pose.PlankFrame(0.5))
	if !almostEqual(p.Total(), 0.4) {
		t.Errorf("Total() = %g after resuming, want 0.4", p.Total())
	}
}

func TestPlank_ConfirmationGatesHolding(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 3})

	if res := p.ProcessFrame(pose.PlankFrame(0.0)); res.Holding {
		t.Error("holding on first frame")
	}
	if res := p.ProcessFrame(pose.PlankFrame(0.1)); res.Holding {
		t.Error("holding on second frame")
	}
	if res := p.ProcessFrame(pose.PlankFrame(0.2)); !res.Holding {
		t.Error("not holding on third frame")
	}
}

func TestPlank_GlitchDeltaContributesNothing(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1})

	p.ProcessFrame(pose.PlankFrame(0.0))
	p.ProcessFrame(pose.PlankFrame(0.1))
	p.ProcessFrame(pose.PlankFrame(2.0)) // tracking glitch

	if !almostEqual(p.Total(), 0.1) {
		t.Errorf("Total() = %g after glitch, want 0.1", p.Total())
	}
}

func TestPlank_HipsTooHighFeedback(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1})

	f := pose.PlankFrame(0)
	f.Landmarks[pose.LeftHip].Y = 0.46
	f.Landmarks[pose.RightHip].Y = 0.46

	res := p.ProcessFrame(f)
	if res.Feedback == nil || res.Feedback.Code != "hips_too_high" {
		t.Errorf("feedback = %v, want hips_too_high", res.Feedback)
	}
}

func TestPlank_ForearmVariantElbowAlignment(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1})

	f := pose.PlankFrame(0)
	// Slide the elbows forward of the shoulders.
	f.Landmarks[pose.LeftElbow].X = 0.42
	f.Landmarks[pose.RightElbow].X = 0.42

	res := p.ProcessFrame(f)
	if res.Holding {
		t.Error("holding with elbows out of alignment")
	}
	if res.Feedback == nil || res.Feedback.Code != "arms_misaligned" {
		t.Errorf("feedback = %v, want arms_misaligned", res.Feedback)
	}
}

func TestPlank_StraightArmVariant(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1, PlankVariant: VariantStraightArm})

	// A straight-arm plank: wrists under the shoulders, elbows straight.
	f := pose.PlankFrame(0)
	f.Landmarks[pose.LeftElbow] = pose.Landmark{X: 0.303, Y: 0.64, Visibility: 0.95}
	f.Landmarks[pose.RightElbow] = pose.Landmark{X: 0.297, Y: 0.64, Visibility: 0.95}
	f.Landmarks[pose.LeftWrist] = pose.Landmark{X: 0.303, Y: 0.73, Visibility: 0.95}
	f.Landmarks[pose.RightWrist] = pose.Landmark{X: 0.297, Y: 0.73, Visibility: 0.95}

	f.Timestamp = 0.0
	p.ProcessFrame(f)
	if !p.tracker.Holding() {
		t.Fatal("straight-arm plank not recognized")
	}

	// The forearm frame fails the straight-arm variant: bent elbows.
	bent := pose.PlankFrame(0.1)
	res := p.ProcessFrame(bent)
	if res.Holding {
		t.Error("forearm position accepted by straight-arm variant")
	}
}

func TestPlank_VisibilityPausesWithoutCredit(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1})

	p.ProcessFrame(pose.PlankFrame(0.0))
	p.ProcessFrame(pose.PlankFrame(0.1))

	hidden := pose.PlankFrame(0.2)
	hidden.Landmarks[pose.LeftHip].Visibility = 0
	if res := p.ProcessFrame(hidden); res.Feedback != nil || res.HoldDelta != 0 {
		t.Error("invisible frame produced output")
	}

	// Reacquired: the out-of-sight gap is not credited.
	p.ProcessFrame(pose.PlankFrame(0.3))
	if !almostEqual(p.Total(), 0.1) {
		t.Errorf("Total() = %g after visibility gap, want 0.1", p.Total())
	}
}

func TestPlank_Reset(t *testing.T) {
	p := NewPlank(Config{ConfirmFrames: 1})

	p.ProcessFrame(pose.PlankFrame(0.0))
	p.ProcessFrame(pose.PlankFrame(0.1))
	p.Reset()

	if p.Total() != 0 {
		t.Fatalf("Total() = %g after reset, want 0", p.Total())
	}

	// No delta against the pre-reset timestamp.
	res := p.ProcessFrame(pose.PlankFrame(9.0))
	if res.HoldDelta != 0 {
		t.Errorf("HoldDelta = %g on first frame after reset, want 0", res.HoldDelta)
	}
}
