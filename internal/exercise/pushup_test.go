package exercise

import (
	"testing"

	"github.com/ayusman/repcoach/internal/pose"
)

func TestPushup_FullCycle(t *testing.T) {
	p := NewPushup(Config{ConfirmFrames: 3})

	reps := 0
	feed := func(f *pose.Frame, n int) {
		for i := 0; i < n; i++ {
			if p.ProcessFrame(f).Rep {
				reps++
			}
		}
	}

	feed(pose.PushupTopFrame(0), 4)
	feed(pose.PushupBottomFrame(0), 4)
	feed(pose.PushupTopFrame(0), 4)

	if reps != 1 {
		t.Errorf("reps = %d, want 1", reps)
	}
}

func TestPushup_NoRepWithoutConfirmation(t *testing.T) {
	p := NewPushup(Config{ConfirmFrames: 3})

	// A two-frame dip reverts before confirmation: no rep ever.
	frames := []*pose.Frame{
		pose.PushupTopFrame(0), pose.PushupTopFrame(0), pose.PushupTopFrame(0),
		pose.PushupBottomFrame(0), pose.PushupBottomFrame(0),
		pose.PushupTopFrame(0), pose.PushupTopFrame(0), pose.PushupTopFrame(0),
	}
	for _, f := range frames {
		if p.ProcessFrame(f).Rep {
			t.Fatal("rep emitted from unconfirmed dip")
		}
	}
	if p.tracker.InClosed() {
		t.Error("bottom state committed from a 2-frame dip")
	}
}

func TestPushup_HipsSaggingFeedback(t *testing.T) {
	p := NewPushup(Config{ConfirmFrames: 1})

	f := pose.PushupTopFrame(0)
	// Drop the hips toward the floor, breaking the body line.
	f.Landmarks[pose.LeftHip].Y = 0.64
	f.Landmarks[pose.RightHip].Y = 0.64

	res := p.ProcessFrame(f)
	if res.Feedback == nil || res.Feedback.Code != "hips_sagging" {
		t.Errorf("feedback = %v, want hips_sagging", res.Feedback)
	}
}

func TestPushup_HipsPikingFeedback(t *testing.T) {
	p := NewPushup(Config{ConfirmFrames: 1})

	f := pose.PushupTopFrame(0)
	// Raise the hips well above the shoulder-ankle line.
	f.Landmarks[pose.LeftHip].Y = 0.42
	f.Landmarks[pose.RightHip].Y = 0.42

	res := p.ProcessFrame(f)
	if res.Feedback == nil || res.Feedback.Code != "hips_piking" {
		t.Errorf("feedback = %v, want hips_piking", res.Feedback)
	}
}

func TestPushup_KneesDownFeedback(t *testing.T) {
	p := NewPushup(Config{ConfirmFrames: 1})

	f := pose.PushupTopFrame(0)
	f.Landmarks[pose.LeftKnee].Z = -0.2
	f.Landmarks[pose.RightKnee].Z = -0.2

	res := p.ProcessFrame(f)
	if res.Feedback == nil || res.Feedback.Code != "knees_down" {
		t.Errorf("feedback = %v, want knees_down", res.Feedback)
	}
}

func TestPushup_VisibilityFailsClosed(t *testing.T) {
	p := NewPushup(Config{ConfirmFrames: 1})

	f := pose.PushupBottomFrame(0)
	f.Landmarks[pose.LeftElbow].Visibility = 0.1

	res := p.ProcessFrame(f)
	if res.Rep || res.Feedback != nil {
		t.Error("frame with low-visibility elbow produced output")
	}
	if p.tracker.InClosed() {
		t.Error("frame with low-visibility elbow changed state")
	}
}
