package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/pose"
)

// fakeClock lets the tests step the debounce clock deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T, name string, cfg exercise.Config) (*Session, *fakeClock) {
	t.Helper()
	s := New(3 * time.Second)
	clk := &fakeClock{t: time.Unix(1000, 0)}
	s.now = clk.now
	require.NoError(t, s.Start(name, cfg))
	return s, clk
}

func feed(s *Session, f *pose.Frame, n int) {
	for i := 0; i < n; i++ {
		s.ProcessFrame(f)
	}
}

func TestSession_CountsReps(t *testing.T) {
	s, _ := newTestSession(t, "pushup", exercise.Config{ConfirmFrames: 3})

	var repEvents []int
	s.OnRep(func(n int) { repEvents = append(repEvents, n) })

	feed(s, pose.PushupTopFrame(0), 3)
	feed(s, pose.PushupBottomFrame(0), 3)
	feed(s, pose.PushupTopFrame(0), 3)
	feed(s, pose.PushupBottomFrame(0), 3)
	feed(s, pose.PushupTopFrame(0), 3)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Reps)
	assert.Equal(t, []int{1, 2}, repEvents)
	assert.True(t, snap.Active)
	assert.Equal(t, "pushup", snap.Exercise)
	assert.Equal(t, exercise.KindReps, snap.Kind)
}

func TestSession_AccumulatesHold(t *testing.T) {
	s, _ := newTestSession(t, "plank", exercise.Config{ConfirmFrames: 1})

	for i := 0; i <= 10; i++ {
		s.ProcessFrame(pose.PlankFrame(float64(i) * 0.1))
	}

	snap := s.Snapshot()
	assert.InDelta(t, 1.0, snap.HoldSeconds, 1e-9)
	assert.True(t, snap.Holding)
	assert.Equal(t, exercise.KindHold, snap.Kind)
}

func TestSession_FeedbackDebounce(t *testing.T) {
	s, clk := newTestSession(t, "squat", exercise.Config{ConfirmFrames: 1})

	var forwarded []*exercise.Feedback
	s.OnFeedback(func(fb *exercise.Feedback) { forwarded = append(forwarded, fb) })

	raised := pose.StandingFrame(0)
	raised.Landmarks[pose.LeftHeel].Y = 0.80
	raised.Landmarks[pose.RightHeel].Y = 0.80

	// First defective frame forwards immediately.
	s.ProcessFrame(raised)
	require.Len(t, forwarded, 1)
	assert.Equal(t, "heels_raised", forwarded[0].Code)

	// Repeats inside the debounce window are swallowed.
	clk.advance(time.Second)
	s.ProcessFrame(raised)
	assert.Len(t, forwarded, 1)

	// After the window the defect is forwarded again.
	clk.advance(3 * time.Second)
	s.ProcessFrame(raised)
	require.Len(t, forwarded, 2)

	// Correcting the form clears immediately, debounce or not.
	clk.advance(time.Millisecond)
	s.ProcessFrame(pose.StandingFrame(0))
	require.Len(t, forwarded, 3)
	assert.Nil(t, forwarded[2])
	assert.Nil(t, s.Snapshot().Feedback)
}

func TestSession_CompletionFiresOnce(t *testing.T) {
	s, _ := newTestSession(t, "pushup", exercise.Config{TargetReps: 1, ConfirmFrames: 1})

	completions := 0
	s.OnComplete(func(snap Snapshot) {
		completions++
		assert.True(t, snap.Completed)
		assert.Equal(t, 1, snap.Reps)
	})

	feed(s, pose.PushupTopFrame(0), 2)
	feed(s, pose.PushupBottomFrame(0), 2)
	feed(s, pose.PushupTopFrame(0), 2)
	feed(s, pose.PushupBottomFrame(0), 2)
	feed(s, pose.PushupTopFrame(0), 2)

	assert.Equal(t, 1, completions)
	assert.True(t, s.Snapshot().Completed)
}

func TestSession_RestartClearsState(t *testing.T) {
	s, _ := newTestSession(t, "pushup", exercise.Config{ConfirmFrames: 1})

	feed(s, pose.PushupTopFrame(0), 1)
	feed(s, pose.PushupBottomFrame(0), 1)
	feed(s, pose.PushupTopFrame(0), 1)
	require.Equal(t, 1, s.Snapshot().Reps)

	require.NoError(t, s.Start("pushup", exercise.Config{ConfirmFrames: 1}))
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Reps)
	assert.Zero(t, snap.HoldSeconds)
	assert.False(t, snap.Completed)

	// The same trajectory reproduces identical results.
	feed(s, pose.PushupTopFrame(0), 1)
	feed(s, pose.PushupBottomFrame(0), 1)
	feed(s, pose.PushupTopFrame(0), 1)
	assert.Equal(t, 1, s.Snapshot().Reps)
}

func TestSession_StartRejectsBadConfig(t *testing.T) {
	s := New(0)
	err := s.Start("squat", exercise.Config{VisibilityThreshold: 7})
	require.Error(t, err)
	assert.False(t, s.Active())
}

func TestSession_IdleIgnoresFrames(t *testing.T) {
	s := New(0)
	s.ProcessFrame(pose.StandingFrame(0))
	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestSession_StopDeactivates(t *testing.T) {
	s, _ := newTestSession(t, "squat", exercise.Config{})
	s.Stop()
	assert.False(t, s.Active())
	s.ProcessFrame(pose.StandingFrame(0))
	assert.Equal(t, 0, s.Snapshot().Reps)
}

func TestSession_StopFiresWithFinalSnapshot(t *testing.T) {
	s, _ := newTestSession(t, "pushup", exercise.Config{ConfirmFrames: 1})

	var finals []Snapshot
	s.OnStop(func(snap Snapshot) { finals = append(finals, snap) })

	feed(s, pose.PushupTopFrame(0), 1)
	feed(s, pose.PushupBottomFrame(0), 1)
	feed(s, pose.PushupTopFrame(0), 1)

	s.Stop()
	require.Len(t, finals, 1)
	assert.Equal(t, 1, finals[0].Reps)
	assert.Equal(t, "pushup", finals[0].Exercise)
	assert.True(t, finals[0].Active)

	// A second Stop on an idle session does not fire again.
	s.Stop()
	assert.Len(t, finals, 1)
}
