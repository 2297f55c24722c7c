package exercise

import "github.com/ayusman/repcoach/internal/pose"

// Jumping jack thresholds. The jack is classified on wrist height and foot
// spread rather than joint angles; the two spread ratios form the
// hysteresis band. Fast whole-body movement makes individual landmarks
// less reliable, hence the lower default visibility.
const (
	jackSpreadAnkleRatio   = 1.5 // ankle gap over shoulder gap, spread candidate
	jackTogetherAnkleRatio = 1.1 // ankle gap over shoulder gap, together candidate

	jackDefaultVisibility = 0.3
)

var jackLandmarks = []int{
	pose.Nose,
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftWrist, pose.RightWrist,
	pose.LeftHip, pose.RightHip,
	pose.LeftAnkle, pose.RightAnkle,
}

// JumpingJack counts jumping jack repetitions.
type JumpingJack struct {
	cfg        Config
	visibility float64
	tracker    *repTracker
	rules      []formRule
}

// NewJumpingJack creates a jumping jack classifier. The config must already
// be validated.
func NewJumpingJack(cfg Config) *JumpingJack {
	j := &JumpingJack{
		cfg:        cfg,
		visibility: cfg.visibility(jackDefaultVisibility),
		tracker:    newRepTracker(cfg.confirmFrames()),
	}
	j.rules = []formRule{
		{
			feedback: Feedback{Code: "arms_not_overhead", Message: "Raise your arms all the way overhead"},
			check:    j.armsNotOverhead,
		},
	}
	return j
}

func (j *JumpingJack) Name() string { return "jumping_jack" }
func (j *JumpingJack) Kind() Kind   { return KindReps }

// ProcessFrame classifies one frame against the jumping jack state machine.
// Closed is the spread position (arms overhead, feet apart); Open is feet
// together with arms at the sides.
func (j *JumpingJack) ProcessFrame(f *pose.Frame) Result {
	if !f.AllVisible(jackLandmarks, j.visibility) {
		j.tracker.LoseVisibility()
		return Result{}
	}

	nose := at(f, pose.Nose)
	hip := pose.Midpoint(at(f, pose.LeftHip), at(f, pose.RightHip))
	shoulderGap := pose.Distance(at(f, pose.LeftShoulder), at(f, pose.RightShoulder))
	ankleGap := pose.Distance(at(f, pose.LeftAnkle), at(f, pose.RightAnkle))

	leftWrist := at(f, pose.LeftWrist)
	rightWrist := at(f, pose.RightWrist)

	armsOverhead := leftWrist.Y < nose.Y && rightWrist.Y < nose.Y
	armsDown := leftWrist.Y > hip.Y && rightWrist.Y > hip.Y

	var spread, together bool
	if shoulderGap > 0 {
		spread = ankleGap > jackSpreadAnkleRatio*shoulderGap
		together = ankleGap < jackTogetherAnkleRatio*shoulderGap
	}

	rep := j.tracker.Observe(armsOverhead && spread, armsDown && together)

	return Result{Rep: rep, Feedback: firstDefect(j.rules, f)}
}

// Reset returns the classifier to the feet-together state.
func (j *JumpingJack) Reset() {
	j.tracker.Reset()
}

// armsNotOverhead fires in the spread phase when the wrists stop between
// shoulder and nose height instead of going fully overhead.
func (j *JumpingJack) armsNotOverhead(f *pose.Frame) bool {
	if !j.tracker.InClosed() {
		return false
	}
	nose := at(f, pose.Nose)
	shoulder := pose.Midpoint(at(f, pose.LeftShoulder), at(f, pose.RightShoulder))

	short := func(w pose.Landmark) bool {
		return w.Y >= nose.Y && w.Y < shoulder.Y
	}
	return short(at(f, pose.LeftWrist)) || short(at(f, pose.RightWrist))
}
