package exercise

import "github.com/ayusman/repcoach/internal/pose"

// Push-up thresholds. Elbow and body-line angles use the atan2 formula,
// which behaves better near the straight-arm extreme.
const (
	pushupDownElbowAngle = 90  // degrees, at or below = bottom candidate
	pushupUpElbowAngle   = 150 // degrees, at or above = top candidate

	// pushupBodyLineMin is the minimum shoulder-hip-ankle angle for a
	// straight body line.
	pushupBodyLineMin = 160
	// pushupHipOffset separates sagging from piking: the hip midpoint this
	// far below or above the shoulder-ankle midline.
	pushupHipOffset = 0.01
	// pushupKneeForward is the z offset (depth proxy) at which the knees
	// count as dropped to the floor.
	pushupKneeForward = 0.15
)

var pushupRepLandmarks = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftWrist, pose.RightWrist,
}

var pushupFormLandmarks = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// Pushup counts push-up repetitions and reports body-line defects.
type Pushup struct {
	cfg        Config
	visibility float64
	tracker    *repTracker
	rules      []formRule
}

// NewPushup creates a push-up classifier. The config must already be
// validated.
func NewPushup(cfg Config) *Pushup {
	p := &Pushup{
		cfg:        cfg,
		visibility: cfg.visibility(DefaultVisibility),
		tracker:    newRepTracker(cfg.confirmFrames()),
	}
	p.rules = []formRule{
		{
			feedback: Feedback{Code: "hips_sagging", Message: "Lift your hips, keep your body in a straight line"},
			check:    p.hipsSagging,
		},
		{
			feedback: Feedback{Code: "hips_piking", Message: "Lower your hips, keep your body in a straight line"},
			check:    p.hipsPiking,
		},
		{
			feedback: Feedback{Code: "knees_down", Message: "Keep your knees off the floor"},
			check:    p.kneesDown,
		},
	}
	return p
}

func (p *Pushup) Name() string { return "pushup" }
func (p *Pushup) Kind() Kind   { return KindReps }

// ProcessFrame classifies one frame against the push-up state machine.
func (p *Pushup) ProcessFrame(f *pose.Frame) Result {
	if !f.AllVisible(pushupRepLandmarks, p.visibility) {
		p.tracker.LoseVisibility()
		return Result{}
	}

	leftElbow := pose.AngleAtan2(at(f, pose.LeftShoulder), at(f, pose.LeftElbow), at(f, pose.LeftWrist))
	rightElbow := pose.AngleAtan2(at(f, pose.RightShoulder), at(f, pose.RightElbow), at(f, pose.RightWrist))

	closed := leftElbow <= pushupDownElbowAngle && rightElbow <= pushupDownElbowAngle
	open := leftElbow >= pushupUpElbowAngle && rightElbow >= pushupUpElbowAngle

	rep := p.tracker.Observe(closed, open)

	var fb *Feedback
	if f.AllVisible(pushupFormLandmarks, p.visibility) {
		fb = firstDefect(p.rules, f)
	}

	return Result{Rep: rep, Feedback: fb}
}

// Reset returns the classifier to the top position.
func (p *Pushup) Reset() {
	p.tracker.Reset()
}

// bodyLine returns the shoulder-hip-ankle angle and the hip's vertical
// offset from the shoulder-ankle midline (positive = hip below the line,
// y increasing downward).
func (p *Pushup) bodyLine(f *pose.Frame) (angle, hipOffset float64) {
	shoulder := pose.Midpoint(at(f, pose.LeftShoulder), at(f, pose.RightShoulder))
	hip := pose.Midpoint(at(f, pose.LeftHip), at(f, pose.RightHip))
	ankle := pose.Midpoint(at(f, pose.LeftAnkle), at(f, pose.RightAnkle))

	angle = pose.AngleAtan2(shoulder, hip, ankle)
	hipOffset = hip.Y - pose.Midpoint(shoulder, ankle).Y
	return angle, hipOffset
}

func (p *Pushup) hipsSagging(f *pose.Frame) bool {
	angle, hipOffset := p.bodyLine(f)
	return angle < pushupBodyLineMin && hipOffset > pushupHipOffset
}

func (p *Pushup) hipsPiking(f *pose.Frame) bool {
	angle, hipOffset := p.bodyLine(f)
	return angle < pushupBodyLineMin && hipOffset < -pushupHipOffset
}

// kneesDown uses the z coordinate as a depth proxy: knees resting on the
// floor sit markedly closer to the camera than the hips in the usual
// side-on framing.
func (p *Pushup) kneesDown(f *pose.Frame) bool {
	hip := pose.Midpoint(at(f, pose.LeftHip), at(f, pose.RightHip))
	knee := pose.Midpoint(at(f, pose.LeftKnee), at(f, pose.RightKnee))
	return hip.Z-knee.Z > pushupKneeForward
}
