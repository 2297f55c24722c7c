package exercise

import (
	"math"

	"github.com/ayusman/repcoach/internal/pose"
)

// Plank thresholds. The body line uses the atan2 formula.
const (
	// plankBodyLineMin is the minimum shoulder-hip-ankle angle for the
	// body to count as straight.
	plankBodyLineMin = 160
	// plankArmAlign is the max horizontal offset between elbow (forearm
	// variant) or wrist (straight-arm variant) and the shoulder.
	plankArmAlign = 0.08
	// plankStraightElbowAngle is the minimum elbow angle for the
	// straight-arm variant.
	plankStraightElbowAngle = 160
	// plankHipOffset separates too-high from sagging hips, measured
	// against the shoulder-ankle midline.
	plankHipOffset = 0.01
)

var plankForearmLandmarks = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftHip, pose.RightHip,
	pose.LeftAnkle, pose.RightAnkle,
}

var plankStraightArmLandmarks = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftWrist, pose.RightWrist,
	pose.LeftHip, pose.RightHip,
	pose.LeftAnkle, pose.RightAnkle,
}

// Plank accumulates held duration while correct plank form is continuously
// maintained. Unlike the rep-counted exercises there is no open/closed
// cycle; the hold tracker gates entry with the same frame-confirmation
// debounce and pauses on any broken-form frame.
type Plank struct {
	cfg        Config
	visibility float64
	variant    string
	landmarks  []int
	tracker    *holdTracker
	rules      []formRule
}

// NewPlank creates a plank classifier. The config must already be
// validated.
func NewPlank(cfg Config) *Plank {
	variant := cfg.PlankVariant
	if variant == "" {
		variant = VariantForearm
	}
	landmarks := plankForearmLandmarks
	if variant == VariantStraightArm {
		landmarks = plankStraightArmLandmarks
	}

	p := &Plank{
		cfg:        cfg,
		visibility: cfg.visibility(DefaultVisibility),
		variant:    variant,
		landmarks:  landmarks,
		tracker:    newHoldTracker(cfg.confirmFrames()),
	}
	p.rules = []formRule{
		{
			feedback: Feedback{Code: "hips_sagging", Message: "Lift your hips back into line"},
			check:    p.hipsSagging,
		},
		{
			feedback: Feedback{Code: "hips_too_high", Message: "Lower your hips back into line"},
			check:    p.hipsTooHigh,
		},
		{
			feedback: Feedback{Code: "arms_misaligned", Message: "Stack your arms directly under your shoulders"},
			check:    p.armsMisaligned,
		},
	}
	return p
}

func (p *Plank) Name() string { return "plank" }
func (p *Plank) Kind() Kind   { return KindHold }

// Variant returns the configured plank variant.
func (p *Plank) Variant() string { return p.variant }

// ProcessFrame classifies one frame. The frame timestamp drives the hold
// accumulator; frames that cannot be assessed pause the hold without
// touching the total.
func (p *Plank) ProcessFrame(f *pose.Frame) Result {
	if !f.AllVisible(p.landmarks, p.visibility) {
		p.tracker.LoseVisibility()
		return Result{}
	}

	correct := p.bodyLineStraight(f) && p.armsAligned(f)
	delta := p.tracker.Observe(correct, f.Timestamp)

	var fb *Feedback
	if !correct {
		fb = firstDefect(p.rules, f)
	}

	return Result{HoldDelta: delta, Holding: p.tracker.Holding(), Feedback: fb}
}

// Total returns the accumulated held duration in seconds.
func (p *Plank) Total() float64 {
	return p.tracker.Total()
}

// Reset zeroes the accumulator, the confirmation counter and the last
// frame timestamp.
func (p *Plank) Reset() {
	p.tracker.Reset()
}

func (p *Plank) bodyLine(f *pose.Frame) (angle, hipOffset float64) {
	shoulder := pose.Midpoint(at(f, pose.LeftShoulder), at(f, pose.RightShoulder))
	hip := pose.Midpoint(at(f, pose.LeftHip), at(f, pose.RightHip))
	ankle := pose.Midpoint(at(f, pose.LeftAnkle), at(f, pose.RightAnkle))

	angle = pose.AngleAtan2(shoulder, hip, ankle)
	hipOffset = hip.Y - pose.Midpoint(shoulder, ankle).Y
	return angle, hipOffset
}

func (p *Plank) bodyLineStraight(f *pose.Frame) bool {
	angle, _ := p.bodyLine(f)
	return angle >= plankBodyLineMin
}

// armsAligned checks the variant-specific support position: forearm plank
// wants the elbows stacked under the shoulders; straight-arm plank wants
// straight elbows with the wrists under the shoulders.
func (p *Plank) armsAligned(f *pose.Frame) bool {
	if p.variant == VariantStraightArm {
		leftElbow := pose.AngleAtan2(at(f, pose.LeftShoulder), at(f, pose.LeftElbow), at(f, pose.LeftWrist))
		rightElbow := pose.AngleAtan2(at(f, pose.RightShoulder), at(f, pose.RightElbow), at(f, pose.RightWrist))
		if leftElbow < plankStraightElbowAngle || rightElbow < plankStraightElbowAngle {
			return false
		}
		return p.underShoulder(f, pose.LeftWrist, pose.RightWrist)
	}
	return p.underShoulder(f, pose.LeftElbow, pose.RightElbow)
}

func (p *Plank) underShoulder(f *pose.Frame, left, right int) bool {
	leftOff := math.Abs(at(f, left).X - at(f, pose.LeftShoulder).X)
	rightOff := math.Abs(at(f, right).X - at(f, pose.RightShoulder).X)
	return leftOff <= plankArmAlign && rightOff <= plankArmAlign
}

func (p *Plank) hipsSagging(f *pose.Frame) bool {
	angle, hipOffset := p.bodyLine(f)
	return angle < plankBodyLineMin && hipOffset > plankHipOffset
}

func (p *Plank) hipsTooHigh(f *pose.Frame) bool {
	angle, hipOffset := p.bodyLine(f)
	return angle < plankBodyLineMin && hipOffset < -plankHipOffset
}

func (p *Plank) armsMisaligned(f *pose.Frame) bool {
	return !p.armsAligned(f)
}
