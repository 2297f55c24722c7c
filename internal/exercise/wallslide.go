package exercise

import (
	"math"

	"github.com/ayusman/repcoach/internal/pose"
)

// Wall slide thresholds. Elbow angles use the atan2 formula.
const (
	slideUpElbowAngle   = 155 // degrees, at or above (wrists overhead) = extended candidate
	slideDownElbowAngle = 100 // degrees, at or below = tucked candidate

	// slideElbowForward is the z offset (depth proxy) at which an elbow
	// counts as drifting off the wall.
	slideElbowForward = 0.1
	// slideWristInRatio flags the wrists collapsing inward: wrist gap
	// below this fraction of the shoulder gap while reaching up.
	slideWristInRatio = 0.6
)

var slideLandmarks = []int{
	pose.Nose,
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftWrist, pose.RightWrist,
}

// WallSlide counts wall slide repetitions: arms slide from a tucked
// goal-post position to full overhead extension and back.
type WallSlide struct {
	cfg        Config
	visibility float64
	tracker    *repTracker
	rules      []formRule
}

// NewWallSlide creates a wall slide classifier. The config must already be
// validated.
func NewWallSlide(cfg Config) *WallSlide {
	w := &WallSlide{
		cfg:        cfg,
		visibility: cfg.visibility(DefaultVisibility),
		tracker:    newRepTracker(cfg.confirmFrames()),
	}
	w.rules = []formRule{
		{
			feedback: Feedback{Code: "elbows_off_wall", Message: "Keep your elbows back against the wall"},
			check:    w.elbowsOffWall,
		},
		{
			feedback: Feedback{Code: "wrists_drift_inward", Message: "Keep your hands shoulder width apart"},
			check:    w.wristsDriftInward,
		},
	}
	return w
}

func (w *WallSlide) Name() string { return "wall_slide" }
func (w *WallSlide) Kind() Kind   { return KindReps }

// ProcessFrame classifies one frame against the wall slide state machine.
// Closed is full overhead extension; Open is the tucked goal-post position.
func (w *WallSlide) ProcessFrame(f *pose.Frame) Result {
	if !f.AllVisible(slideLandmarks, w.visibility) {
		w.tracker.LoseVisibility()
		return Result{}
	}

	leftElbow := pose.AngleAtan2(at(f, pose.LeftShoulder), at(f, pose.LeftElbow), at(f, pose.LeftWrist))
	rightElbow := pose.AngleAtan2(at(f, pose.RightShoulder), at(f, pose.RightElbow), at(f, pose.RightWrist))

	nose := at(f, pose.Nose)
	wristsOverhead := at(f, pose.LeftWrist).Y < nose.Y && at(f, pose.RightWrist).Y < nose.Y

	extended := leftElbow >= slideUpElbowAngle && rightElbow >= slideUpElbowAngle && wristsOverhead
	tucked := leftElbow <= slideDownElbowAngle && rightElbow <= slideDownElbowAngle

	rep := w.tracker.Observe(extended, tucked)

	return Result{Rep: rep, Feedback: firstDefect(w.rules, f)}
}

// Reset returns the classifier to the tucked state.
func (w *WallSlide) Reset() {
	w.tracker.Reset()
}

// elbowsOffWall uses z as a depth proxy: with the back against the wall,
// an elbow drifting forward moves toward the camera relative to its
// shoulder.
func (w *WallSlide) elbowsOffWall(f *pose.Frame) bool {
	left := at(f, pose.LeftShoulder).Z-at(f, pose.LeftElbow).Z > slideElbowForward
	right := at(f, pose.RightShoulder).Z-at(f, pose.RightElbow).Z > slideElbowForward
	return left || right
}

// wristsDriftInward fires while reaching up (committed extended phase)
// when the hands collapse toward the midline.
func (w *WallSlide) wristsDriftInward(f *pose.Frame) bool {
	if !w.tracker.InClosed() {
		return false
	}
	shoulderGap := pose.Distance(at(f, pose.LeftShoulder), at(f, pose.RightShoulder))
	wristGap := math.Abs(at(f, pose.LeftWrist).X - at(f, pose.RightWrist).X)
	if shoulderGap == 0 {
		return false
	}
	return wristGap < slideWristInRatio*shoulderGap
}
