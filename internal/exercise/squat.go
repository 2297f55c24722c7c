package exercise

import "github.com/ayusman/repcoach/internal/pose"

// Squat thresholds. The knee angle uses the arccosine formula; the pair of
// bottom/stand angles provides the hysteresis band.
const (
	squatBottomKneeAngle = 95  // degrees, at or below = bottom candidate
	squatStandKneeAngle  = 160 // degrees, at or above = standing candidate
	// squatHipDrop is the max normalized distance between hip and knee
	// height for the hips to count as "lowered".
	squatHipDrop = 0.12

	// Form-defect thresholds.
	squatKneeCaveRatio = 0.7  // knee gap below this fraction of ankle gap
	squatBackAngleMin  = 60   // shoulder-hip-knee angle below this = rounded
	squatHeelRaise     = 0.02 // heel this far above the foot index = raised
)

// squatRepLandmarks is the narrow, legs-only set required for counting.
var squatRepLandmarks = []int{
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// squatFormLandmarks widens the set for form checks to include the torso
// and feet.
var squatFormLandmarks = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
	pose.LeftHeel, pose.RightHeel,
	pose.LeftFootIndex, pose.RightFootIndex,
}

// Squat counts squat repetitions and reports form defects.
type Squat struct {
	cfg        Config
	visibility float64
	tracker    *repTracker
	rules      []formRule
}

// NewSquat creates a squat classifier. The config must already be validated.
func NewSquat(cfg Config) *Squat {
	s := &Squat{
		cfg:        cfg,
		visibility: cfg.visibility(DefaultVisibility),
		tracker:    newRepTracker(cfg.confirmFrames()),
	}
	s.rules = []formRule{
		{
			// Dangerous knee alignment outranks everything else.
			feedback: Feedback{Code: "knees_cave_in", Message: "Push your knees out over your toes"},
			check:    s.kneesCaveIn,
		},
		{
			feedback: Feedback{Code: "back_rounding", Message: "Keep your chest up and back straight"},
			check:    s.backRounded,
		},
		{
			feedback: Feedback{Code: "heels_raised", Message: "Keep your heels on the floor"},
			check:    s.heelsRaised,
		},
	}
	return s
}

func (s *Squat) Name() string { return "squat" }
func (s *Squat) Kind() Kind   { return KindReps }

// ProcessFrame classifies one frame against the squat state machine.
func (s *Squat) ProcessFrame(f *pose.Frame) Result {
	if !f.AllVisible(squatRepLandmarks, s.visibility) {
		s.tracker.LoseVisibility()
		return Result{}
	}

	leftKnee := pose.Angle(at(f, pose.LeftHip), at(f, pose.LeftKnee), at(f, pose.LeftAnkle))
	rightKnee := pose.Angle(at(f, pose.RightHip), at(f, pose.RightKnee), at(f, pose.RightAnkle))

	hip := pose.Midpoint(at(f, pose.LeftHip), at(f, pose.RightHip))
	knee := pose.Midpoint(at(f, pose.LeftKnee), at(f, pose.RightKnee))
	hipLowered := knee.Y-hip.Y <= squatHipDrop

	closed := leftKnee <= squatBottomKneeAngle && rightKnee <= squatBottomKneeAngle && hipLowered
	open := leftKnee >= squatStandKneeAngle && rightKnee >= squatStandKneeAngle

	rep := s.tracker.Observe(closed, open)

	var fb *Feedback
	if f.AllVisible(squatFormLandmarks, s.visibility) {
		fb = firstDefect(s.rules, f)
	}

	return Result{Rep: rep, Feedback: fb}
}

// Reset returns the classifier to the standing state.
func (s *Squat) Reset() {
	s.tracker.Reset()
}

// kneesCaveIn fires while in the bottom phase when the knees track inside
// the ankles. Checked only while committed Closed: at standing the gaps are
// naturally similar and the ratio is meaningless.
func (s *Squat) kneesCaveIn(f *pose.Frame) bool {
	if !s.tracker.InClosed() {
		return false
	}
	kneeGap := pose.Distance(at(f, pose.LeftKnee), at(f, pose.RightKnee))
	ankleGap := pose.Distance(at(f, pose.LeftAnkle), at(f, pose.RightAnkle))
	if ankleGap == 0 {
		return false
	}
	return kneeGap < squatKneeCaveRatio*ankleGap
}

// backRounded fires in the bottom phase when the torso folds over the
// thighs past the safe angle.
func (s *Squat) backRounded(f *pose.Frame) bool {
	if !s.tracker.InClosed() {
		return false
	}
	shoulder := pose.Midpoint(at(f, pose.LeftShoulder), at(f, pose.RightShoulder))
	hip := pose.Midpoint(at(f, pose.LeftHip), at(f, pose.RightHip))
	knee := pose.Midpoint(at(f, pose.LeftKnee), at(f, pose.RightKnee))
	return pose.Angle(shoulder, hip, knee) < squatBackAngleMin
}

// heelsRaised fires in any phase when either heel lifts clearly above its
// foot index (y increases downward, so a raised heel has the smaller y).
func (s *Squat) heelsRaised(f *pose.Frame) bool {
	left := at(f, pose.LeftFootIndex).Y-at(f, pose.LeftHeel).Y > squatHeelRaise
	right := at(f, pose.RightFootIndex).Y-at(f, pose.RightHeel).Y > squatHeelRaise
	return left || right
}
