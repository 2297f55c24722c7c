package exercise

import "github.com/ayusman/repcoach/internal/pose"

// Feedback is a single prioritized corrective message describing a detected
// technique defect. At most one is active per frame; the rule order of each
// exercise decides which when several defects coincide.
type Feedback struct {
	// Code is a stable machine-readable identifier, e.g. "knees_cave_in".
	Code string `json:"code"`
	// Message is the human-readable correction, phrased for direct
	// delivery by a voice or UI collaborator.
	Message string `json:"message"`
}

// formRule is one ordered defect check. check returns true when the defect
// is present on the current frame. Rules run only after the exercise's own
// visibility gate has passed, so checks may index landmarks freely through
// the frame accessors.
type formRule struct {
	feedback Feedback
	check    func(f *pose.Frame) bool
}

// at returns the landmark at index i, or the zero landmark when the frame
// is short. Callers gate on AllVisible first, so the zero value is only
// reachable when a check deliberately tolerates missing points.
func at(f *pose.Frame, i int) pose.Landmark {
	lm, _ := f.At(i)
	return lm
}

// firstDefect evaluates rules in order and returns the feedback of the
// first rule that fires, or nil when none do. Defects are not mutually
// exclusive; the order encodes "most actionable issue first" because only
// one message is delivered per moment.
func firstDefect(rules []formRule, f *pose.Frame) *Feedback {
	for i := range rules {
		if rules[i].check(f) {
			fb := rules[i].feedback
			return &fb
		}
	}
	return nil
}
