// Package pose provides the body landmark frame model and the geometric
// primitives used by the exercise classifiers.
package pose

// Body landmark indices following the MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark represents a single body keypoint in normalized image coordinates
// (0..1, y increasing downward). Z is a depth estimate relative to the hips.
// Visibility is the model's confidence that the point is in frame and unoccluded.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Frame holds the landmarks detected for one instant in time.
// A frame may carry fewer than NumLandmarks entries; every access must go
// through At or the visibility helpers, which treat a missing index as
// "not visible" rather than an error.
type Frame struct {
	Landmarks []Landmark `json:"landmarks"`
	// Timestamp is the capture time in seconds on a source-consistent
	// monotonic clock. Used by hold-based exercises.
	Timestamp float64 `json:"timestamp"`
}

// At returns the landmark at the given index and whether it exists.
func (f *Frame) At(i int) (Landmark, bool) {
	if f == nil || i < 0 || i >= len(f.Landmarks) {
		return Landmark{}, false
	}
	return f.Landmarks[i], true
}

// Visible reports whether the landmark at index i exists and meets the
// visibility threshold.
func (f *Frame) Visible(i int, threshold float64) bool {
	lm, ok := f.At(i)
	return ok && lm.Visibility >= threshold
}

// AllVisible reports whether every listed landmark meets the visibility
// threshold. It fails closed: any missing or low-confidence landmark makes
// the whole check false, so callers skip the frame instead of classifying
// on partial data.
func (f *Frame) AllVisible(indices []int, threshold float64) bool {
	for _, i := range indices {
		if !f.Visible(i, threshold) {
			return false
		}
	}
	return true
}
