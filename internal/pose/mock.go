package pose

import (
	"gocv.io/x/gocv"
)

// MockEstimator is a test implementation of the Estimator interface.
// It allows tests to control the estimation results.
type MockEstimator struct {
	frame  *Frame
	queue  []*Frame
	err    error
	closed bool
}

// NewMockEstimator creates a new MockEstimator instance.
func NewMockEstimator() *MockEstimator {
	return &MockEstimator{}
}

// SetFrame sets the frame that will be returned by every Estimate call.
func (m *MockEstimator) SetFrame(f *Frame) {
	m.frame = f
}

// SetSequence queues frames to be returned one per Estimate call.
// When the queue drains, Estimate falls back to the frame set by SetFrame.
func (m *MockEstimator) SetSequence(frames []*Frame) {
	m.queue = frames
}

// SetError sets the error that will be returned by Estimate.
func (m *MockEstimator) SetError(err error) {
	m.err = err
}

// Estimate returns the pre-configured frame or error.
func (m *MockEstimator) Estimate(frame *gocv.Mat) (*Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		f := m.queue[0]
		m.queue = m.queue[1:]
		return f, nil
	}
	return m.frame, nil
}

// Close marks the estimator closed.
func (m *MockEstimator) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockEstimator) Closed() bool {
	return m.closed
}

// set places a landmark at both the left and right index of a body pair.
// dx spreads the pair symmetrically around x.
func set(f *Frame, left, right int, x, y, z, dx float64) {
	f.Landmarks[left] = Landmark{X: x + dx, Y: y, Z: z, Visibility: 0.95}
	f.Landmarks[right] = Landmark{X: x - dx, Y: y, Z: z, Visibility: 0.95}
}

func emptyFrame(ts float64) *Frame {
	f := &Frame{Landmarks: make([]Landmark, NumLandmarks), Timestamp: ts}
	// Head landmarks rarely drive classification; give them a common
	// plausible spot so visibility checks on the nose pass.
	for i := Nose; i <= MouthRight; i++ {
		f.Landmarks[i] = Landmark{X: 0.5, Y: 0.12, Visibility: 0.95}
	}
	return f
}

// StandingFrame returns a frame of a person standing upright facing the
// camera, arms at the sides, feet together. Knee angles are near 177 degrees
// and the wrists sit below hip height, so it satisfies the open/rest phase of
// the squat, jumping jack and push-up-style classifiers.
func StandingFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.5, 0.25, 0, 0.06)
	set(f, LeftElbow, RightElbow, 0.5, 0.40, 0, 0.075)
	set(f, LeftWrist, RightWrist, 0.5, 0.55, 0, 0.08)
	set(f, LeftHip, RightHip, 0.5, 0.50, 0, 0.04)
	set(f, LeftKnee, RightKnee, 0.5, 0.70, 0, 0.04)
	set(f, LeftAnkle, RightAnkle, 0.5, 0.88, 0, 0.05)
	set(f, LeftHeel, RightHeel, 0.5, 0.91, 0, 0.05)
	set(f, LeftFootIndex, RightFootIndex, 0.5, 0.90, 0, 0.055)
	return f
}

// SquatBottomFrame returns a frame of a person at the bottom of a squat,
// seen from the side (left and right landmarks nearly coincide). Knee angles
// are near 94 degrees and the hips sit just above knee height.
func SquatBottomFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.58, 0.40, 0, 0.003)
	set(f, LeftElbow, RightElbow, 0.50, 0.44, 0, 0.003)
	set(f, LeftWrist, RightWrist, 0.44, 0.46, 0, 0.003)
	set(f, LeftHip, RightHip, 0.62, 0.64, 0, 0.003)
	set(f, LeftKnee, RightKnee, 0.50, 0.66, 0, 0.003)
	set(f, LeftAnkle, RightAnkle, 0.52, 0.88, 0, 0.003)
	set(f, LeftHeel, RightHeel, 0.50, 0.91, 0, 0.003)
	set(f, LeftFootIndex, RightFootIndex, 0.44, 0.90, 0, 0.003)
	return f
}

// PushupTopFrame returns a frame of a person in the top (arms extended)
// push-up position, seen from the side. Elbow angles are near 179 degrees
// and the shoulder-hip-ankle body line is straight.
func PushupTopFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.30, 0.50, 0, 0.003)
	set(f, LeftElbow, RightElbow, 0.29, 0.62, 0, 0.003)
	set(f, LeftWrist, RightWrist, 0.28, 0.74, 0, 0.003)
	set(f, LeftHip, RightHip, 0.55, 0.54, 0, 0.003)
	set(f, LeftKnee, RightKnee, 0.70, 0.565, 0, 0.003)
	set(f, LeftAnkle, RightAnkle, 0.85, 0.59, 0, 0.003)
	set(f, LeftHeel, RightHeel, 0.87, 0.61, 0, 0.003)
	set(f, LeftFootIndex, RightFootIndex, 0.88, 0.66, 0, 0.003)
	return f
}

// PushupBottomFrame returns a frame of a person at the bottom of a push-up,
// chest near the floor, elbows bent to roughly 72 degrees, body line straight.
func PushupBottomFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.30, 0.66, 0, 0.003)
	set(f, LeftElbow, RightElbow, 0.22, 0.70, 0, 0.003)
	set(f, LeftWrist, RightWrist, 0.28, 0.76, 0, 0.003)
	set(f, LeftHip, RightHip, 0.55, 0.665, 0, 0.003)
	set(f, LeftKnee, RightKnee, 0.70, 0.652, 0, 0.003)
	set(f, LeftAnkle, RightAnkle, 0.85, 0.64, 0, 0.003)
	set(f, LeftHeel, RightHeel, 0.87, 0.66, 0, 0.003)
	set(f, LeftFootIndex, RightFootIndex, 0.88, 0.70, 0, 0.003)
	return f
}

// JackSpreadFrame returns a frame of a person mid jumping jack: arms
// overhead (wrists above the nose) and feet spread well past shoulder width.
func JackSpreadFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.5, 0.25, 0, 0.06)
	set(f, LeftElbow, RightElbow, 0.5, 0.14, 0, 0.13)
	set(f, LeftWrist, RightWrist, 0.5, 0.06, 0, 0.20)
	set(f, LeftHip, RightHip, 0.5, 0.50, 0, 0.04)
	set(f, LeftKnee, RightKnee, 0.5, 0.70, 0, 0.09)
	set(f, LeftAnkle, RightAnkle, 0.5, 0.88, 0, 0.12)
	set(f, LeftHeel, RightHeel, 0.5, 0.91, 0, 0.12)
	set(f, LeftFootIndex, RightFootIndex, 0.5, 0.90, 0, 0.125)
	return f
}

// PlankFrame returns a frame of a correct forearm plank seen from the side:
// elbows directly under the shoulders and a straight shoulder-hip-ankle line.
func PlankFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.30, 0.55, 0, 0.003)
	set(f, LeftElbow, RightElbow, 0.30, 0.72, 0, 0.003)
	set(f, LeftWrist, RightWrist, 0.38, 0.73, 0, 0.003)
	set(f, LeftHip, RightHip, 0.55, 0.58, 0, 0.003)
	set(f, LeftKnee, RightKnee, 0.70, 0.60, 0, 0.003)
	set(f, LeftAnkle, RightAnkle, 0.85, 0.62, 0, 0.003)
	set(f, LeftHeel, RightHeel, 0.87, 0.64, 0, 0.003)
	set(f, LeftFootIndex, RightFootIndex, 0.88, 0.68, 0, 0.003)
	return f
}

// WallSlideRaisedFrame returns a frame of a person with arms fully extended
// overhead against a wall: elbow angles near 180 and wrists above the nose.
func WallSlideRaisedFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.5, 0.25, 0, 0.06)
	set(f, LeftElbow, RightElbow, 0.5, 0.15, 0, 0.08)
	set(f, LeftWrist, RightWrist, 0.5, 0.05, 0, 0.10)
	set(f, LeftHip, RightHip, 0.5, 0.50, 0, 0.04)
	set(f, LeftKnee, RightKnee, 0.5, 0.70, 0, 0.04)
	set(f, LeftAnkle, RightAnkle, 0.5, 0.88, 0, 0.05)
	set(f, LeftHeel, RightHeel, 0.5, 0.91, 0, 0.05)
	set(f, LeftFootIndex, RightFootIndex, 0.5, 0.90, 0, 0.055)
	return f
}

// WallSlideTuckedFrame returns a frame with the elbows pulled down to the
// ribs and the wrists near shoulder height, the bottom of a wall slide.
func WallSlideTuckedFrame(ts float64) *Frame {
	f := emptyFrame(ts)
	set(f, LeftShoulder, RightShoulder, 0.5, 0.25, 0, 0.06)
	set(f, LeftElbow, RightElbow, 0.5, 0.38, 0, 0.08)
	set(f, LeftWrist, RightWrist, 0.5, 0.24, 0, 0.10)
	set(f, LeftHip, RightHip, 0.5, 0.50, 0, 0.04)
	set(f, LeftKnee, RightKnee, 0.5, 0.70, 0, 0.04)
	set(f, LeftAnkle, RightAnkle, 0.5, 0.88, 0, 0.05)
	set(f, LeftHeel, RightHeel, 0.5, 0.91, 0, 0.05)
	set(f, LeftFootIndex, RightFootIndex, 0.5, 0.90, 0, 0.055)
	return f
}
