package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// PresenceDetector decides whether someone is in front of the camera by
// frame differencing with Gaussian blur for noise reduction. The pipeline
// uses it to stay at a low idle frame rate until activity appears and to
// fall back to idle once the scene has been quiet for a while.
type PresenceDetector struct {
	threshold   float64
	quietLimit  int
	quietCount  int
	present     bool
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// Presence detection constants
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21)
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection
	DiffThreshold = 25
	// DefaultQuietFrames is how many consecutive still frames end presence.
	// A person holding a plank moves very little between frames, so presence
	// must survive long still stretches.
	DefaultQuietFrames = 150
)

// NewPresenceDetector creates a new PresenceDetector with the given threshold.
// The threshold is the percentage of pixels that must change for a frame to
// count as activity. For example, a threshold of 1.0 means 1% of pixels must
// change.
func NewPresenceDetector(threshold float64) *PresenceDetector {
	return &PresenceDetector{
		threshold:   threshold,
		quietLimit:  DefaultQuietFrames,
		prevGray:    gocv.NewMat(),
		initialized: false,
	}
}

// SetQuietFrames sets how many consecutive still frames must pass before
// presence ends. Values less than or equal to 0 are ignored.
func (p *PresenceDetector) SetQuietFrames(n int) {
	if n <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.quietLimit = n
}

// Observe analyzes a frame and returns whether someone is considered present
// and the percentage of pixels that changed since the previous frame.
//
// Activity in a frame starts presence immediately; presence ends only after
// quietLimit consecutive frames without activity.
func (p *PresenceDetector) Observe(frame *gocv.Mat) (bool, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	changePercent, ok := p.diff(frame)
	if !ok {
		return p.present, 0
	}

	if changePercent > p.threshold {
		p.present = true
		p.quietCount = 0
		return true, changePercent
	}

	if p.present {
		p.quietCount++
		if p.quietCount >= p.quietLimit {
			p.present = false
			p.quietCount = 0
		}
	}

	return p.present, changePercent
}

// diff computes the changed-pixel percentage against the previous frame.
// The second return is false while no baseline exists yet.
func (p *PresenceDetector) diff(frame *gocv.Mat) (float64, bool) {
	if frame == nil || frame.Empty() {
		return 0, false
	}

	// Convert to grayscale
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	// Apply Gaussian blur to reduce noise
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)

	// If first frame, store as baseline
	if !p.initialized {
		blurred.CopyTo(&p.prevGray)
		p.initialized = true
		return 0, false
	}

	// Calculate absolute difference
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, p.prevGray, &diff)

	// Apply binary threshold
	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	// Count non-zero pixels
	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	// Update previous frame
	blurred.CopyTo(&p.prevGray)

	return changePercent, true
}

// Present reports the current presence state without observing a frame.
func (p *PresenceDetector) Present() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.present
}

// Reset clears the detector state, allowing it to be reused with a new
// baseline frame.
func (p *PresenceDetector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.prevGray.Empty() {
		p.prevGray.Close()
		p.prevGray = gocv.NewMat()
	}
	p.initialized = false
	p.present = false
	p.quietCount = 0
}

// Close releases resources used by the presence detector.
func (p *PresenceDetector) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.prevGray.Empty() {
		p.prevGray.Close()
		p.prevGray = gocv.NewMat()
	}
	p.initialized = false
	p.present = false
	p.quietCount = 0
}

// SetThreshold sets the activity threshold.
// The threshold is the percentage of pixels that must change to count as
// activity. Values less than or equal to 0 are ignored.
func (p *PresenceDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.threshold = threshold
}
