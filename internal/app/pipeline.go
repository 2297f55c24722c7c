package app

import (
	"log"
	"time"
)

// runPipeline is the main capture loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on
// subject presence.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On subject presence, switch to active mode (activeFPS=15)
// 3. Run pose estimation on the frame
// 4. Feed the landmark frame to the exercise session
// 5. When the presence detector reports the subject gone, switch back to
//    idle mode. The detector holds presence through quiet stretches so a
//    motionless plank does not drop the session to idle.
func (a *App) runPipeline() {
	// Track whether we're in active mode
	activeMode := false

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if the pipeline is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Presence detection
			present, _ := a.presence.Observe(frame)

			if present != activeMode {
				activeMode = present
				if present {
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					log.Println("Switched to active mode")
				} else {
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					log.Println("Switched to idle mode")
				}
				ticker.Reset(frameInterval)
			}

			estimator := a.Estimator()

			// Skip estimation if nobody is in frame or no estimator
			if !activeMode || estimator == nil {
				frame.Close()
				continue
			}

			// Step 2: Pose estimation
			landmarks, err := estimator.Estimate(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error estimating pose: %v", err)
				continue
			}

			if landmarks == nil {
				continue
			}

			// Step 3: Exercise classification
			a.session.ProcessFrame(landmarks)
		}
	}
}
