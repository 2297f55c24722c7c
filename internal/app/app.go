// Package app provides the main application logic for the repcoach workout coaching system.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/repcoach/internal/capture"
	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/plugin"
	"github.com/ayusman/repcoach/internal/pose"
	"github.com/ayusman/repcoach/internal/session"
	"github.com/ayusman/repcoach/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while nobody is in front of the camera.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a subject is present.
	ActiveFPS = 15
)

// Config holds configuration options for the application.
type Config struct {
	Store            *store.Store
	PluginDir        string
	CameraID         int
	PresenceThresh   float64
	FeedbackDebounce time.Duration
}

// App is the main application that orchestrates the camera pipeline, the
// exercise session and plugin delivery of workout events.
type App struct {
	config     Config
	camera     capture.Camera
	presence   *capture.PresenceDetector
	estimator  pose.Estimator
	session    *session.Session
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}

	// Feedback occurrences of the current workout, flushed on stop.
	eventsMu sync.Mutex
	events   []store.FeedbackEvent
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	presenceThreshold := config.PresenceThresh
	if presenceThreshold <= 0 {
		presenceThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		presence:   capture.NewPresenceDetector(presenceThreshold),
		session:    session.New(config.FeedbackDebounce),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(5000), // 5 second timeout for plugin execution
		enabled:    false,
		stopCh:     nil,
	}

	// Try MediaPipe first, fall back to mock estimator
	if mp, err := pose.NewMediaPipeEstimator(pose.DefaultConfig()); err == nil {
		a.estimator = mp
		log.Println("Using MediaPipe pose estimation")
	} else {
		log.Printf("MediaPipe not available (%v), using mock estimator", err)
		a.estimator = pose.NewMockEstimator()
	}

	a.wireSession()

	return a
}

// wireSession subscribes the app to session events so reps, feedback and
// completion reach the plugins and the workout history.
func (a *App) wireSession() {
	a.session.OnRep(func(reps int) {
		snap := a.session.Snapshot()
		log.Printf("Rep %d of %s", reps, snap.Exercise)
		a.dispatch(store.BindingEventRep, snap, "")
	})

	a.session.OnFeedback(func(fb *exercise.Feedback) {
		if fb == nil {
			return
		}
		snap := a.session.Snapshot()
		log.Printf("Feedback for %s: %s", snap.Exercise, fb.Message)
		a.recordFeedback(fb, snap)
		a.dispatch(store.BindingEventFeedback, snap, fb.Message)
	})

	a.session.OnComplete(func(snap session.Snapshot) {
		log.Printf("Workout complete: %s", snap.Exercise)
		a.dispatch(store.BindingEventComplete, snap, "")
	})

	a.session.OnStop(func(snap session.Snapshot) {
		a.persistWorkout(snap)
	})
}

// recordFeedback buffers a feedback occurrence for persistence when the
// workout ends.
func (a *App) recordFeedback(fb *exercise.Feedback, snap session.Snapshot) {
	at := 0.0
	if !snap.StartedAt.IsZero() {
		at = time.Since(snap.StartedAt).Seconds()
	}

	a.eventsMu.Lock()
	a.events = append(a.events, store.FeedbackEvent{
		Code:      fb.Code,
		Message:   fb.Message,
		AtSeconds: at,
	})
	a.eventsMu.Unlock()
}

// persistWorkout writes the finished workout and its buffered feedback
// events to the store.
func (a *App) persistWorkout(snap session.Snapshot) {
	a.eventsMu.Lock()
	events := a.events
	a.events = nil
	a.eventsMu.Unlock()

	if a.config.Store == nil {
		return
	}

	w := &store.Workout{
		ID:                uuid.New().String(),
		Exercise:          snap.Exercise,
		PlankVariant:      snap.PlankVariant,
		TargetReps:        snap.TargetReps,
		TargetHoldSeconds: snap.TargetHoldSeconds,
		Reps:              snap.Reps,
		HoldSeconds:       snap.HoldSeconds,
		Completed:         snap.Completed,
		StartedAt:         snap.StartedAt,
		EndedAt:           time.Now(),
	}

	if err := a.config.Store.Workouts().Create(w); err != nil {
		log.Printf("Failed to save workout: %v", err)
		return
	}

	if len(events) > 0 {
		if err := a.config.Store.Events().Create(w.ID, events); err != nil {
			log.Printf("Failed to save feedback events for %s: %v", w.ID, err)
		}
	}

	log.Printf("Saved workout %s: %s, %d reps, %.1fs hold", w.ID, w.Exercise, w.Reps, w.HoldSeconds)
}

// dispatch executes every enabled plugin binding registered for a session
// event.
func (a *App) dispatch(event string, snap session.Snapshot, feedback string) {
	if a.config.Store == nil {
		return
	}

	bindings, err := a.config.Store.Bindings().GetByEvent(event)
	if err != nil {
		log.Printf("Failed to load bindings for %s: %v", event, err)
		return
	}

	for _, b := range bindings {
		if !b.Enabled {
			continue
		}

		plug, err := a.pluginMgr.Get(b.PluginName)
		if err != nil {
			log.Printf("Binding %s references unknown plugin %s: %v", b.ID, b.PluginName, err)
			continue
		}

		req := &plugin.Request{
			Action:      b.ActionName,
			Event:       event,
			Exercise:    snap.Exercise,
			Reps:        snap.Reps,
			HoldSeconds: snap.HoldSeconds,
			Feedback:    feedback,
			Config:      b.Config,
		}

		resp, err := a.pluginExec.Execute(plug, req)
		if err != nil {
			log.Printf("Plugin %s action %s failed: %v", b.PluginName, b.ActionName, err)
			continue
		}
		if !resp.Success {
			log.Printf("Plugin %s action %s returned error: %s", b.PluginName, b.ActionName, resp.Error)
		}
	}
}

// SetEnabled enables or disables frame processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetEstimator sets the pose estimator implementation to use.
func (a *App) SetEstimator(e pose.Estimator) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.estimator = e
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the capture pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Capture pipeline started")
	return nil
}

// Stop halts the capture pipeline and releases resources. An in-progress
// workout is stopped and persisted first.
func (a *App) Stop() {
	a.session.Stop()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close presence detector
	a.presence.Close()

	// Close the pose estimator if set
	if a.estimator != nil {
		if err := a.estimator.Close(); err != nil {
			log.Printf("Error closing estimator: %v", err)
		}
	}

	log.Println("Capture pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// PresenceDetector returns the presence detector instance.
func (a *App) PresenceDetector() *capture.PresenceDetector {
	return a.presence
}

// Session returns the exercise session.
func (a *App) Session() *session.Session {
	return a.session
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Estimator returns the pose estimator.
func (a *App) Estimator() pose.Estimator {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.estimator
}
