package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/repcoach/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "repcoach-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func seedWorkout(t *testing.T, s *store.Store, id, exercise string) {
	t.Helper()
	err := s.Workouts().Create(&store.Workout{
		ID:         id,
		Exercise:   exercise,
		TargetReps: 10,
		Reps:       10,
		Completed:  true,
		EndedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed workout: %v", err)
	}
}

func TestWorkoutHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewWorkoutHandler(s)

	seedWorkout(t, s, "workout-1", "squat")

	// Make a GET request to list workouts
	req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Verify response
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listWorkoutsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Workouts) != 1 {
		t.Errorf("expected 1 workout, got %d", len(response.Workouts))
	}

	if response.Workouts[0].ID != "workout-1" {
		t.Errorf("expected workout ID 'workout-1', got %q", response.Workouts[0].ID)
	}

	if response.Workouts[0].Exercise != "squat" {
		t.Errorf("expected exercise 'squat', got %q", response.Workouts[0].Exercise)
	}
}

func TestWorkoutHandler_ListFilteredByExercise(t *testing.T) {
	s := newTestStore(t)
	handler := NewWorkoutHandler(s)

	seedWorkout(t, s, "workout-1", "squat")
	seedWorkout(t, s, "workout-2", "pushup")

	req := httptest.NewRequest(http.MethodGet, "/api/workouts?exercise=pushup", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listWorkoutsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Workouts) != 1 {
		t.Fatalf("expected 1 workout, got %d", len(response.Workouts))
	}
	if response.Workouts[0].Exercise != "pushup" {
		t.Errorf("expected exercise 'pushup', got %q", response.Workouts[0].Exercise)
	}
}

func TestWorkoutHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewWorkoutHandler(s)

	seedWorkout(t, s, "workout-1", "squat")

	req := httptest.NewRequest(http.MethodGet, "/api/workouts/workout-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response workoutResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.ID != "workout-1" {
		t.Errorf("expected workout ID 'workout-1', got %q", response.ID)
	}
	if !response.Completed {
		t.Error("expected workout to be completed")
	}
}

func TestWorkoutHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewWorkoutHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/workouts/non-existent", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestWorkoutHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewWorkoutHandler(s)

	seedWorkout(t, s, "workout-1", "squat")

	req := httptest.NewRequest(http.MethodDelete, "/api/workouts/workout-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	// Verify it is gone
	if _, err := s.Workouts().GetByID("workout-1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestWorkoutHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewWorkoutHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/workouts", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestEventsHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventsHandler(s)

	seedWorkout(t, s, "workout-1", "plank")
	events := []store.FeedbackEvent{
		{Code: "hips_sagging", Message: "Lift your hips", AtSeconds: 3.2},
		{Code: "hips_too_high", Message: "Lower your hips", AtSeconds: 8.9},
	}
	if err := s.Events().Create("workout-1", events); err != nil {
		t.Fatalf("failed to seed events: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/workouts/workout-1/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(response.Events))
	}
	if response.Events[0].Code != "hips_sagging" {
		t.Errorf("expected first event 'hips_sagging', got %q", response.Events[0].Code)
	}
}

func TestEventsHandler_WorkoutNotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventsHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/workouts/non-existent/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
