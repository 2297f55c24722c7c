package store

import (
	"testing"
	"time"
)

func createTestWorkout(t *testing.T, s *Store, id string) {
	t.Helper()
	err := s.Workouts().Create(&Workout{
		ID:       id,
		Exercise: "squat",
		EndedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to create workout: %v", err)
	}
}

func TestEventRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	createTestWorkout(t, s, "workout-1")
	repo := s.Events()

	events := []FeedbackEvent{
		{Code: "knees_cave_in", Message: "Push your knees out", AtSeconds: 4.2},
		{Code: "heels_raised", Message: "Keep your heels on the floor", AtSeconds: 9.8},
	}

	if err := repo.Create("workout-1", events); err != nil {
		t.Fatalf("failed to create events: %v", err)
	}

	retrieved, err := repo.GetByWorkoutID("workout-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(retrieved) != 2 {
		t.Fatalf("expected 2 events, got %d", len(retrieved))
	}

	// Events come back in occurrence order
	if retrieved[0].Code != "knees_cave_in" || retrieved[1].Code != "heels_raised" {
		t.Errorf("events out of order: %q, %q", retrieved[0].Code, retrieved[1].Code)
	}
	if retrieved[0].AtSeconds != 4.2 {
		t.Errorf("AtSeconds mismatch: got %f, want 4.2", retrieved[0].AtSeconds)
	}
	if retrieved[0].WorkoutID != "workout-1" {
		t.Errorf("WorkoutID mismatch: got %q", retrieved[0].WorkoutID)
	}
}

func TestEventRepository_GetEmpty(t *testing.T) {
	s := newTestStore(t)
	createTestWorkout(t, s, "workout-1")

	events, err := s.Events().GetByWorkoutID("workout-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestEventRepository_DeleteByWorkoutID(t *testing.T) {
	s := newTestStore(t)
	createTestWorkout(t, s, "workout-1")
	repo := s.Events()

	events := []FeedbackEvent{
		{Code: "back_rounding", Message: "Keep your chest up and back straight", AtSeconds: 1.0},
	}
	if err := repo.Create("workout-1", events); err != nil {
		t.Fatalf("failed to create events: %v", err)
	}

	if err := repo.DeleteByWorkoutID("workout-1"); err != nil {
		t.Fatalf("failed to delete events: %v", err)
	}

	remaining, err := repo.GetByWorkoutID("workout-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no events after delete, got %d", len(remaining))
	}
}

func TestEventRepository_CascadeDelete(t *testing.T) {
	s := newTestStore(t)
	createTestWorkout(t, s, "workout-1")

	events := []FeedbackEvent{
		{Code: "hips_sagging", Message: "Lift your hips", AtSeconds: 2.5},
	}
	if err := s.Events().Create("workout-1", events); err != nil {
		t.Fatalf("failed to create events: %v", err)
	}

	// Deleting the workout cascades to its events
	if err := s.Workouts().Delete("workout-1"); err != nil {
		t.Fatalf("failed to delete workout: %v", err)
	}

	var count int
	err := s.DB().QueryRow("SELECT COUNT(*) FROM feedback_events").Scan(&count)
	if err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if count != 0 {
		t.Errorf("expected events removed by cascade, got %d", count)
	}
}
