// Package api provides HTTP API handlers for the rep counting daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/repcoach/internal/store"
)

// WorkoutHandler handles HTTP requests for workout history resources.
type WorkoutHandler struct {
	store *store.Store
}

// NewWorkoutHandler creates a new WorkoutHandler with the given store.
func NewWorkoutHandler(s *store.Store) *WorkoutHandler {
	return &WorkoutHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *WorkoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/workouts or /api/workouts/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/workouts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/workouts
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/workouts/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type workoutResponse struct {
	ID                string  `json:"id"`
	Exercise          string  `json:"exercise"`
	PlankVariant      string  `json:"plank_variant,omitempty"`
	TargetReps        int     `json:"target_reps"`
	TargetHoldSeconds float64 `json:"target_hold_seconds"`
	Reps              int     `json:"reps"`
	HoldSeconds       float64 `json:"hold_seconds"`
	Completed         bool    `json:"completed"`
	StartedAt         string  `json:"started_at"`
	EndedAt           string  `json:"ended_at"`
}

type listWorkoutsResponse struct {
	Workouts []workoutResponse `json:"workouts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Workout to a workoutResponse.
func toResponse(w *store.Workout) workoutResponse {
	return workoutResponse{
		ID:                w.ID,
		Exercise:          w.Exercise,
		PlankVariant:      w.PlankVariant,
		TargetReps:        w.TargetReps,
		TargetHoldSeconds: w.TargetHoldSeconds,
		Reps:              w.Reps,
		HoldSeconds:       w.HoldSeconds,
		Completed:         w.Completed,
		StartedAt:         w.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		EndedAt:           w.EndedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/workouts and returns workout history, optionally
// filtered by the exercise query parameter.
func (h *WorkoutHandler) list(w http.ResponseWriter, r *http.Request) {
	var workouts []*store.Workout
	var err error

	if exercise := r.URL.Query().Get("exercise"); exercise != "" {
		workouts, err = h.store.Workouts().ListByExercise(exercise)
	} else {
		workouts, err = h.store.Workouts().List()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workouts")
		return
	}

	response := listWorkoutsResponse{
		Workouts: make([]workoutResponse, 0, len(workouts)),
	}

	for _, workout := range workouts {
		response.Workouts = append(response.Workouts, toResponse(workout))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/workouts/{id} and returns a single workout.
func (h *WorkoutHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	workout, err := h.store.Workouts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get workout")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(workout))
}

// delete handles DELETE /api/workouts/{id} and removes a workout.
func (h *WorkoutHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Workouts().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete workout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
