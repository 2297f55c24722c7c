package api

import (
	"net/http"
	"strings"

	"github.com/ayusman/repcoach/internal/store"
)

// EventsHandler handles HTTP requests for a workout's feedback events.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/workouts/{id}/events
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse workout ID from path: /api/workouts/{id}/events
	path := strings.TrimPrefix(r.URL.Path, "/api/workouts/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "events" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	workoutID := parts[0]

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.list(w, r, workoutID)
}

// Response types

type eventResponse struct {
	ID        int64   `json:"id"`
	WorkoutID string  `json:"workout_id"`
	Code      string  `json:"code"`
	Message   string  `json:"message"`
	AtSeconds float64 `json:"at_seconds"`
	CreatedAt string  `json:"created_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// list handles GET /api/workouts/{id}/events
func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request, workoutID string) {
	// Verify workout exists
	if _, err := h.store.Workouts().GetByID(workoutID); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify workout")
		return
	}

	events, err := h.store.Events().GetByWorkoutID(workoutID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}

	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:        e.ID,
			WorkoutID: e.WorkoutID,
			Code:      e.Code,
			Message:   e.Message,
			AtSeconds: e.AtSeconds,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
