package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/session"
)

// SessionHandler handles HTTP requests controlling the live session.
type SessionHandler struct {
	session *session.Session
}

// NewSessionHandler creates a new SessionHandler for the given session.
func NewSessionHandler(s *session.Session) *SessionHandler {
	return &SessionHandler{session: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.start(w, r)
	case http.MethodDelete:
		h.stop(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request types

type startSessionRequest struct {
	Exercise string `json:"exercise"`
	exercise.Config
}

// get handles GET /api/session and returns the current session snapshot.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

// start handles POST /api/session and starts a new session.
func (h *SessionHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Exercise == "" {
		writeError(w, http.StatusBadRequest, "exercise is required")
		return
	}

	if h.session.Active() {
		writeError(w, http.StatusConflict, "A session is already active")
		return
	}

	if err := h.session.Start(req.Exercise, req.Config); err != nil {
		if errors.Is(err, exercise.ErrUnknownExercise) {
			writeError(w, http.StatusBadRequest, "Unknown exercise")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, h.session.Snapshot())
}

// stop handles DELETE /api/session and stops the active session.
func (h *SessionHandler) stop(w http.ResponseWriter, r *http.Request) {
	if !h.session.Active() {
		writeError(w, http.StatusNotFound, "No active session")
		return
	}

	h.session.Stop()
	w.WriteHeader(http.StatusNoContent)
}
