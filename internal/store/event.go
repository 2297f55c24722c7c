package store

import (
	"database/sql"
	"time"
)

// FeedbackEvent represents one form-defect occurrence recorded during a
// workout.
type FeedbackEvent struct {
	ID        int64     `json:"id"`
	WorkoutID string    `json:"workout_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	AtSeconds float64   `json:"at_seconds"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRepository provides operations for feedback events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the feedback event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts the events recorded during one workout in a single
// transaction.
func (r *EventRepository) Create(workoutID string, events []FeedbackEvent) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO feedback_events (workout_id, code, message, at_seconds) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(workoutID, e.Code, e.Message, e.AtSeconds); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByWorkoutID retrieves all feedback events for a given workout in the
// order they occurred.
func (r *EventRepository) GetByWorkoutID(workoutID string) ([]FeedbackEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, workout_id, code, message, at_seconds, created_at
		 FROM feedback_events
		 WHERE workout_id = ?
		 ORDER BY at_seconds`,
		workoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []FeedbackEvent
	for rows.Next() {
		var e FeedbackEvent
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Code, &e.Message, &e.AtSeconds, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// DeleteByWorkoutID removes all feedback events for a given workout.
func (r *EventRepository) DeleteByWorkoutID(workoutID string) error {
	_, err := r.db.Exec(`DELETE FROM feedback_events WHERE workout_id = ?`, workoutID)
	return err
}
