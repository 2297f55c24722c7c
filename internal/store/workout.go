package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Workout represents a completed or in-progress workout session stored in
// the database.
type Workout struct {
	ID                string
	Exercise          string
	PlankVariant      string
	TargetReps        int
	TargetHoldSeconds float64
	Reps              int
	HoldSeconds       float64
	Completed         bool
	StartedAt         time.Time
	EndedAt           time.Time
}

// WorkoutRepository provides CRUD operations for workouts.
type WorkoutRepository struct {
	db *sql.DB
}

// Workouts returns the workout repository for this store.
func (s *Store) Workouts() *WorkoutRepository {
	return &WorkoutRepository{db: s.db}
}

// Create inserts a new workout into the database.
func (r *WorkoutRepository) Create(w *Workout) error {
	if w.StartedAt.IsZero() {
		w.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO workouts (id, exercise, plank_variant, target_reps, target_hold_seconds,
		                       reps, hold_seconds, completed, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Exercise, w.PlankVariant, w.TargetReps, w.TargetHoldSeconds,
		w.Reps, w.HoldSeconds, boolToInt(w.Completed), w.StartedAt, w.EndedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a workout by its ID.
func (r *WorkoutRepository) GetByID(id string) (*Workout, error) {
	w := &Workout{}
	var completed int

	err := r.db.QueryRow(
		`SELECT id, exercise, plank_variant, target_reps, target_hold_seconds,
		        reps, hold_seconds, completed, started_at, ended_at
		 FROM workouts WHERE id = ?`,
		id,
	).Scan(&w.ID, &w.Exercise, &w.PlankVariant, &w.TargetReps, &w.TargetHoldSeconds,
		&w.Reps, &w.HoldSeconds, &completed, &w.StartedAt, &w.EndedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	w.Completed = completed != 0
	return w, nil
}

// List retrieves all workouts from the database, newest first.
func (r *WorkoutRepository) List() ([]*Workout, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise, plank_variant, target_reps, target_hold_seconds,
		        reps, hold_seconds, completed, started_at, ended_at
		 FROM workouts ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w := &Workout{}
		var completed int

		err := rows.Scan(&w.ID, &w.Exercise, &w.PlankVariant, &w.TargetReps, &w.TargetHoldSeconds,
			&w.Reps, &w.HoldSeconds, &completed, &w.StartedAt, &w.EndedAt)
		if err != nil {
			return nil, err
		}

		w.Completed = completed != 0
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

// ListByExercise retrieves all workouts for one exercise, newest first.
func (r *WorkoutRepository) ListByExercise(exercise string) ([]*Workout, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise, plank_variant, target_reps, target_hold_seconds,
		        reps, hold_seconds, completed, started_at, ended_at
		 FROM workouts WHERE exercise = ? ORDER BY started_at DESC`,
		exercise,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w := &Workout{}
		var completed int

		err := rows.Scan(&w.ID, &w.Exercise, &w.PlankVariant, &w.TargetReps, &w.TargetHoldSeconds,
			&w.Reps, &w.HoldSeconds, &completed, &w.StartedAt, &w.EndedAt)
		if err != nil {
			return nil, err
		}

		w.Completed = completed != 0
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

// Update updates the results of an existing workout.
func (r *WorkoutRepository) Update(w *Workout) error {
	result, err := r.db.Exec(
		`UPDATE workouts SET reps = ?, hold_seconds = ?, completed = ?, ended_at = ?
		 WHERE id = ?`,
		w.Reps, w.HoldSeconds, boolToInt(w.Completed), w.EndedAt, w.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a workout from the database by its ID.
func (r *WorkoutRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
