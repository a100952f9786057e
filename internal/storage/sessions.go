package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/buffbuds/backend/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertSession inserts a workout session with its embedded plan snapshot.
func (db *DB) InsertSession(ctx context.Context, s models.WorkoutSession) error {
	planJSON, err := json.Marshal(s.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, created_at, session_date, notes, workout_plan, total_volume)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.CreatedAt, s.SessionDate, s.Notes, planJSON, s.TotalVolume)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (models.WorkoutSession, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, created_at, session_date, notes, workout_plan, total_volume
		 FROM workout_sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.WorkoutSession{}, fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("querying session: %w", err)
	}
	return s, nil
}

// UpdateSession applies a partial update in a single statement. The plan and
// its recomputed total volume travel together, so the stored volume always
// matches whichever plan value wins the write.
func (db *DB) UpdateSession(ctx context.Context, patch workout.SessionPatch) (models.WorkoutSession, error) {
	var planJSON []byte
	if patch.Plan != nil {
		var err error
		planJSON, err = json.Marshal(patch.Plan)
		if err != nil {
			return models.WorkoutSession{}, fmt.Errorf("encoding plan: %w", err)
		}
	}

	row := db.Pool.QueryRow(ctx, `
		UPDATE workout_sessions
		SET notes = COALESCE($3, notes),
		    workout_plan = COALESCE($4, workout_plan),
		    total_volume = COALESCE($5, total_volume)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, created_at, session_date, notes, workout_plan, total_volume`,
		patch.ID, patch.UserID, patch.Notes, planJSON, patch.TotalVolume)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.WorkoutSession{}, fmt.Errorf("session %s: %w", patch.ID, apperr.ErrNotFound)
	}
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("updating session: %w", err)
	}
	return s, nil
}

// DeleteSession removes a session owned by userID.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// ListSessions retrieves a user's sessions, newest first.
func (db *DB) ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, created_at, session_date, notes, workout_plan, total_volume
		 FROM workout_sessions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanSession(row pgx.Row) (models.WorkoutSession, error) {
	var s models.WorkoutSession
	var planJSON []byte
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.SessionDate, &s.Notes, &planJSON, &s.TotalVolume); err != nil {
		return models.WorkoutSession{}, err
	}
	if err := json.Unmarshal(planJSON, &s.Plan); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("decoding plan: %w", err)
	}
	return s, nil
}
