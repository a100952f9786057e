package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertSavedPlan inserts a reusable plan. Each plan is its own row, so
// adding one never rewrites another user's plan or any sibling plan.
func (db *DB) InsertSavedPlan(ctx context.Context, sp models.SavedPlan) error {
	planJSON, err := json.Marshal(sp.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO saved_plans (id, user_id, plan, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sp.ID, sp.UserID, planJSON, sp.CreatedAt, sp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting saved plan: %w", err)
	}
	return nil
}

// GetSavedPlan retrieves one of the user's saved plans.
func (db *DB) GetSavedPlan(ctx context.Context, id uuid.UUID, userID int) (models.SavedPlan, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, plan, created_at, updated_at
		 FROM saved_plans WHERE id = $1 AND user_id = $2`, id, userID)
	sp, err := scanSavedPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SavedPlan{}, fmt.Errorf("plan %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.SavedPlan{}, fmt.Errorf("querying saved plan: %w", err)
	}
	return sp, nil
}

// ListSavedPlans retrieves all of a user's saved plans, newest first.
func (db *DB) ListSavedPlans(ctx context.Context, userID int) ([]models.SavedPlan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, plan, created_at, updated_at
		 FROM saved_plans WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying saved plans: %w", err)
	}
	defer rows.Close()

	var result []models.SavedPlan
	for rows.Next() {
		sp, err := scanSavedPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning saved plan: %w", err)
		}
		result = append(result, sp)
	}
	return result, rows.Err()
}

// UpdateSavedPlan replaces the plan body of one of the user's saved plans.
func (db *DB) UpdateSavedPlan(ctx context.Context, id uuid.UUID, userID int, plan models.WorkoutPlan) (models.SavedPlan, error) {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return models.SavedPlan{}, fmt.Errorf("encoding plan: %w", err)
	}
	row := db.Pool.QueryRow(ctx, `
		UPDATE saved_plans SET plan = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, plan, created_at, updated_at`,
		id, userID, planJSON)
	sp, err := scanSavedPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SavedPlan{}, fmt.Errorf("plan %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.SavedPlan{}, fmt.Errorf("updating saved plan: %w", err)
	}
	return sp, nil
}

// DeleteSavedPlan removes one of the user's saved plans.
func (db *DB) DeleteSavedPlan(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM saved_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting saved plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plan %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func scanSavedPlan(row pgx.Row) (models.SavedPlan, error) {
	var sp models.SavedPlan
	var planJSON []byte
	if err := row.Scan(&sp.ID, &sp.UserID, &planJSON, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return models.SavedPlan{}, err
	}
	if err := json.Unmarshal(planJSON, &sp.Plan); err != nil {
		return models.SavedPlan{}, fmt.Errorf("decoding plan: %w", err)
	}
	return sp, nil
}
