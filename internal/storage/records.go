package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// prColumns maps lifts to their physical columns. Column names are taken
// from this map only, never from request input.
var prColumns = map[models.Lift]string{
	models.LiftBench:    "bench_pr",
	models.LiftSquat:    "squat_pr",
	models.LiftDeadlift: "deadlift_pr",
}

// GetRecords retrieves a user's personal records.
func (db *DB) GetRecords(ctx context.Context, userID int) (models.PersonalRecords, error) {
	var pr models.PersonalRecords
	err := db.Pool.QueryRow(ctx,
		`SELECT bench_pr, squat_pr, deadlift_pr FROM user_profiles WHERE id = $1`, userID,
	).Scan(&pr.Bench, &pr.Squat, &pr.Deadlift)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PersonalRecords{}, fmt.Errorf("profile %d: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return models.PersonalRecords{}, fmt.Errorf("querying records: %w", err)
	}
	return pr, nil
}

// RaiseRecord raises one lift's record to weight, but only if weight exceeds
// the stored value. The comparison happens inside the single UPDATE, so
// concurrent submissions can never regress a record: whichever order the
// writes land in, the stored value ends at the max of all submitted weights.
// Returns whether the write was applied.
func (db *DB) RaiseRecord(ctx context.Context, userID int, lift models.Lift, weight float64) (bool, error) {
	col, ok := prColumns[lift]
	if !ok {
		return false, fmt.Errorf("unrecognized lift %q", lift)
	}

	tag, err := db.Pool.Exec(ctx,
		fmt.Sprintf(`UPDATE user_profiles SET %s = $2, updated_at = NOW() WHERE id = $1 AND %s < $2`, col, col),
		userID, weight)
	if err != nil {
		return false, fmt.Errorf("raising %s record: %w", lift, err)
	}
	return tag.RowsAffected() > 0, nil
}
