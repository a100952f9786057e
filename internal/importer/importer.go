// Package importer loads legacy workout history from a SQLite export into
// the store. The legacy schema is one flat row per logged exercise; each row
// becomes a session with a single-exercise plan, flowing through the same
// validation, volume, and personal-record path as a live request.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/buffbuds/backend/internal/models"
	"github.com/buffbuds/backend/internal/schema"
	"github.com/buffbuds/backend/internal/workout"
)

// Stats tracks import progress.
type Stats struct {
	RowsRead     int
	RowsImported int
	RowsRejected int
	RowsErrored  int

	RejectedRows []string
}

// legacyRow is one row of the legacy workout_logs table.
type legacyRow struct {
	SessionDate    string
	ExerciseName   string
	NumSets        int
	NumReps        int
	ExerciseWeight float64
	Notes          sql.NullString
}

// Importer reads a legacy SQLite export and logs each row as a session.
type Importer struct {
	svc    *workout.Service
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(svc *workout.Service, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{svc: svc, log: log, dryRun: dryRun}
}

// Import processes every row of the workout_logs table in the given SQLite
// file, importing on behalf of userID.
func (imp *Importer) Import(ctx context.Context, path string, userID int) (*Stats, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &imp.stats, fmt.Errorf("opening sqlite export: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT session_date, exercise_name, num_sets, num_reps, exercise_weight, notes
		FROM workout_logs
		ORDER BY session_date ASC`)
	if err != nil {
		return &imp.stats, fmt.Errorf("querying workout_logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row legacyRow
		if err := rows.Scan(&row.SessionDate, &row.ExerciseName, &row.NumSets,
			&row.NumReps, &row.ExerciseWeight, &row.Notes); err != nil {
			return &imp.stats, fmt.Errorf("scanning row: %w", err)
		}
		imp.stats.RowsRead++
		imp.importRow(ctx, row, userID)
	}
	if err := rows.Err(); err != nil {
		return &imp.stats, fmt.Errorf("reading workout_logs: %w", err)
	}

	return &imp.stats, nil
}

func (imp *Importer) importRow(ctx context.Context, row legacyRow, userID int) {
	req, err := convertRow(row)
	if err != nil {
		imp.stats.RowsRejected++
		imp.stats.RejectedRows = append(imp.stats.RejectedRows,
			fmt.Sprintf("%s %s: %v", row.SessionDate, row.ExerciseName, err))
		return
	}

	if imp.dryRun {
		imp.stats.RowsImported++
		return
	}

	if _, err := imp.svc.CreateSession(ctx, userID, req); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			imp.stats.RowsRejected++
			imp.stats.RejectedRows = append(imp.stats.RejectedRows,
				fmt.Sprintf("%s %s: %v", row.SessionDate, row.ExerciseName, err))
			return
		}
		imp.log.Error("importing row", "date", row.SessionDate, "exercise", row.ExerciseName, "error", err)
		imp.stats.RowsErrored++
		return
	}
	imp.stats.RowsImported++
}

// convertRow expands a flat legacy row into a single-exercise session
// payload. The legacy format repeats one weight/rep combination across all
// sets.
func convertRow(row legacyRow) (models.SessionCreate, error) {
	if row.NumSets <= 0 {
		return models.SessionCreate{}, fmt.Errorf("num_sets must be positive, got %d", row.NumSets)
	}

	sets := make([]models.Set, row.NumSets)
	for i := range sets {
		sets[i] = models.Set{Weight: row.ExerciseWeight, Reps: row.NumReps}
	}

	req := models.SessionCreate{
		SessionDate: &row.SessionDate,
		Plan: models.WorkoutPlan{
			Name: row.ExerciseName,
			Exercises: []models.Exercise{{
				Name: row.ExerciseName,
				Type: "strength",
				Sets: sets,
			}},
		},
	}
	if row.Notes.Valid && row.Notes.String != "" {
		notes := row.Notes.String
		req.Notes = &notes
	}

	if err := schema.ValidateSessionCreate(req); err != nil {
		return models.SessionCreate{}, err
	}
	return req, nil
}
