package models

import (
	"time"

	"github.com/google/uuid"
)

// Set is a single set within an exercise: how much weight for how many reps.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// Exercise is a named movement with its ordered sets.
type Exercise struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Sets []Set  `json:"sets"`
}

// WorkoutPlan is the nested plan structure a session is logged against.
// Sessions embed a snapshot of the plan as it existed at logging time.
type WorkoutPlan struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises"`
}

// WorkoutSession is one logged training session.
// TotalVolume is derived server-side and never trusted from input.
type WorkoutSession struct {
	ID          uuid.UUID   `json:"id"`
	UserID      int         `json:"user_id"`
	CreatedAt   time.Time   `json:"created_at"`
	SessionDate *string     `json:"session_date,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	Plan        WorkoutPlan `json:"workout_plan"`
	TotalVolume float64     `json:"total_volume"`
}

// SessionCreate is the request body for logging a new session.
// TotalVolume is accepted for wire compatibility with older clients but
// always recomputed from the plan.
type SessionCreate struct {
	SessionDate *string     `json:"session_date,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	TotalVolume *float64    `json:"total_volume,omitempty"`
	Plan        WorkoutPlan `json:"workout_plan"`
}

// SessionUpdate is a partial update: nil fields are left untouched.
type SessionUpdate struct {
	Notes *string      `json:"notes,omitempty"`
	Plan  *WorkoutPlan `json:"workout_plan,omitempty"`
}

// SavedPlan is a reusable plan a user keeps independent of any session.
type SavedPlan struct {
	ID        uuid.UUID   `json:"id"`
	UserID    int         `json:"user_id"`
	Plan      WorkoutPlan `json:"workout_plan"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
