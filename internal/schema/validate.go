// Package schema validates nested workout payloads before any derivation or
// store write runs. Validation collects every violated field rather than
// stopping at the first, so a client can fix a whole payload in one pass.
package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/buffbuds/backend/internal/models"
)

// DateFormat is the calendar format accepted for legacy date-string sessions.
const DateFormat = "2006-01-02"

// FieldError is one violated field: where and why.
type FieldError struct {
	Path    string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a payload.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Path + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// errOrNil wraps collected violations, or returns nil if there are none.
func errOrNil(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ValidatePlan checks a plan and all nested exercises and sets.
// path prefixes every reported field, e.g. "workout_plan".
func ValidatePlan(path string, plan models.WorkoutPlan) []FieldError {
	var fields []FieldError

	if strings.TrimSpace(plan.Name) == "" {
		fields = append(fields, FieldError{path + ".name", "name must not be empty"})
	}
	if len(plan.Exercises) == 0 {
		fields = append(fields, FieldError{path + ".exercises", "at least one exercise is required"})
	}
	for i, ex := range plan.Exercises {
		exPath := fmt.Sprintf("%s.exercises[%d]", path, i)
		if len(ex.Sets) == 0 {
			fields = append(fields, FieldError{exPath + ".sets", "at least one set is required"})
		}
		for j, set := range ex.Sets {
			setPath := fmt.Sprintf("%s.sets[%d]", exPath, j)
			if set.Weight < 0 {
				fields = append(fields, FieldError{setPath + ".weight", "weight must be non-negative"})
			}
			if set.Reps <= 0 {
				fields = append(fields, FieldError{setPath + ".reps", "reps must be positive"})
			}
		}
	}
	return fields
}

// ValidateSessionCreate checks a session-create payload. A session_date
// string, when supplied, must be a real calendar date; when absent the
// server assigns the timestamp itself.
func ValidateSessionCreate(req models.SessionCreate) error {
	fields := ValidatePlan("workout_plan", req.Plan)
	if req.SessionDate != nil {
		if _, err := time.Parse(DateFormat, *req.SessionDate); err != nil {
			fields = append(fields, FieldError{"session_date", "must be a valid date in YYYY-MM-DD format"})
		}
	}
	return errOrNil(fields)
}

// ValidateSessionUpdate checks a partial session update. Only fields that
// are present are validated.
func ValidateSessionUpdate(req models.SessionUpdate) error {
	if req.Plan == nil {
		return nil
	}
	return errOrNil(ValidatePlan("workout_plan", *req.Plan))
}
