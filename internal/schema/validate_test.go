package schema

import (
	"strings"
	"testing"

	"github.com/buffbuds/backend/internal/models"
)

func validPlan() models.WorkoutPlan {
	return models.WorkoutPlan{
		Name: "Push Day",
		Exercises: []models.Exercise{
			{
				Name: "Bench Press",
				Type: "strength",
				Sets: []models.Set{
					{Weight: 135, Reps: 10},
					{Weight: 185, Reps: 5},
				},
			},
		},
	}
}

func TestValidatePlanValid(t *testing.T) {
	if fields := ValidatePlan("workout_plan", validPlan()); len(fields) != 0 {
		t.Errorf("ValidatePlan() = %v, want no violations", fields)
	}
}

func TestValidatePlanBodyweightSet(t *testing.T) {
	plan := validPlan()
	plan.Exercises[0].Sets = []models.Set{{Weight: 0, Reps: 12}}
	if fields := ValidatePlan("workout_plan", plan); len(fields) != 0 {
		t.Errorf("ValidatePlan() = %v, want zero-weight set accepted", fields)
	}
}

// TestValidatePlanCollectsAllViolations verifies that validation reports every
// violated field in a payload, not just the first one encountered.
func TestValidatePlanCollectsAllViolations(t *testing.T) {
	plan := models.WorkoutPlan{
		Name: "  ",
		Exercises: []models.Exercise{
			{
				Name: "Squat",
				Sets: []models.Set{
					{Weight: -10, Reps: 0},
				},
			},
			{Name: "Deadlift"},
		},
	}
	fields := ValidatePlan("workout_plan", plan)
	want := []string{
		"workout_plan.name",
		"workout_plan.exercises[0].sets[0].weight",
		"workout_plan.exercises[0].sets[0].reps",
		"workout_plan.exercises[1].sets",
	}
	if len(fields) != len(want) {
		t.Fatalf("ValidatePlan() reported %d violations, want %d: %v", len(fields), len(want), fields)
	}
	for i, path := range want {
		if fields[i].Path != path {
			t.Errorf("fields[%d].Path = %q, want %q", i, fields[i].Path, path)
		}
	}
}

func TestValidatePlanEmptyExercises(t *testing.T) {
	plan := models.WorkoutPlan{Name: "Rest Day"}
	fields := ValidatePlan("workout_plan", plan)
	if len(fields) != 1 {
		t.Fatalf("ValidatePlan() = %v, want exactly one violation", fields)
	}
	if fields[0].Path != "workout_plan.exercises" {
		t.Errorf("fields[0].Path = %q, want %q", fields[0].Path, "workout_plan.exercises")
	}
}

func TestValidateSessionCreateDates(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid date", "2024-03-15", false},
		{"leap day", "2024-02-29", false},
		{"impossible day", "2024-02-30", true},
		{"month out of range", "2024-13-01", true},
		{"wrong separator", "2024/03/15", true},
		{"datetime not accepted", "2024-03-15T10:00:00Z", true},
		{"empty string", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.SessionCreate{SessionDate: &tt.date, Plan: validPlan()}
			err := ValidateSessionCreate(req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionCreate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSessionCreateNilDate(t *testing.T) {
	req := models.SessionCreate{Plan: validPlan()}
	if err := ValidateSessionCreate(req); err != nil {
		t.Errorf("ValidateSessionCreate() = %v, want nil when session_date omitted", err)
	}
}

func TestValidateSessionUpdateNilPlan(t *testing.T) {
	notes := "felt strong today"
	if err := ValidateSessionUpdate(models.SessionUpdate{Notes: &notes}); err != nil {
		t.Errorf("ValidateSessionUpdate() = %v, want nil for notes-only update", err)
	}
}

func TestValidateSessionUpdateBadPlan(t *testing.T) {
	plan := models.WorkoutPlan{Name: "Legs"}
	err := ValidateSessionUpdate(models.SessionUpdate{Plan: &plan})
	if err == nil {
		t.Fatal("expected validation error for plan with no exercises")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(verr.Fields) != 1 {
		t.Errorf("len(Fields) = %d, want 1", len(verr.Fields))
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{"workout_plan.name", "name must not be empty"},
		{"session_date", "must be a valid date in YYYY-MM-DD format"},
	}}
	msg := err.Error()
	if !strings.Contains(msg, "workout_plan.name") || !strings.Contains(msg, "session_date") {
		t.Errorf("Error() = %q, want both field paths mentioned", msg)
	}
}
