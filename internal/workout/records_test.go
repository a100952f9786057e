package workout

import (
	"testing"

	"github.com/buffbuds/backend/internal/models"
)

func TestDeriveRecordUpdates(t *testing.T) {
	tests := []struct {
		name      string
		current   models.PersonalRecords
		exercises []models.Exercise
		want      map[models.Lift]float64
	}{
		{
			name:    "new record staged",
			current: models.PersonalRecords{Bench: 200},
			exercises: []models.Exercise{
				{Name: "Bench", Sets: []models.Set{{Weight: 225, Reps: 1}}},
			},
			want: map[models.Lift]float64{models.LiftBench: 225},
		},
		{
			name:    "lower weight stages nothing",
			current: models.PersonalRecords{Bench: 225},
			exercises: []models.Exercise{
				{Name: "Bench", Sets: []models.Set{{Weight: 205, Reps: 5}}},
			},
			want: map[models.Lift]float64{},
		},
		{
			name:    "tie stages nothing",
			current: models.PersonalRecords{Squat: 315},
			exercises: []models.Exercise{
				{Name: "Squat", Sets: []models.Set{{Weight: 315, Reps: 1}}},
			},
			want: map[models.Lift]float64{},
		},
		{
			name:    "case insensitive name match",
			current: models.PersonalRecords{},
			exercises: []models.Exercise{
				{Name: "DEADLIFT", Sets: []models.Set{{Weight: 405, Reps: 1}}},
			},
			want: map[models.Lift]float64{models.LiftDeadlift: 405},
		},
		{
			name:    "unrecognized exercise ignored",
			current: models.PersonalRecords{},
			exercises: []models.Exercise{
				{Name: "Leg Press", Sets: []models.Set{{Weight: 500, Reps: 10}}},
			},
			want: map[models.Lift]float64{},
		},
		{
			name:    "max across sets and repeated exercises",
			current: models.PersonalRecords{Bench: 100},
			exercises: []models.Exercise{
				{Name: "Bench", Sets: []models.Set{{Weight: 135, Reps: 8}, {Weight: 185, Reps: 3}}},
				{Name: "bench", Sets: []models.Set{{Weight: 155, Reps: 5}}},
			},
			want: map[models.Lift]float64{models.LiftBench: 185},
		},
		{
			name:    "multiple lifts in one session",
			current: models.PersonalRecords{Bench: 200, Squat: 300, Deadlift: 400},
			exercises: []models.Exercise{
				{Name: "Bench", Sets: []models.Set{{Weight: 210, Reps: 1}}},
				{Name: "Squat", Sets: []models.Set{{Weight: 295, Reps: 3}}},
				{Name: "Deadlift", Sets: []models.Set{{Weight: 415, Reps: 1}}},
			},
			want: map[models.Lift]float64{
				models.LiftBench:    210,
				models.LiftDeadlift: 415,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveRecordUpdates(tt.current, tt.exercises)
			if len(got) != len(tt.want) {
				t.Fatalf("DeriveRecordUpdates() = %v, want %v", got, tt.want)
			}
			for lift, weight := range tt.want {
				if got[lift] != weight {
					t.Errorf("updates[%s] = %v, want %v", lift, got[lift], weight)
				}
			}
		})
	}
}
