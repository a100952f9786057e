package workout

import "github.com/buffbuds/backend/internal/models"

// TotalVolume sums weight x reps over every set in the plan. It is the only
// source of a session's total_volume; values supplied by clients are
// discarded and replaced with this result.
func TotalVolume(plan models.WorkoutPlan) float64 {
	var total float64
	for _, ex := range plan.Exercises {
		for _, set := range ex.Sets {
			total += set.Weight * float64(set.Reps)
		}
	}
	return total
}
