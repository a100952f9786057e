package models

import "strings"

// Lift is a recognized lift category tracked for personal records.
type Lift string

const (
	LiftBench    Lift = "bench"
	LiftSquat    Lift = "squat"
	LiftDeadlift Lift = "deadlift"
)

// LiftForName matches an exercise name against the recognized lift
// categories, case-insensitively. Unrecognized names are not an error; they
// simply don't count toward personal records.
func LiftForName(name string) (Lift, bool) {
	switch Lift(strings.ToLower(strings.TrimSpace(name))) {
	case LiftBench:
		return LiftBench, true
	case LiftSquat:
		return LiftSquat, true
	case LiftDeadlift:
		return LiftDeadlift, true
	}
	return "", false
}

// PersonalRecords is a user's max weight ever logged per recognized lift.
// Each value is monotonically non-decreasing over time.
type PersonalRecords struct {
	Bench    float64 `json:"bench_pr"`
	Squat    float64 `json:"squat_pr"`
	Deadlift float64 `json:"deadlift_pr"`
}

// For returns the stored record for a lift.
func (pr PersonalRecords) For(l Lift) float64 {
	switch l {
	case LiftBench:
		return pr.Bench
	case LiftSquat:
		return pr.Squat
	case LiftDeadlift:
		return pr.Deadlift
	}
	return 0
}
