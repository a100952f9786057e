package workout

import "github.com/buffbuds/backend/internal/models"

// DeriveRecordUpdates compares a session's exercises against the user's
// stored records and stages the minimal set of updates: only recognized
// lifts whose max logged weight strictly exceeds the stored record appear in
// the result. Ties and unrecognized exercise names stage nothing.
//
// The staged values are applied with conditional writes (raise-only), so a
// concurrent submission of a higher weight can never be overwritten by a
// stale lower one regardless of arrival order.
func DeriveRecordUpdates(current models.PersonalRecords, exercises []models.Exercise) map[models.Lift]float64 {
	best := make(map[models.Lift]float64)
	for _, ex := range exercises {
		lift, ok := models.LiftForName(ex.Name)
		if !ok {
			continue
		}
		for _, set := range ex.Sets {
			if set.Weight > best[lift] {
				best[lift] = set.Weight
			}
		}
	}

	updates := make(map[models.Lift]float64)
	for lift, weight := range best {
		if weight > current.For(lift) {
			updates[lift] = weight
		}
	}
	return updates
}
