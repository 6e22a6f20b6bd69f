package appointment

import (
	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

// FindConflict returns the first appointment in existing that still holds
// its slot and overlaps candidate. exclude skips the appointment being
// rescheduled.
func FindConflict(
	existing []models.Appointment,
	candidate Interval,
	exclude uuid.UUID,
) *models.Appointment {

	for i := range existing {
		ap := &existing[i]

		if exclude != uuid.Nil && ap.ID == exclude {
			continue
		}
		if !Status(ap.Status).HoldsSlot() {
			continue
		}

		booked := Interval{Start: ap.StartTime, End: ap.EndTime}
		if booked.Overlaps(candidate) {
			return ap
		}
	}

	return nil
}

func HasConflict(
	existing []models.Appointment,
	candidate Interval,
	exclude uuid.UUID,
) bool {
	return FindConflict(existing, candidate, exclude) != nil
}
