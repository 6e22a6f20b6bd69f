package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type AvailabilityInput struct {
	StaffID  uuid.UUID
	Date     time.Time
	Duration time.Duration
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Availability struct {
	StaffID      uuid.UUID            `json:"staffId"`
	Date         string               `json:"date"`
	Appointments []models.Appointment `json:"appointments"`
	Slots        []TimeSlot           `json:"slots"`
}

// FreeSlots walks the shift in steps of d and keeps every slot that
// avoids the break and every booked appointment. booked must be ordered
// by start time.
func FreeSlots(w WorkWindow, booked []models.Appointment, d time.Duration) []TimeSlot {
	slots := []TimeSlot{}
	if d <= 0 {
		return slots
	}

	apIdx := 0

	for cur := w.Shift.Start; !cur.Add(d).After(w.Shift.End); cur = cur.Add(d) {
		slot := NewInterval(cur, d)

		if !w.Fits(slot) {
			continue
		}

		// appointments that ended before this slot can never matter again
		for apIdx < len(booked) && !booked[apIdx].EndTime.After(slot.Start) {
			apIdx++
		}

		if HasConflict(booked[apIdx:], slot, uuid.Nil) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: slot.Start.Format("15:04"),
			End:   slot.End.Format("15:04"),
		})
	}

	return slots
}
