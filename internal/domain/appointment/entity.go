package appointment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

// ===============================
// Service snapshot
// ===============================

// Totals sums the durations and prices of the booked services.
func Totals(services []models.ServiceItem) (time.Duration, decimal.Decimal, error) {
	if len(services) == 0 {
		return 0, decimal.Zero, httperr.ErrInvalid("services_required", "At least one service is required")
	}

	minutes := 0
	total := decimal.Zero

	for _, s := range services {
		if s.Duration <= 0 {
			return 0, decimal.Zero, httperr.ErrInvalid("invalid_service_duration", "Service duration must be positive")
		}
		if s.Price.IsNegative() {
			return 0, decimal.Zero, httperr.ErrInvalid("invalid_service_price", "Service price cannot be negative")
		}
		minutes += s.Duration
		total = total.Add(s.Price)
	}

	return time.Duration(minutes) * time.Minute, total.Round(2), nil
}

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) {
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// SetStatus applies a non-cascading status change. COMPLETED stamps
// completedAt the first time it is reached.
func SetStatus(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanPatchStatus(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)
	if next == StatusCompleted && ap.CompletedAt == nil {
		ap.CompletedAt = &now
	}
	return nil
}

// Reschedule moves the appointment keeping its original duration and
// returns the new interval.
func Reschedule(ap *models.Appointment, staffID uuid.UUID, start time.Time) (Interval, error) {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return Interval{}, err
	}

	duration := ap.EndTime.Sub(ap.StartTime)
	next := NewInterval(start.UTC(), duration)

	ap.StaffID = staffID
	ap.StartTime = next.Start
	ap.EndTime = next.End
	return next, nil
}
