package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/notify"
)

// UpdateAppointmentInput is a partial patch; nil fields are left alone.
type UpdateAppointmentInput struct {
	ID        uuid.UUID
	StaffID   *uuid.UUID
	StartTime *time.Time
	Status    *string
	Notes     *string
	IsPaid    *bool
	UserID    *uuid.UUID
}

type UpdateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	cache    cache.Availability
	notifier notify.Notifier
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.Availability,
	notifier notify.Notifier,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		audit:    audit,
		cache:    cache,
		notifier: notifier,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	var nextStatus domain.Status
	if in.Status != nil {
		s, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		nextStatus = s
	}

	var (
		updated       *models.Appointment
		previous      domain.Interval
		previousStaff uuid.UUID
		rescheduled   bool
		cancelled     bool
		blockedClient bool
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		ap, err := tx.LockAppointment(ctx, in.ID)
		if err != nil {
			return err
		}

		previous = domain.Interval{Start: ap.StartTime, End: ap.EndTime}
		previousStaff = ap.StaffID
		now := time.Now().UTC()

		// --------------------------------------------------
		// Reschedule runs first
		// --------------------------------------------------
		if in.StaffID != nil || in.StartTime != nil {
			if err := uc.reschedule(ctx, tx, ap, in); err != nil {
				return err
			}
			rescheduled = ap.StaffID != previousStaff || !ap.StartTime.Equal(previous.Start)
		}

		if in.Notes != nil {
			ap.Notes = *in.Notes
		}
		if in.IsPaid != nil {
			ap.IsPaid = *in.IsPaid
		}

		// --------------------------------------------------
		// Status (cancel / no-show carry their cascades)
		// --------------------------------------------------
		if in.Status != nil && statusOf(ap) != nextStatus {
			switch nextStatus {
			case domain.StatusCancelled:
				if _, err := cancelInTx(ctx, tx, ap, now); err != nil {
					return err
				}
				cancelled = true
			case domain.StatusNoShow:
				_, blocked, err := noShowInTx(ctx, tx, ap)
				if err != nil {
					return err
				}
				blockedClient = blocked
			default:
				if err := domain.SetStatus(ap, nextStatus, now); err != nil {
					return err
				}
			}
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		updated = ap
		return nil
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, domain.ErrTimeConflict
		}
		return nil, err
	}

	// --------------------------------------------------
	// After commit
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, previousStaff, touchedDays(previous)...)
	invalidate(ctx, uc.cache, updated)

	switch {
	case cancelled:
		uc.notifier.AppointmentCancelled(ctx, updated)
	case rescheduled:
		uc.notifier.AppointmentRescheduled(ctx, updated)
	}

	action := audit.ActionAppointmentUpdated
	if rescheduled {
		action = audit.ActionAppointmentRescheduled
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"status":        updated.Status,
			"previousStart": previous.Start,
			"previousStaff": previousStaff,
		},
	})
	if blockedClient {
		uc.audit.Dispatch(audit.Event{
			UserID:   in.UserID,
			Action:   audit.ActionClientBlocked,
			Entity:   "client",
			EntityID: &updated.ClientID,
		})
	}

	return updated, nil
}

// reschedule moves ap to the requested staff/start keeping its duration.
// The target staff row is locked before the conflict check.
func (uc *UpdateAppointment) reschedule(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
	in UpdateAppointmentInput,
) error {

	staffID := ap.StaffID
	if in.StaffID != nil {
		staffID = *in.StaffID
	}

	start := ap.StartTime
	if in.StartTime != nil {
		start = in.StartTime.UTC()
	}

	staff, err := tx.LockStaff(ctx, staffID)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return domain.ErrStaffUnavailable
		}
		return err
	}
	if staffID != ap.StaffID && !staff.IsAvailable {
		return domain.ErrStaffUnavailable
	}

	next, err := domain.Reschedule(ap, staffID, start)
	if err != nil {
		return err
	}

	existing, err := tx.ListActiveForStaff(ctx, staffID, next.Start, next.End)
	if err != nil {
		return err
	}
	if domain.HasConflict(existing, next, ap.ID) {
		return domain.ErrTimeConflict
	}

	return nil
}

// statusOf reads the typed status of a stored appointment.
func statusOf(ap *models.Appointment) domain.Status {
	return domain.Status(ap.Status)
}
