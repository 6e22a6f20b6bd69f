package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/notify"
)

type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	cache    cache.Availability
	notifier notify.Notifier
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.Availability,
	notifier notify.Notifier,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		cache:    cache,
		notifier: notifier,
	}
}

// Execute cancels the appointment and its PENDING/PARTIAL payments in one
// transaction. Cancelling an already cancelled appointment changes
// nothing.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uuid.UUID,
	userID *uuid.UUID,
) (*models.Appointment, error) {

	var (
		ap        *models.Appointment
		cancelled int64
		changed   bool
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.LockAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}

		if statusOf(ap) == domain.StatusCancelled {
			return nil
		}

		cancelled, err = cancelInTx(ctx, tx, ap, time.Now().UTC())
		if err != nil {
			return err
		}
		changed = true

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	if !changed {
		return ap, nil
	}

	invalidate(ctx, uc.cache, ap)
	uc.notifier.AppointmentCancelled(ctx, ap)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"paymentsCancelled": cancelled,
		},
	})

	return ap, nil
}
