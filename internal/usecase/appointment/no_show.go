package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Availability
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.Availability,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute marks the appointment NO_SHOW and charges the client in the same
// transaction. The returned appointment carries the updated client.
func (uc *MarkNoShow) Execute(
	ctx context.Context,
	appointmentID uuid.UUID,
	userID *uuid.UUID,
) (*models.Appointment, error) {

	var (
		ap      *models.Appointment
		blocked bool
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.LockAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}

		client, justBlocked, err := noShowInTx(ctx, tx, ap)
		if err != nil {
			return err
		}
		blocked = justBlocked

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		ap.Client = client
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, ap)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionAppointmentNoShow,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"clientId":    ap.ClientID,
			"noShowCount": ap.Client.NoShowCount,
		},
	})
	if blocked {
		uc.audit.Dispatch(audit.Event{
			UserID:   userID,
			Action:   audit.ActionClientBlocked,
			Entity:   "client",
			EntityID: &ap.ClientID,
		})
	}

	return ap, nil
}
