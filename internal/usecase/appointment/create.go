package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	clientDomain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/client"
	paymentDomain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uuid.UUID
	StaffID   uuid.UUID
	StartTime time.Time
	Services  []models.ServiceItem
	Status    string
	Notes     string
	CreatedBy *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	cache    cache.Availability
	notifier notify.Notifier
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.Availability,
	notifier notify.Notifier,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		cache:    cache,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	status, err := domain.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}

	duration, total, err := domain.Totals(in.Services)
	if err != nil {
		return nil, err
	}

	if in.StartTime.IsZero() {
		return nil, httperr.ErrInvalid("invalid_date_or_time", "startTime is required")
	}
	slot := domain.NewInterval(in.StartTime.UTC(), duration)

	var created *models.Appointment

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Client (locked before staff; a concurrent no-show
		// block commits either before this check or after the insert)
		// --------------------------------------------------
		client, err := tx.LockClient(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if err := clientDomain.AssertBookable(client); err != nil {
			return err
		}

		// --------------------------------------------------
		// Staff (row lock serialises bookings for this staff)
		// --------------------------------------------------
		staff, err := tx.LockStaff(ctx, in.StaffID)
		if err != nil {
			if httperr.KindOf(err) == httperr.KindNotFound {
				return domain.ErrStaffUnavailable
			}
			return err
		}
		if !staff.IsAvailable {
			return domain.ErrStaffUnavailable
		}

		// --------------------------------------------------
		// Conflict
		// --------------------------------------------------
		existing, err := tx.ListActiveForStaff(ctx, staff.ID, slot.Start, slot.End)
		if err != nil {
			return err
		}
		if domain.HasConflict(existing, slot, uuid.Nil) {
			return domain.ErrTimeConflict
		}

		// --------------------------------------------------
		// Appointment + pending payment
		// --------------------------------------------------
		ap := &models.Appointment{
			ClientID:    client.ID,
			StaffID:     staff.ID,
			StartTime:   slot.Start,
			EndTime:     slot.End,
			Status:      string(status),
			Services:    in.Services,
			TotalAmount: total,
			Notes:       in.Notes,
			CreatedBy:   in.CreatedBy,
		}
		if status == domain.StatusCompleted {
			now := time.Now().UTC()
			ap.CompletedAt = &now
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		payment := models.Payment{
			AppointmentID: &ap.ID,
			ClientID:      client.ID,
			Amount:        total,
			Method:        string(paymentDomain.MethodCash),
			Status:        string(paymentDomain.StatusPending),
		}
		if err := tx.CreatePayment(ctx, &payment); err != nil {
			return err
		}

		ap.Payments = []models.Payment{payment}
		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err) {
			uc.audit.Dispatch(audit.Event{
				UserID: in.CreatedBy,
				Action: audit.ActionAppointmentConflict,
				Entity: "appointment",
				Metadata: map[string]any{
					"staffId": in.StaffID,
					"start":   slot.Start,
					"end":     slot.End,
				},
			})
			return nil, domain.ErrTimeConflict
		}
		return nil, err
	}

	// --------------------------------------------------
	// After commit
	// --------------------------------------------------
	invalidate(ctx, uc.cache, created)
	uc.notifier.AppointmentCreated(ctx, created)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.CreatedBy,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"staffId":     created.StaffID,
			"clientId":    created.ClientID,
			"totalAmount": created.TotalAmount.StringFixed(2),
		},
	})

	return created, nil
}
