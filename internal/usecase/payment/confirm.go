package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type ConfirmPaymentInput struct {
	ID               uuid.UUID
	Method           string
	GatewayReference string
	UserID           *uuid.UUID
}

type ConfirmPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewConfirmPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *ConfirmPayment {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConfirmPayment{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// Execute marks the payment PAID. When it belongs to an appointment the
// appointment becomes paid and the staff member's commission is recorded,
// all in one transaction.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	in ConfirmPaymentInput,
) (*models.Payment, error) {

	var method domain.Method
	if in.Method != "" {
		m, err := domain.ParseMethod(in.Method)
		if err != nil {
			return nil, err
		}
		method = m
	}

	var p *models.Payment

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		locked, ap, err := lockLinked(ctx, tx, in.ID)
		if err != nil {
			return err
		}
		p = locked

		if err := domain.CanConfirm(domain.Status(p.Status)); err != nil {
			return err
		}

		paidAt := now()
		p.Status = string(domain.StatusPaid)
		p.PaidAt = &paidAt
		if method != "" {
			p.Method = string(method)
		}
		if in.GatewayReference != "" {
			p.GatewayReference = in.GatewayReference
		}

		if err := tx.UpdatePayment(ctx, p); err != nil {
			return err
		}

		if ap == nil {
			return nil
		}

		// --------------------------------------------------
		// Appointment + commission
		// --------------------------------------------------
		if err := tx.SetAppointmentPaid(ctx, ap.ID, true); err != nil {
			return err
		}

		staff, err := tx.GetStaffWithTiers(ctx, ap.StaffID)
		if err != nil {
			return err
		}

		policy := domain.PolicyFromStaff(staff)
		if policy.Type == domain.CommissionTable && len(policy.Tiers) == 0 {
			uc.log.Warn("TABLE commission without tiers",
				zap.String("staff_id", staff.ID.String()),
				zap.String("payment_id", p.ID.String()),
			)
		}

		commission := models.Commission{
			PaymentID: p.ID,
			StaffID:   staff.ID,
			Amount:    policy.Commission(p.Amount),
			IsPaid:    true,
		}
		if err := tx.CreateCommission(ctx, &commission); err != nil {
			return err
		}

		p.Commissions = append(p.Commissions, commission)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   audit.ActionPaymentConfirmed,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"amount":        p.Amount.StringFixed(2),
			"method":        p.Method,
			"appointmentId": p.AppointmentID,
		},
	})

	return p, nil
}

// lockLinked locks the linked appointment before the payment row, the
// same order cancel and no-show take.
func lockLinked(
	ctx context.Context,
	tx domain.Repository,
	id uuid.UUID,
) (*models.Payment, *models.Appointment, error) {

	current, err := tx.GetPayment(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var ap *models.Appointment
	if current.AppointmentID != nil {
		ap, err = tx.LockAppointment(ctx, *current.AppointmentID)
		if err != nil {
			return nil, nil, err
		}
	}

	p, err := tx.LockPayment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, ap, nil
}

func now() time.Time {
	return time.Now().UTC()
}
