package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type RefundPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRefundPayment(repo domain.Repository, audit *audit.Dispatcher) *RefundPayment {
	return &RefundPayment{repo: repo, audit: audit}
}

// Execute refunds a PAID or PARTIAL payment. The linked appointment goes
// back to unpaid and the payment's commissions are voided, not deleted.
func (uc *RefundPayment) Execute(
	ctx context.Context,
	id uuid.UUID,
	userID *uuid.UUID,
) (*models.Payment, error) {

	var (
		p      *models.Payment
		voided int64
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		locked, ap, err := lockLinked(ctx, tx, id)
		if err != nil {
			return err
		}
		p = locked

		if err := domain.CanRefund(domain.Status(p.Status)); err != nil {
			return err
		}

		p.Status = string(domain.StatusRefunded)
		if err := tx.UpdatePayment(ctx, p); err != nil {
			return err
		}

		if ap != nil {
			if err := tx.SetAppointmentPaid(ctx, ap.ID, false); err != nil {
				return err
			}
		}

		voided, err = tx.VoidCommissions(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionPaymentRefunded,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"amount":            p.Amount.StringFixed(2),
			"commissionsVoided": voided,
		},
	})

	return p, nil
}
