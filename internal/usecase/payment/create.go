package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type CreatePaymentInput struct {
	ClientID         uuid.UUID
	AppointmentID    *uuid.UUID
	Amount           decimal.Decimal
	Method           string
	Status           string
	GatewayReference string
	UserID           *uuid.UUID
}

type CreatePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreatePayment(repo domain.Repository, audit *audit.Dispatcher) *CreatePayment {
	return &CreatePayment{repo: repo, audit: audit}
}

// Execute records a payment outside the booking flow (deposits, product
// sales, a second partial payment). Only PENDING or PAID can be created
// directly; commissions are generated by confirmation.
func (uc *CreatePayment) Execute(
	ctx context.Context,
	in CreatePaymentInput,
) (*models.Payment, error) {

	if !in.Amount.IsPositive() {
		return nil, httperr.ErrInvalid("invalid_amount", "Amount must be greater than zero")
	}

	method := domain.MethodCash
	if in.Method != "" {
		m, err := domain.ParseMethod(in.Method)
		if err != nil {
			return nil, err
		}
		method = m
	}

	status := domain.StatusPending
	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		if s != domain.StatusPending && s != domain.StatusPartial {
			return nil, httperr.ErrInvalid("invalid_payment_status", "New payments start PENDING or PARTIAL")
		}
		status = s
	}

	p := &models.Payment{
		AppointmentID:    in.AppointmentID,
		ClientID:         in.ClientID,
		Amount:           in.Amount.Round(2),
		Method:           string(method),
		Status:           string(status),
		GatewayReference: in.GatewayReference,
	}

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		ok, err := tx.ClientExists(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.ErrNotFound("client_not_found", "Client not found")
		}

		if in.AppointmentID != nil {
			ap, err := tx.LockAppointment(ctx, *in.AppointmentID)
			if err != nil {
				return err
			}
			if ap.ClientID != in.ClientID {
				return httperr.ErrInvalid("client_mismatch", "Appointment belongs to another client")
			}
		}

		return tx.CreatePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   audit.ActionPaymentCreated,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"amount": p.Amount.StringFixed(2),
			"method": p.Method,
		},
	})

	return p, nil
}
