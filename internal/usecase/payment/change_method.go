package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type ChangeMethod struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangeMethod(repo domain.Repository, audit *audit.Dispatcher) *ChangeMethod {
	return &ChangeMethod{repo: repo, audit: audit}
}

func (uc *ChangeMethod) Execute(
	ctx context.Context,
	id uuid.UUID,
	rawMethod string,
	userID *uuid.UUID,
) (*models.Payment, error) {

	method, err := domain.ParseMethod(rawMethod)
	if err != nil {
		return nil, err
	}

	var (
		p        *models.Payment
		previous string
	)

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		var err error
		p, err = tx.LockPayment(ctx, id)
		if err != nil {
			return err
		}

		if err := domain.CanChangeMethod(domain.Status(p.Status)); err != nil {
			return err
		}

		previous = p.Method
		p.Method = string(method)
		return tx.UpdatePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	if previous != p.Method {
		uc.audit.Dispatch(audit.Event{
			UserID:   userID,
			Action:   audit.ActionPaymentMethodChanged,
			Entity:   "payment",
			EntityID: &p.ID,
			Metadata: map[string]any{
				"from": previous,
				"to":   p.Method,
			},
		})
	}

	return p, nil
}
