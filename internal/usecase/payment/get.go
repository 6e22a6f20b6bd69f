package payment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type GetPayment struct {
	repo domain.Repository
}

func NewGetPayment(repo domain.Repository) *GetPayment {
	return &GetPayment{repo: repo}
}

func (uc *GetPayment) Execute(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return uc.repo.GetPayment(ctx, id)
}
