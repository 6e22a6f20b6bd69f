package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {
	return uc.repo.GetAppointmentDetail(ctx, id)
}
