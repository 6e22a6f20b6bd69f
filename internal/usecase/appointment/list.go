package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/dto"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
)

type ListAppointmentsInput struct {
	StaffID  *uuid.UUID
	ClientID *uuid.UUID
	Status   string

	// Date wins over StartDate/EndDate.
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time

	Page  int
	Limit int
}

type ListAppointmentsOutput struct {
	Items []dto.AppointmentListDTO
	Total int64
	Page  int
	Limit int
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) (*ListAppointmentsOutput, error) {

	f := domain.ListFilter{
		StaffID:  in.StaffID,
		ClientID: in.ClientID,
		Page:     in.Page,
		Limit:    in.Limit,
	}

	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(s)
	}

	switch {
	case in.Date != nil:
		from, to := timezone.DayBounds(*in.Date)
		f.From, f.To = &from, &to
	default:
		if in.StartDate != nil {
			from, _ := timezone.DayBounds(*in.StartDate)
			f.From = &from
		}
		if in.EndDate != nil {
			_, to := timezone.DayBounds(*in.EndDate)
			f.To = &to
		}
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}

	apps, total, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for i := range apps {
		out = append(out, dto.AppointmentList(&apps[i]))
	}

	return &ListAppointmentsOutput{
		Items: out,
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}
