package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/dto"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
)

type ListPaymentsInput struct {
	Status    string
	Method    string
	ClientID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

type ListPaymentsOutput struct {
	Items []dto.PaymentListDTO
	Total int64
	Page  int
	Limit int
}

type ListPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

func (uc *ListPayments) Execute(
	ctx context.Context,
	in ListPaymentsInput,
) (*ListPaymentsOutput, error) {

	f := domain.ListFilter{
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
	if in.Method != "" {
		m, err := domain.ParseMethod(in.Method)
		if err != nil {
			return nil, err
		}
		f.Method = string(m)
	}

	if in.StartDate != nil {
		from, _ := timezone.DayBounds(*in.StartDate)
		f.From = &from
	}
	if in.EndDate != nil {
		_, to := timezone.DayBounds(*in.EndDate)
		f.To = &to
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}

	payments, total, err := uc.repo.ListPayments(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PaymentListDTO, 0, len(payments))
	for i := range payments {
		items = append(items, dto.PaymentList(&payments[i]))
	}

	return &ListPaymentsOutput{
		Items: items,
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}
