package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
)

type Bucket struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Report struct {
	StartDate string               `json:"startDate"`
	EndDate   string               `json:"endDate"`
	All       Bucket               `json:"all"`
	Paid      Bucket               `json:"paid"`
	Pending   Bucket               `json:"pending"`
	Refunded  Bucket               `json:"refunded"`
	ByMethod  []domain.MethodTotal `json:"byMethod"`
}

type GetReport struct {
	repo domain.Repository
}

func NewGetReport(repo domain.Repository) *GetReport {
	return &GetReport{repo: repo}
}

// Execute summarises payments created in [from, to). Pending includes
// PARTIAL; the per-method breakdown only counts PAID.
func (uc *GetReport) Execute(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (*Report, error) {

	if !to.After(from) {
		return nil, httperr.ErrInvalid("invalid_date_range", "startDate must not be after endDate")
	}

	byStatus, err := uc.repo.TotalsByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byMethod, err := uc.repo.PaidTotalsByMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &Report{
		StartDate: from.UTC().Format("2006-01-02"),
		EndDate:   to.UTC().Add(-time.Nanosecond).Format("2006-01-02"),
		All:       Bucket{Total: decimal.Zero},
		Paid:      Bucket{Total: decimal.Zero},
		Pending:   Bucket{Total: decimal.Zero},
		Refunded:  Bucket{Total: decimal.Zero},
		ByMethod:  byMethod,
	}

	for _, row := range byStatus {
		out.All.add(row)

		switch domain.Status(row.Status) {
		case domain.StatusPaid:
			out.Paid.add(row)
		case domain.StatusPending, domain.StatusPartial:
			out.Pending.add(row)
		case domain.StatusRefunded:
			out.Refunded.add(row)
		}
	}

	return out, nil
}

func (b *Bucket) add(row domain.StatusTotal) {
	b.Count += row.Count
	b.Total = b.Total.Add(row.Total)
}
