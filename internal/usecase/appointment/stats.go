package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
)

type StatsInput struct {
	StaffID *uuid.UUID
	From    time.Time
	To      time.Time
}

type Stats struct {
	Total          int64           `json:"total"`
	Completed      int64           `json:"completed"`
	Cancelled      int64           `json:"cancelled"`
	NoShow         int64           `json:"noShow"`
	CompletionRate float64         `json:"completionRate"`
	NoShowRate     float64         `json:"noShowRate"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

type GetStats struct {
	repo domain.Repository
}

func NewGetStats(repo domain.Repository) *GetStats {
	return &GetStats{repo: repo}
}

// Execute counts appointments starting in [From, To). Rates are
// percentages of the total; revenue only counts COMPLETED and paid.
func (uc *GetStats) Execute(
	ctx context.Context,
	in StatsInput,
) (*Stats, error) {

	if !in.To.After(in.From) {
		return nil, httperr.ErrInvalid("invalid_date_range", "startDate must not be after endDate")
	}

	counts, err := uc.repo.CountByStatus(ctx, domain.StatsFilter{
		StaffID: in.StaffID,
		From:    in.From,
		To:      in.To,
	})
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:          counts.Total,
		Completed:      counts.Completed,
		Cancelled:      counts.Cancelled,
		NoShow:         counts.NoShow,
		CompletionRate: percent(counts.Completed, counts.Total),
		NoShowRate:     percent(counts.NoShow, counts.Total),
		TotalRevenue:   counts.TotalRevenue,
	}, nil
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2).
		InexactFloat64()
}
