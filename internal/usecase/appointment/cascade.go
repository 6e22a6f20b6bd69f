package appointment

import (
	"context"
	"time"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	clientDomain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/client"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

// cancelInTx cancels ap and sweeps its open payments. The caller persists
// ap inside the same transaction.
func cancelInTx(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
	now time.Time,
) (int64, error) {

	domain.Cancel(ap, now)
	return tx.CancelOpenPayments(ctx, ap.ID)
}

// noShowInTx marks ap as NO_SHOW and charges the no-show to the client,
// blocking them at the threshold. The caller persists ap inside the same
// transaction.
func noShowInTx(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
) (*models.Client, bool, error) {

	if err := domain.MarkNoShow(ap); err != nil {
		return nil, false, err
	}

	client, err := tx.LockClient(ctx, ap.ClientID)
	if err != nil {
		return nil, false, err
	}

	wasBlocked := client.IsBlocked
	clientDomain.RecordNoShow(client)

	if err := tx.UpdateClient(ctx, client); err != nil {
		return nil, false, err
	}

	return client, !wasBlocked && client.IsBlocked, nil
}

// touchedDays lists the UTC days an interval covers, for cache
// invalidation.
func touchedDays(ivs ...domain.Interval) []time.Time {
	seen := map[string]bool{}
	var days []time.Time

	for _, iv := range ivs {
		for d := iv.Start.UTC(); d.Before(iv.End); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			if !seen[key] {
				seen[key] = true
				days = append(days, d)
			}
		}
		last := iv.End.Add(-time.Nanosecond).UTC()
		if key := last.Format("2006-01-02"); !seen[key] {
			seen[key] = true
			days = append(days, last)
		}
	}

	return days
}

func invalidate(ctx context.Context, c cache.Availability, ap *models.Appointment, extra ...domain.Interval) {
	ivs := append([]domain.Interval{{Start: ap.StartTime, End: ap.EndTime}}, extra...)
	c.Invalidate(ctx, ap.StaffID, touchedDays(ivs...)...)
}
