package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
)

// Availability caches computed day views per staff member. Implementations
// must treat every failure as a miss: the cache is never the source of
// truth.
type Availability interface {
	Get(ctx context.Context, staffID uuid.UUID, day time.Time, slot time.Duration) (*domain.Availability, bool)
	Set(ctx context.Context, staffID uuid.UUID, day time.Time, slot time.Duration, v *domain.Availability)
	Invalidate(ctx context.Context, staffID uuid.UUID, days ...time.Time)
	// InvalidateStaff drops every cached day of the staff member, for
	// changes that are not tied to one day (working hours, availability).
	InvalidateStaff(ctx context.Context, staffID uuid.UUID)
}

type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID, time.Time, time.Duration) (*domain.Availability, bool) {
	return nil, false
}

func (Noop) Set(context.Context, uuid.UUID, time.Time, time.Duration, *domain.Availability) {}

func (Noop) Invalidate(context.Context, uuid.UUID, ...time.Time) {}

func (Noop) InvalidateStaff(context.Context, uuid.UUID) {}
