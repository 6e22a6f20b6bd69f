package appointment

import (
	"context"
	"time"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache cache.Availability
}

func NewGetAvailability(repo domain.Repository, cache cache.Availability) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

// Execute returns the staff member's non-cancelled appointments for the
// UTC day of in.Date. With a positive in.Duration it also lists the free
// slots of that length inside the working hours.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	dayStart, dayEnd := timezone.DayBounds(in.Date)

	if cached, ok := uc.cache.Get(ctx, in.StaffID, dayStart, in.Duration); ok {
		return cached, nil
	}

	staff, err := uc.repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListDayForStaff(ctx, staff.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	out := &domain.Availability{
		StaffID:      staff.ID,
		Date:         dayStart.Format(timezone.DateLayout),
		Appointments: appointments,
	}

	if in.Duration > 0 {
		slots, err := uc.freeSlots(ctx, staff, dayStart, dayEnd, in)
		if err != nil {
			return nil, err
		}
		out.Slots = slots
	}

	uc.cache.Set(ctx, in.StaffID, dayStart, in.Duration, out)
	return out, nil
}

func (uc *GetAvailability) freeSlots(
	ctx context.Context,
	staff *models.Staff,
	dayStart time.Time,
	dayEnd time.Time,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if !staff.IsAvailable || domain.IsBlockedDate(staff, dayStart) {
		return []domain.TimeSlot{}, nil
	}

	wh, err := uc.repo.GetWorkingHours(ctx, staff.ID, int(dayStart.Weekday()))
	if err != nil {
		return nil, err
	}

	window, ok := domain.NewWorkWindow(dayStart, wh)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	// appointments that spill over from the previous day still block
	booked, err := uc.repo.ListActiveForStaff(ctx, staff.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(window, booked, in.Duration), nil
}
