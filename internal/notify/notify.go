package notify

import (
	"context"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

// Notifier hands appointment events to the out-of-process delivery
// workers. Calls happen after the write committed; failures are logged by
// the implementation and never undo the booking.
type Notifier interface {
	AppointmentCreated(ctx context.Context, ap *models.Appointment)
	AppointmentRescheduled(ctx context.Context, ap *models.Appointment)
	AppointmentCancelled(ctx context.Context, ap *models.Appointment)
}

type Noop struct{}

func (Noop) AppointmentCreated(context.Context, *models.Appointment)     {}
func (Noop) AppointmentRescheduled(context.Context, *models.Appointment) {}
func (Noop) AppointmentCancelled(context.Context, *models.Appointment)   {}
