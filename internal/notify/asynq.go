package notify

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AsynqNotifier struct {
	client enqueuer
	lead   time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewAsynqNotifier(client *asynq.Client, lead time.Duration, log *zap.Logger) *AsynqNotifier {
	return &AsynqNotifier{
		client: client,
		lead:   lead,
		now:    time.Now,
		log:    log,
	}
}

func (n *AsynqNotifier) AppointmentCreated(ctx context.Context, ap *models.Appointment) {
	n.enqueue(ctx, TypeAppointmentConfirmation, ap)
	n.scheduleReminder(ctx, ap)
}

func (n *AsynqNotifier) AppointmentRescheduled(ctx context.Context, ap *models.Appointment) {
	n.enqueue(ctx, TypeAppointmentConfirmation, ap)
	n.scheduleReminder(ctx, ap)
}

func (n *AsynqNotifier) AppointmentCancelled(ctx context.Context, ap *models.Appointment) {
	n.enqueue(ctx, TypeAppointmentCancelled, ap)
}

func (n *AsynqNotifier) enqueue(ctx context.Context, typ string, ap *models.Appointment) {
	task, err := newTask(typ, ap)
	if err != nil {
		n.log.Error("build notification task", zap.String("type", typ), zap.Error(err))
		return
	}

	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		n.log.Warn("enqueue notification failed",
			zap.String("type", typ),
			zap.String("appointment_id", ap.ID.String()),
			zap.Error(err),
		)
	}
}

func (n *AsynqNotifier) scheduleReminder(ctx context.Context, ap *models.Appointment) {
	if n.lead <= 0 || !ap.StartTime.Add(-n.lead).After(n.now()) {
		return
	}

	task, err := NewReminderTask(ap, n.lead)
	if err != nil {
		n.log.Error("build reminder task", zap.Error(err))
		return
	}

	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return
		}
		n.log.Warn("schedule reminder failed",
			zap.String("appointment_id", ap.ID.String()),
			zap.Error(err),
		)
	}
}

var _ Notifier = (*AsynqNotifier)(nil)
var _ Notifier = Noop{}
