package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

const (
	TypeAppointmentConfirmation = "appointment:confirmation"
	TypeAppointmentReminder     = "appointment:reminder"
	TypeAppointmentCancelled    = "appointment:cancelled"
)

const queueName = "notifications"

type AppointmentPayload struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	ClientID      uuid.UUID `json:"clientId"`
	StaffID       uuid.UUID `json:"staffId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

func payloadOf(ap *models.Appointment) AppointmentPayload {
	return AppointmentPayload{
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		StaffID:       ap.StaffID,
		StartTime:     ap.StartTime,
		EndTime:       ap.EndTime,
	}
}

func newTask(typ string, ap *models.Appointment, opts ...asynq.Option) (*asynq.Task, error) {
	b, err := json.Marshal(payloadOf(ap))
	if err != nil {
		return nil, err
	}
	opts = append([]asynq.Option{asynq.Queue(queueName), asynq.MaxRetry(5)}, opts...)
	return asynq.NewTask(typ, b, opts...), nil
}

// NewReminderTask schedules the reminder lead before the appointment.
// The task id includes the start time so a reschedule enqueues a fresh
// reminder instead of colliding with the old one; the worker drops
// reminders whose start no longer matches the appointment.
func NewReminderTask(ap *models.Appointment, lead time.Duration) (*asynq.Task, error) {
	fireAt := ap.StartTime.Add(-lead)
	id := "reminder:" + ap.ID.String() + ":" + ap.StartTime.UTC().Format(time.RFC3339)

	return newTask(TypeAppointmentReminder, ap, asynq.ProcessAt(fireAt), asynq.TaskID(id))
}
