package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentUpdated     = "appointment_updated"
	ActionAppointmentCancelled   = "appointment_cancelled"
	ActionAppointmentNoShow      = "appointment_no_show"
	ActionAppointmentConflict    = "appointment_conflict"
	ActionClientBlocked          = "client_blocked"
	ActionClientUnblocked        = "client_unblocked"
	ActionPaymentCreated         = "payment_created"
	ActionPaymentConfirmed       = "payment_confirmed"
	ActionPaymentRefunded        = "payment_refunded"
	ActionPaymentMethodChanged   = "payment_method_changed"
	ActionStaffUpdated           = "staff_updated"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(
			ctx,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
		cancel()
	}
}

// Dispatch never blocks the request: when the queue is full or the
// dispatcher is closed the event is dropped. A nil dispatcher is a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains queued events and stops the worker. Events dispatched
// afterwards are dropped.
func (d *Dispatcher) Close(ctx context.Context) {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
		d.log.Warn("audit queue not drained before shutdown")
	}
}
