package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/db/dbtest"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

func TestDispatcher_WritesEventsBeforeClose(t *testing.T) {
	gdb := dbtest.New(t)
	d := NewDispatcher(New(gdb), zap.NewNop())

	id := uuid.New()
	d.Dispatch(Event{
		Action:   ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]any{"staffId": "abc"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.Close(ctx)

	var logs []models.AuditLog
	require.NoError(t, gdb.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionAppointmentCreated, logs[0].Action)
	assert.Equal(t, `{"staffId":"abc"}`, logs[0].Metadata)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, id, *logs[0].EntityID)
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	gdb := dbtest.New(t)
	d := NewDispatcher(New(gdb), zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.Close(ctx)

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionPaymentConfirmed, Entity: "payment"})
		d.Close(ctx)
	})

	var count int64
	require.NoError(t, gdb.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close(context.Background())
	})
}
