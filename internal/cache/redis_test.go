package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDayKey_IsUTCDay(t *testing.T) {
	staff := uuid.MustParse("7f3c2a9e-0d5b-4a53-9c1a-2b8f6c1d4e10")
	local := time.Date(2025, 3, 10, 22, 30, 0, 0, time.FixedZone("BRT", -3*3600))

	assert.Equal(t, "availability:7f3c2a9e-0d5b-4a53-9c1a-2b8f6c1d4e10:2025-03-11", dayKey(staff, local))
}

func TestStaffPattern_MatchesEveryDayKey(t *testing.T) {
	staff := uuid.MustParse("7f3c2a9e-0d5b-4a53-9c1a-2b8f6c1d4e10")

	assert.Equal(t, "availability:7f3c2a9e-0d5b-4a53-9c1a-2b8f6c1d4e10:*", staffPattern(staff))
	assert.True(t, strings.HasPrefix(dayKey(staff, time.Now()), strings.TrimSuffix(staffPattern(staff), "*")))
}

func TestSlotField(t *testing.T) {
	assert.Equal(t, "45", slotField(45*time.Minute))
	assert.Equal(t, "0", slotField(0))
}

func TestNoop_AlwaysMisses(t *testing.T) {
	var c Availability = Noop{}
	_, ok := c.Get(context.Background(), uuid.New(), time.Now(), time.Hour)
	assert.False(t, ok)
}
