package timezone

import (
	"time"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
)

// All day filters use UTC day boundaries. Callers in other zones send
// RFC3339 instants and get the UTC day back.

const DateLayout = "2006-01-02"

func Now() time.Time {
	return time.Now().UTC()
}

// DayBounds returns [00:00, next 00:00) of t's UTC day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, httperr.ErrInvalid("invalid_date", "Invalid date: "+raw)
}

// ParseInstant parses an RFC3339 timestamp and normalises it to UTC.
func ParseInstant(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, httperr.ErrInvalid("invalid_date_or_time", "Invalid timestamp: "+raw)
	}
	return t.UTC(), nil
}

// ParseRange turns inclusive start/end dates into a half-open UTC range
// covering both whole days.
func ParseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := ParseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	from, _ := DayBounds(start)
	_, to := DayBounds(end)
	if !to.After(from) {
		return time.Time{}, time.Time{}, httperr.ErrInvalid("invalid_date_range", "startDate must not be after endDate")
	}
	return from, to, nil
}
