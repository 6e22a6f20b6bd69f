package appointment

import (
	"time"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

// WorkWindow is a staff member's shift for one concrete day, with the
// optional break already resolved to absolute times.
type WorkWindow struct {
	Shift    Interval
	Break    Interval
	HasBreak bool
}

// NewWorkWindow resolves wh ("15:04" strings) against day. ok is false
// when the staff member does not work that day.
func NewWorkWindow(day time.Time, wh *models.WorkingHours) (WorkWindow, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return WorkWindow{}, false
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0,
			day.Location(),
		), true
	}

	start, ok1 := parseHM(wh.StartTime)
	end, ok2 := parseHM(wh.EndTime)
	if !ok1 || !ok2 || !end.After(start) {
		return WorkWindow{}, false
	}

	w := WorkWindow{Shift: Interval{Start: start, End: end}}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		bs, ok1 := parseHM(wh.BreakStart)
		be, ok2 := parseHM(wh.BreakEnd)
		if ok1 && ok2 && be.After(bs) {
			w.Break = Interval{Start: bs, End: be}
			w.HasBreak = true
		}
	}

	return w, true
}

// Fits reports whether iv lies inside the shift and clear of the break.
func (w WorkWindow) Fits(iv Interval) bool {
	if iv.Start.Before(w.Shift.Start) || iv.End.After(w.Shift.End) {
		return false
	}
	if w.HasBreak && w.Break.Overlaps(iv) {
		return false
	}
	return true
}

// IsBlockedDate reports whether day is listed in the staff member's
// blocked dates.
func IsBlockedDate(staff *models.Staff, day time.Time) bool {
	key := day.Format("2006-01-02")
	for _, d := range staff.BlockedDates {
		if d == key {
			return true
		}
	}
	return false
}
