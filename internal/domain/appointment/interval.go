package appointment

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether candidate collides with i, where i is the
// interval already on the books. The test is kept as three OR-ed cases:
//
//	(a) candidate starts inside i
//	(b) candidate ends inside i
//	(c) i sits entirely inside candidate
//
// Touching boundaries (i.End == candidate.Start) never collide.
func (i Interval) Overlaps(candidate Interval) bool {
	startsInside := !i.Start.After(candidate.Start) && i.End.After(candidate.Start)
	endsInside := i.Start.Before(candidate.End) && !i.End.Before(candidate.End)
	contained := !i.Start.Before(candidate.Start) && !i.End.After(candidate.End)

	return startsInside || endsInside || contained
}
