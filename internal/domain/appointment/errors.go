package appointment

import "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"

var (
	ErrTimeConflict     = httperr.ErrRejected("time_conflict", "Time slot not available")
	ErrStaffUnavailable = httperr.ErrRejected("staff_unavailable", "Staff not available")
)
