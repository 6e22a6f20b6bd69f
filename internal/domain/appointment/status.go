package appointment

import (
	"strings"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

var allStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ReleasedStatuses are the statuses that free the slot for new bookings.
var ReleasedStatuses = []string{
	string(StatusCancelled),
	string(StatusNoShow),
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range allStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", httperr.ErrInvalid("invalid_status", "Unknown appointment status")
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusNoShow
}

// HoldsSlot reports whether an appointment in this status blocks the
// staff member's time.
func (s Status) HoldsSlot() bool {
	return !s.IsTerminal()
}

// ===============================
// Validations
// ===============================

// InitialStatus resolves the status a new appointment lands in.
func InitialStatus(requested string) (Status, error) {
	if strings.TrimSpace(requested) == "" {
		return StatusScheduled, nil
	}

	s, err := ParseStatus(requested)
	if err != nil {
		return "", err
	}
	if s.IsTerminal() {
		return "", httperr.ErrInvalid("invalid_status", "Appointments cannot be created in a terminal status")
	}
	return s, nil
}

// CanMarkNoShow rejects a second no-show on the same appointment so the
// client counter is never bumped twice for one visit.
func CanMarkNoShow(current Status) error {
	if current == StatusNoShow {
		return httperr.ErrRejected("invalid_state", "Appointment is already marked as no-show")
	}
	return nil
}

// CanPatchStatus guards the non-cascading status patch. A terminal or
// completed appointment never goes back to an active status; cancel and
// no-show have their own paths.
func CanPatchStatus(current, next Status) error {
	if current == next {
		return nil
	}
	if current.IsTerminal() || current == StatusCompleted {
		return httperr.ErrRejected("invalid_state", "Appointment is already "+strings.ToLower(string(current)))
	}
	return nil
}

// CanReschedule forbids moving an appointment that no longer holds a slot.
func CanReschedule(current Status) error {
	if current.IsTerminal() {
		return httperr.ErrRejected("invalid_state", "Appointment is already "+strings.ToLower(string(current)))
	}
	return nil
}
