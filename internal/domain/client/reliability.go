package client

import (
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

// NoShowBlockThreshold is the no-show count at which a client is blocked
// from new bookings.
const NoShowBlockThreshold = 3

// RecordNoShow bumps the client's no-show counter and blocks the client
// once the threshold is reached. Blocking is sticky.
func RecordNoShow(c *models.Client) int {
	c.NoShowCount++
	if c.NoShowCount >= NoShowBlockThreshold {
		c.IsBlocked = true
	}
	return c.NoShowCount
}

func IsBookable(c *models.Client) bool {
	return !c.IsBlocked
}

// AssertBookable is the creation-time guard.
func AssertBookable(c *models.Client) error {
	if !IsBookable(c) {
		return httperr.ErrRejected("client_blocked", "Client is blocked due to no-shows")
	}
	return nil
}

// Unblock is the manual administrative release. The no-show history is
// kept.
func Unblock(c *models.Client) {
	c.IsBlocked = false
}
