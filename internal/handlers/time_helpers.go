package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// --------------------------------------------------
// Dates (UTC days)
// --------------------------------------------------

// optionalDate parses ?key=YYYY-MM-DD. A missing key yields nil; a
// malformed one writes a 400 and returns ok=false.
func optionalDate(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}

	d, err := timezone.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid "+key+", expected YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

// requiredRange parses ?startDate&endDate into a half-open range covering
// both days.
func requiredRange(c *gin.Context) (time.Time, time.Time, bool) {
	startRaw, endRaw := c.Query("startDate"), c.Query("endDate")
	if startRaw == "" || endRaw == "" {
		httperr.BadRequest(c, "missing_date_range", "startDate and endDate are required")
		return time.Time{}, time.Time{}, false
	}

	from, to, err := timezone.ParseRange(startRaw, endRaw)
	if err != nil {
		httperr.FromError(c, err)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// --------------------------------------------------
// Paging
// --------------------------------------------------

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit
}
