package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httpresp"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	cache cache.Availability
}

func NewWorkingHoursHandler(db *gorm.DB, cache cache.Availability) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, cache: cache}
}

type WorkingDayConfig struct {
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	staffID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, hours)
}

// Update replaces the staff member's whole weekly schedule.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	staffID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))

	for _, d := range req.Days {
		if seen[*d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear once")
			return
		}
		seen[*d.Weekday] = true

		wh := models.WorkingHours{
			StaffID:    staffID,
			Weekday:    *d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		}

		if wh.Active {
			if _, ok := domain.NewWorkWindow(timezone.Now(), &wh); !ok {
				httperr.BadRequest(c, "invalid_working_hours", "startTime and endTime must be HH:MM with start before end")
				return
			}
		}

		toCreate = append(toCreate, wh)
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var staff models.Staff
		if err := tx.Select("id").First(&staff, "id = ?", staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("staff_not_found", "Staff not found")
			}
			return err
		}

		if err := tx.Where("staff_id = ?", staffID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	// every future day on a changed weekday is stale
	h.cache.InvalidateStaff(c.Request.Context(), staffID)

	httpresp.OK(c, toCreate)
}
