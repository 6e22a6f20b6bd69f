package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httpresp"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")

	entityID, ok := optionalUUID(c, "entityId")
	if !ok {
		return
	}
	userID, ok := optionalUUID(c, "userId")
	if !ok {
		return
	}
	from, ok := optionalDate(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDate(c, "to")
	if !ok {
		return
	}

	page, limit := pageParams(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if from != nil {
		start, _ := timezone.DayBounds(*from)
		q = q.Where("created_at >= ?", start)
	}
	if to != nil {
		_, end := timezone.DayBounds(*to)
		q = q.Where("created_at < ?", end)
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		fail(c, err)
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		fail(c, err)
		return
	}

	httpresp.Paginated(c, logs, page, limit, total)
}
