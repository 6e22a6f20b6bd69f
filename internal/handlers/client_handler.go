package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	clientDomain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/client"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httpresp"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: audit}
}

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Notes   string `json:"notes"`
	Consent bool   `json:"consent"`
}

var errPhoneTaken = httperr.ErrInvalid("phone_already_registered", "A client with this phone already exists")

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	client := models.Client{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:   req.Notes,
		Consent: req.Consent,
	}
	if client.Consent {
		now := time.Now().UTC()
		client.ConsentAt = &now
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("phone = ?", client.Phone).
		Count(&count).Error; err != nil {
		fail(c, err)
		return
	}
	if count > 0 {
		fail(c, errPhoneTaken)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			fail(c, errPhoneTaken)
			return
		}
		fail(c, err)
		return
	}

	httpresp.Created(c, client)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	page, limit := pageParams(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Client{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}
	if c.Query("blocked") == "true" {
		q = q.Where("is_blocked = ?", true)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		fail(c, err)
		return
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&clients).Error; err != nil {
		fail(c, err)
		return
	}

	httpresp.Paginated(c, clients, page, limit, total)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Client not found")
			return
		}
		fail(c, err)
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// UNBLOCK
// ======================================================

func (h *ClientHandler) Unblock(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Client not found")
			return
		}
		fail(c, err)
		return
	}

	wasBlocked := client.IsBlocked
	clientDomain.Unblock(&client)

	if err := h.db.WithContext(c.Request.Context()).
		Model(&client).
		Update("is_blocked", client.IsBlocked).Error; err != nil {
		fail(c, err)
		return
	}

	if wasBlocked {
		h.audit.Dispatch(audit.Event{
			UserID:   actorID(c),
			Action:   audit.ActionClientUnblocked,
			Entity:   "client",
			EntityID: &client.ID,
			Metadata: map[string]any{"noShowCount": client.NoShowCount},
		})
	}

	httpresp.OK(c, client)
}
