package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httpresp"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
	ucAppointment "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	update       *ucAppointment.UpdateAppointment
	cancel       *ucAppointment.CancelAppointment
	noShow       *ucAppointment.MarkNoShow
	get          *ucAppointment.GetAppointment
	list         *ucAppointment.ListAppointments
	availability *ucAppointment.GetAvailability
	stats        *ucAppointment.GetStats
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	cancel *ucAppointment.CancelAppointment,
	noShow *ucAppointment.MarkNoShow,
	get *ucAppointment.GetAppointment,
	list *ucAppointment.ListAppointments,
	availability *ucAppointment.GetAvailability,
	stats *ucAppointment.GetStats,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		cancel:       cancel,
		noShow:       noShow,
		get:          get,
		list:         list,
		availability: availability,
		stats:        stats,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
}

type CreateAppointmentRequest struct {
	ClientID  uuid.UUID        `json:"clientId" binding:"required"`
	StaffID   uuid.UUID        `json:"staffId" binding:"required"`
	StartTime string           `json:"startTime" binding:"required"`
	Services  []ServiceRequest `json:"services"`
	Status    string           `json:"status"`
	Notes     string           `json:"notes"`
}

type UpdateAppointmentRequest struct {
	StaffID   *uuid.UUID `json:"staffId"`
	StartTime *string    `json:"startTime"`
	Status    *string    `json:"status"`
	Notes     *string    `json:"notes"`
	IsPaid    *bool      `json:"isPaid"`
}

func toServiceItems(in []ServiceRequest) []models.ServiceItem {
	out := make([]models.ServiceItem, 0, len(in))
	for _, s := range in {
		out = append(out, models.ServiceItem{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Duration: s.Duration,
		})
	}
	return out
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	start, err := timezone.ParseInstant(req.StartTime)
	if err != nil {
		fail(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		StartTime: start,
		Services:  toServiceItems(req.Services),
		Status:    req.Status,
		Notes:     req.Notes,
		CreatedBy: actorID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	staffID, ok := optionalUUID(c, "staffId")
	if !ok {
		return
	}
	clientID, ok := optionalUUID(c, "clientId")
	if !ok {
		return
	}
	date, ok := optionalDate(c, "date")
	if !ok {
		return
	}
	startDate, ok := optionalDate(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := optionalDate(c, "endDate")
	if !ok {
		return
	}

	page, limit := pageParams(c)

	out, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		StaffID:   staffID,
		ClientID:  clientID,
		Status:    c.Query("status"),
		Date:      date,
		StartDate: startDate,
		EndDate:   endDate,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.Paginated(c, out.Items, out.Page, out.Limit, out.Total)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	staffID, err := uuid.Parse(c.Query("staffId"))
	if err != nil {
		httperr.BadRequest(c, "missing_staff_id", "staffId is required")
		return
	}

	date, ok := optionalDate(c, "date")
	if !ok {
		return
	}
	if date == nil {
		httperr.BadRequest(c, "missing_date", "date is required")
		return
	}

	var duration time.Duration
	if raw := c.Query("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			httperr.BadRequest(c, "invalid_duration", "duration must be a positive number of minutes")
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}

	out, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		StaffID:  staffID,
		Date:     *date,
		Duration: duration,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATS
// ======================================================

func (h *AppointmentHandler) Stats(c *gin.Context) {
	staffID, ok := optionalUUID(c, "staffId")
	if !ok {
		return
	}

	from, to, ok := requiredRange(c)
	if !ok {
		return
	}

	out, err := h.stats.Execute(c.Request.Context(), ucAppointment.StatsInput{
		StaffID: staffID,
		From:    from,
		To:      to,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// GET / UPDATE
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		ID:      id,
		StaffID: req.StaffID,
		Status:  req.Status,
		Notes:   req.Notes,
		IsPaid:  req.IsPaid,
		UserID:  actorID(c),
	}

	if req.StartTime != nil {
		start, err := timezone.ParseInstant(*req.StartTime)
		if err != nil {
			fail(c, err)
			return
		}
		in.StartTime = &start
	}

	ap, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL / NO-SHOW
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), id, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, ap)
}
