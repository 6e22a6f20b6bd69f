package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httpresp"
	ucPayment "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	create       *ucPayment.CreatePayment
	confirm      *ucPayment.ConfirmPayment
	refund       *ucPayment.RefundPayment
	changeMethod *ucPayment.ChangeMethod
	get          *ucPayment.GetPayment
	list         *ucPayment.ListPayments
	report       *ucPayment.GetReport
}

func NewPaymentHandler(
	create *ucPayment.CreatePayment,
	confirm *ucPayment.ConfirmPayment,
	refund *ucPayment.RefundPayment,
	changeMethod *ucPayment.ChangeMethod,
	get *ucPayment.GetPayment,
	list *ucPayment.ListPayments,
	report *ucPayment.GetReport,
) *PaymentHandler {
	return &PaymentHandler{
		create:       create,
		confirm:      confirm,
		refund:       refund,
		changeMethod: changeMethod,
		get:          get,
		list:         list,
		report:       report,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentRequest struct {
	ClientID         uuid.UUID       `json:"clientId" binding:"required"`
	AppointmentID    *uuid.UUID      `json:"appointmentId"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Status           string          `json:"status"`
	GatewayReference string          `json:"gatewayReference"`
}

type ConfirmPaymentRequest struct {
	Method           string `json:"method"`
	GatewayReference string `json:"gatewayReference"`
}

type ChangeMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// ======================================================
// CREATE / LIST / GET
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	p, err := h.create.Execute(c.Request.Context(), ucPayment.CreatePaymentInput{
		ClientID:         req.ClientID,
		AppointmentID:    req.AppointmentID,
		Amount:           req.Amount,
		Method:           req.Method,
		Status:           req.Status,
		GatewayReference: req.GatewayReference,
		UserID:           actorID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.Created(c, p)
}

func (h *PaymentHandler) List(c *gin.Context) {
	clientID, ok := optionalUUID(c, "clientId")
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

	out, err := h.list.Execute(c.Request.Context(), ucPayment.ListPaymentsInput{
		Status:    c.Query("status"),
		Method:    c.Query("method"),
		ClientID:  clientID,
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

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *PaymentHandler) Confirm(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// the body is optional
	var req ConfirmPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
	}

	p, err := h.confirm.Execute(c.Request.Context(), ucPayment.ConfirmPaymentInput{
		ID:               id,
		Method:           req.Method,
		GatewayReference: req.GatewayReference,
		UserID:           actorID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.refund.Execute(c.Request.Context(), id, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *PaymentHandler) ChangeMethod(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ChangeMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	p, err := h.changeMethod.Execute(c.Request.Context(), id, req.Method, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// REPORT
// ======================================================

func (h *PaymentHandler) Report(c *gin.Context) {
	from, to, ok := requiredRange(c)
	if !ok {
		return
	}

	out, err := h.report.Execute(c.Request.Context(), from, to)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, out)
}
