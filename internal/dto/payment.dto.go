package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type PaymentListDTO struct {
	ID               uuid.UUID       `json:"id"`
	AppointmentID    *uuid.UUID      `json:"appointmentId"`
	ClientID         uuid.UUID       `json:"clientId"`
	ClientName       string          `json:"clientName"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Status           string          `json:"status"`
	GatewayReference string          `json:"gatewayReference,omitempty"`
	PaidAt           *time.Time      `json:"paidAt"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func PaymentList(p *models.Payment) PaymentListDTO {
	out := PaymentListDTO{
		ID:               p.ID,
		AppointmentID:    p.AppointmentID,
		ClientID:         p.ClientID,
		Amount:           p.Amount,
		Method:           p.Method,
		Status:           p.Status,
		GatewayReference: p.GatewayReference,
		PaidAt:           p.PaidAt,
		CreatedAt:        p.CreatedAt,
	}
	if p.Client != nil {
		out.ClientName = p.Client.Name
	}
	return out
}
