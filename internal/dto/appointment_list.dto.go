package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type AppointmentListDTO struct {
	ID          uuid.UUID       `json:"id"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	Status      string          `json:"status"`
	ClientID    uuid.UUID       `json:"clientId"`
	ClientName  string          `json:"clientName"`
	StaffID     uuid.UUID       `json:"staffId"`
	StaffName   string          `json:"staffName"`
	Services    []string        `json:"services"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsPaid      bool            `json:"isPaid"`
}

func AppointmentList(ap *models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		ClientID:    ap.ClientID,
		StaffID:     ap.StaffID,
		Services:    make([]string, 0, len(ap.Services)),
		TotalAmount: ap.TotalAmount,
		IsPaid:      ap.IsPaid,
	}

	if ap.Client != nil {
		out.ClientName = ap.Client.Name
	}
	if ap.Staff != nil && ap.Staff.User != nil {
		out.StaffName = ap.Staff.User.Name
	}
	for _, s := range ap.Services {
		out.Services = append(out.Services, s.Name)
	}

	return out
}
