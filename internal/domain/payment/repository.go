package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type ListFilter struct {
	Status   string
	Method   string
	ClientID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type MethodTotal struct {
	Method string          `json:"method"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type StatusTotal struct {
	Status string
	Count  int64
	Total  decimal.Decimal
}

type Repository interface {
	WithTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPayment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Payment, error)

	LockPayment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	ListPayments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Payment, int64, error)

	// -------- Linked entities --------
	ClientExists(
		ctx context.Context,
		id uuid.UUID,
	) (bool, error)

	LockAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	SetAppointmentPaid(
		ctx context.Context,
		appointmentID uuid.UUID,
		paid bool,
	) error

	GetStaffWithTiers(
		ctx context.Context,
		staffID uuid.UUID,
	) (*models.Staff, error)

	// -------- Commission --------
	CreateCommission(
		ctx context.Context,
		c *models.Commission,
	) error

	VoidCommissions(
		ctx context.Context,
		paymentID uuid.UUID,
	) (int64, error)

	// -------- Report --------
	TotalsByStatus(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]StatusTotal, error)

	PaidTotalsByMethod(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]MethodTotal, error)
}
