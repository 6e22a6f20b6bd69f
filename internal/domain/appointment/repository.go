package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type ListFilter struct {
	StaffID  *uuid.UUID
	ClientID *uuid.UUID
	Status   string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type StatsFilter struct {
	StaffID *uuid.UUID
	From    time.Time
	To      time.Time
}

type Counts struct {
	Total        int64
	Completed    int64
	Cancelled    int64
	NoShow       int64
	TotalRevenue decimal.Decimal
}

// Repository is the store seen by the appointment use cases. Lock*
// methods take a row lock that lasts until the enclosing WithTx returns.
type Repository interface {
	WithTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Client --------
	GetClient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Client, error)

	LockClient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Client, error)

	UpdateClient(
		ctx context.Context,
		client *models.Client,
	) error

	// -------- Staff --------
	GetStaff(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Staff, error)

	LockStaff(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Staff, error)

	GetWorkingHours(
		ctx context.Context,
		staffID uuid.UUID,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListActiveForStaff(
		ctx context.Context,
		staffID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListDayForStaff(
		ctx context.Context,
		staffID uuid.UUID,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	LockAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read) --------
	GetAppointmentDetail(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, int64, error)

	CountByStatus(
		ctx context.Context,
		f StatsFilter,
	) (*Counts, error)

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	CancelOpenPayments(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (int64, error)
}
