package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	paymentDomain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// WithTx runs fn against a repository bound to a single transaction.
// Returning an error from fn rolls everything back.
func (r *AppointmentGormRepository) WithTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "client_not_found", "Client not found")
	}
	return &client, nil
}

func (r *AppointmentGormRepository) LockClient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&client, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "client_not_found", "Client not found")
	}
	return &client, nil
}

func (r *AppointmentGormRepository) UpdateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).
		Model(client).
		Select("no_show_count", "is_blocked").
		Updates(client).Error
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	id uuid.UUID,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "staff_not_found", "Staff not found")
	}
	return &staff, nil
}

// LockStaff serialises every booking for one staff member: concurrent
// creates and reschedules queue on this row until the holder commits.
func (r *AppointmentGormRepository) LockStaff(
	ctx context.Context,
	id uuid.UUID,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&staff, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "staff_not_found", "Staff not found")
	}
	return &staff, nil
}

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	staffID uuid.UUID,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

// ListActiveForStaff returns the staff member's appointments that still
// hold their slot and touch [start, end), ordered by start time.
func (r *AppointmentGormRepository) ListActiveForStaff(
	ctx context.Context,
	staffID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			staffID,
			domain.ReleasedStatuses,
			end.UTC(),
			start.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// ListDayForStaff returns every non-cancelled appointment that starts in
// [dayStart, dayEnd). No-shows are included so the day view shows them.
func (r *AppointmentGormRepository) ListDayForStaff(
	ctx context.Context,
	staffID uuid.UUID,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"staff_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			staffID,
			string(domain.StatusCancelled),
			dayStart.UTC(),
			dayEnd.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) LockAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentDetail(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Staff.User").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Payments.Commissions").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	page, limit := normalizePage(f.Page, f.Limit)

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.StaffID != nil {
		q = q.Where("staff_id = ?", *f.StaffID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("start_time < ?", f.To.UTC())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Client").
		Preload("Staff").
		Preload("Staff.User").
		Order("start_time ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) CountByStatus(
	ctx context.Context,
	f domain.StatsFilter,
) (*domain.Counts, error) {

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("start_time >= ? AND start_time < ?", f.From.UTC(), f.To.UTC())
		if f.StaffID != nil {
			q = q.Where("staff_id = ?", *f.StaffID)
		}
		return q
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := base().
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := &domain.Counts{TotalRevenue: decimal.Zero}
	for _, row := range rows {
		out.Total += row.Count
		switch domain.Status(row.Status) {
		case domain.StatusCompleted:
			out.Completed = row.Count
		case domain.StatusCancelled:
			out.Cancelled = row.Count
		case domain.StatusNoShow:
			out.NoShow = row.Count
		}
	}

	var revenue decimal.NullDecimal
	if err := base().
		Select("SUM(total_amount)").
		Where("status = ? AND is_paid = ?", string(domain.StatusCompleted), true).
		Row().
		Scan(&revenue); err != nil {
		return nil, err
	}
	if revenue.Valid {
		out.TotalRevenue = revenue.Decimal.Round(2)
	}

	return out, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// CancelOpenPayments cancels the appointment's PENDING and PARTIAL
// payments. Settled payments and their commissions are left alone.
func (r *AppointmentGormRepository) CancelOpenPayments(
	ctx context.Context,
	appointmentID uuid.UUID,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("appointment_id = ? AND status IN ?", appointmentID, paymentDomain.OpenStatuses).
		Update("status", string(paymentDomain.StatusCancelled))

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code, message)
	}
	return err
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
