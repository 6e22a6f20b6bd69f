package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) WithTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PaymentGormRepository) GetPayment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Commissions").
		First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment_not_found", "Payment not found")
	}
	return &p, nil
}

func (r *PaymentGormRepository) LockPayment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment_not_found", "Payment not found")
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *PaymentGormRepository) ListPayments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Payment, int64, error) {

	page, limit := normalizePage(f.Page, f.Limit)

	q := r.db.WithContext(ctx).Model(&models.Payment{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("method = ?", f.Method)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.UTC())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	if err := q.
		Preload("Client").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// --------------------------------------------------
// Linked entities
// --------------------------------------------------

func (r *PaymentGormRepository) ClientExists(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentGormRepository) LockAppointment(
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

func (r *PaymentGormRepository) SetAppointmentPaid(
	ctx context.Context,
	appointmentID uuid.UUID,
	paid bool,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("is_paid", paid).Error
}

func (r *PaymentGormRepository) GetStaffWithTiers(
	ctx context.Context,
	staffID uuid.UUID,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Preload("CommissionTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_amount ASC")
		}).
		First(&staff, "id = ?", staffID).Error; err != nil {
		return nil, notFound(err, "staff_not_found", "Staff not found")
	}
	return &staff, nil
}

// --------------------------------------------------
// Commission
// --------------------------------------------------

func (r *PaymentGormRepository) CreateCommission(
	ctx context.Context,
	c *models.Commission,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// VoidCommissions flags the payment's commissions unpaid. Rows are kept
// for the audit trail.
func (r *PaymentGormRepository) VoidCommissions(
	ctx context.Context,
	paymentID uuid.UUID,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Commission{}).
		Where("payment_id = ?", paymentID).
		Update("is_paid", false)

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Report
// --------------------------------------------------

func (r *PaymentGormRepository) TotalsByStatus(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]domain.StatusTotal, error) {

	var rows []struct {
		Status string
		Count  int64
		Total  decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("status, COUNT(*) AS count, SUM(amount) AS total").
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.StatusTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StatusTotal{
			Status: row.Status,
			Count:  row.Count,
			Total:  nullToZero(row.Total),
		})
	}
	return out, nil
}

func (r *PaymentGormRepository) PaidTotalsByMethod(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]domain.MethodTotal, error) {

	var rows []struct {
		Method string
		Count  int64
		Total  decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("method, COUNT(*) AS count, SUM(amount) AS total").
		Where(
			"status = ? AND created_at >= ? AND created_at < ?",
			string(domain.StatusPaid),
			from.UTC(),
			to.UTC(),
		).
		Group("method").
		Order("method ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.MethodTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.MethodTotal{
			Method: row.Method,
			Count:  row.Count,
			Total:  nullToZero(row.Total),
		})
	}
	return out, nil
}

func nullToZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal.Round(2)
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
