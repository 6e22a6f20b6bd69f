package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/db/dbtest"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/infra/repository"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type fixture struct {
	db     *gorm.DB
	repo   *repository.PaymentGormRepository
	client *models.Client
	ctx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := dbtest.New(t)
	return &fixture{
		db:     gdb,
		repo:   repository.NewPaymentGormRepository(gdb),
		client: dbtest.SeedClient(t, gdb),
		ctx:    context.Background(),
	}
}

// booked seeds an appointment for staff with its pending payment.
func (f *fixture) booked(t *testing.T, staff *models.Staff, amount string) (*models.Appointment, *models.Payment) {
	t.Helper()

	ap := &models.Appointment{
		ClientID:    f.client.ID,
		StaffID:     staff.ID,
		StartTime:   dbtest.At(10, 0),
		EndTime:     dbtest.At(11, 0),
		Status:      "SCHEDULED",
		Services:    dbtest.Services(),
		TotalAmount: dbtest.Money(amount),
	}
	require.NoError(t, f.db.Omit("Client", "Staff", "Payments").Create(ap).Error)

	p := &models.Payment{
		AppointmentID: &ap.ID,
		ClientID:      f.client.ID,
		Amount:        dbtest.Money(amount),
		Method:        "CASH",
		Status:        "PENDING",
	}
	require.NoError(t, f.db.Omit("Client", "Commissions").Create(p).Error)

	return ap, p
}

func (f *fixture) commissions(t *testing.T, paymentID uuid.UUID) []models.Commission {
	t.Helper()

	var cs []models.Commission
	require.NoError(t, f.db.Where("payment_id = ?", paymentID).Find(&cs).Error)
	return cs
}

func (f *fixture) appointment(t *testing.T, id uuid.UUID) models.Appointment {
	t.Helper()

	var ap models.Appointment
	require.NoError(t, f.db.First(&ap, "id = ?", id).Error)
	return ap
}

// ======================================================
// CONFIRM
// ======================================================

func TestConfirm_PercentCommissionAndAppointmentPaid(t *testing.T) {
	f := newFixture(t)
	staff := dbtest.SeedStaff(t, f.db)
	ap, p := f.booked(t, staff, "100.00")

	out, err := NewConfirmPayment(f.repo, nil, nil).Execute(f.ctx, ConfirmPaymentInput{
		ID:               p.ID,
		Method:           "pix",
		GatewayReference: "E2E-123",
	})
	require.NoError(t, err)

	assert.Equal(t, "PAID", out.Status)
	assert.Equal(t, "PIX", out.Method)
	assert.Equal(t, "E2E-123", out.GatewayReference)
	require.NotNil(t, out.PaidAt)

	cs := f.commissions(t, p.ID)
	require.Len(t, cs, 1)
	assert.Equal(t, "40.00", cs[0].Amount.StringFixed(2))
	assert.Equal(t, staff.ID, cs[0].StaffID)
	assert.True(t, cs[0].IsPaid)

	assert.True(t, f.appointment(t, ap.ID).IsPaid)
}

func TestConfirm_CommissionPolicies(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Staff)
		tiers  []models.CommissionTier
		amount string
		want   string
	}{
		{
			name:   "fixed",
			mutate: func(s *models.Staff) { s.CommissionType = "FIXED"; s.CommissionValue = dbtest.Money("25") },
			amount: "180.00",
			want:   "25.00",
		},
		{
			name:   "percent rounds to cents",
			mutate: func(s *models.Staff) { s.CommissionValue = dbtest.Money("33.33") },
			amount: "99.99",
			want:   "33.33",
		},
		{
			name:   "table brackets",
			mutate: func(s *models.Staff) { s.CommissionType = "TABLE"; s.CommissionValue = decimal.Zero },
			tiers: []models.CommissionTier{
				{MinAmount: dbtest.Money("0"), MaxAmount: decimal.NewNullDecimal(dbtest.Money("100")), Rate: dbtest.Money("10")},
				{MinAmount: dbtest.Money("100"), Rate: dbtest.Money("20")},
			},
			amount: "150.00",
			want:   "20.00",
		},
		{
			name:   "table without tiers",
			mutate: func(s *models.Staff) { s.CommissionType = "TABLE" },
			amount: "150.00",
			want:   "0.00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			staff := dbtest.SeedStaff(t, f.db, tc.mutate)
			for i := range tc.tiers {
				tc.tiers[i].StaffID = staff.ID
				require.NoError(t, f.db.Create(&tc.tiers[i]).Error)
			}
			_, p := f.booked(t, staff, tc.amount)

			_, err := NewConfirmPayment(f.repo, nil, nil).Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
			require.NoError(t, err)

			cs := f.commissions(t, p.ID)
			require.Len(t, cs, 1)
			assert.Equal(t, tc.want, cs[0].Amount.StringFixed(2))
		})
	}
}

func TestConfirm_OnlyOpenPayments(t *testing.T) {
	f := newFixture(t)
	staff := dbtest.SeedStaff(t, f.db)
	_, p := f.booked(t, staff, "100.00")

	uc := NewConfirmPayment(f.repo, nil, nil)
	_, err := uc.Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
	require.NoError(t, err)

	_, err = uc.Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_state"))
	assert.Len(t, f.commissions(t, p.ID), 1)

	_, err = uc.Execute(f.ctx, ConfirmPaymentInput{ID: uuid.New()})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = uc.Execute(f.ctx, ConfirmPaymentInput{ID: p.ID, Method: "BITCOIN"})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestConfirm_StandalonePaymentHasNoCommission(t *testing.T) {
	f := newFixture(t)

	p, err := NewCreatePayment(f.repo, nil).Execute(f.ctx, CreatePaymentInput{
		ClientID: f.client.ID,
		Amount:   dbtest.Money("35.50"),
	})
	require.NoError(t, err)

	out, err := NewConfirmPayment(f.repo, nil, nil).Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, "PAID", out.Status)
	assert.Empty(t, f.commissions(t, p.ID))
}

// ======================================================
// REFUND
// ======================================================

func TestRefund_VoidsCommissionsAndUnpaysAppointment(t *testing.T) {
	f := newFixture(t)
	staff := dbtest.SeedStaff(t, f.db)
	ap, p := f.booked(t, staff, "100.00")

	_, err := NewConfirmPayment(f.repo, nil, nil).Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
	require.NoError(t, err)

	out, err := NewRefundPayment(f.repo, nil).Execute(f.ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "REFUNDED", out.Status)

	cs := f.commissions(t, p.ID)
	require.Len(t, cs, 1)
	assert.False(t, cs[0].IsPaid)
	assert.Equal(t, "40.00", cs[0].Amount.StringFixed(2))

	assert.False(t, f.appointment(t, ap.ID).IsPaid)
}

func TestRefund_RejectsUnpaid(t *testing.T) {
	f := newFixture(t)
	staff := dbtest.SeedStaff(t, f.db)
	_, p := f.booked(t, staff, "100.00")

	_, err := NewRefundPayment(f.repo, nil).Execute(f.ctx, p.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_state"))
}

// lockRecorder records the order row locks are taken in.
type lockRecorder struct {
	domain.Repository
	locks *[]string
}

func (r lockRecorder) WithTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.Repository.WithTx(ctx, func(tx domain.Repository) error {
		return fn(lockRecorder{Repository: tx, locks: r.locks})
	})
}

func (r lockRecorder) LockPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	*r.locks = append(*r.locks, "payment")
	return r.Repository.LockPayment(ctx, id)
}

func (r lockRecorder) LockAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	*r.locks = append(*r.locks, "appointment")
	return r.Repository.LockAppointment(ctx, id)
}

func TestTransitions_LockAppointmentBeforePayment(t *testing.T) {
	f := newFixture(t)
	staff := dbtest.SeedStaff(t, f.db)
	_, p := f.booked(t, staff, "100.00")

	var locks []string
	repo := lockRecorder{Repository: f.repo, locks: &locks}

	_, err := NewConfirmPayment(repo, nil, nil).Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"appointment", "payment"}, locks)

	locks = locks[:0]
	_, err = NewRefundPayment(repo, nil).Execute(f.ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"appointment", "payment"}, locks)

	standalone, err := NewCreatePayment(f.repo, nil).Execute(f.ctx, CreatePaymentInput{
		ClientID: f.client.ID,
		Amount:   dbtest.Money("10.00"),
	})
	require.NoError(t, err)

	locks = locks[:0]
	_, err = NewConfirmPayment(repo, nil, nil).Execute(f.ctx, ConfirmPaymentInput{ID: standalone.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"payment"}, locks)
}

// ======================================================
// METHOD / CREATE
// ======================================================

func TestChangeMethod(t *testing.T) {
	f := newFixture(t)
	staff := dbtest.SeedStaff(t, f.db)
	_, p := f.booked(t, staff, "100.00")

	uc := NewChangeMethod(f.repo, nil)

	out, err := uc.Execute(f.ctx, p.ID, "credit", nil)
	require.NoError(t, err)
	assert.Equal(t, "CREDIT", out.Method)

	_, err = uc.Execute(f.ctx, p.ID, "cheque", nil)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	_, err = NewConfirmPayment(f.repo, nil, nil).Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
	require.NoError(t, err)

	_, err = uc.Execute(f.ctx, p.ID, "PIX", nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_state"))
}

func TestCreatePayment_Validation(t *testing.T) {
	f := newFixture(t)
	uc := NewCreatePayment(f.repo, nil)

	_, err := uc.Execute(f.ctx, CreatePaymentInput{ClientID: f.client.ID, Amount: decimal.Zero})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	_, err = uc.Execute(f.ctx, CreatePaymentInput{ClientID: uuid.New(), Amount: dbtest.Money("10")})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))

	_, err = uc.Execute(f.ctx, CreatePaymentInput{ClientID: f.client.ID, Amount: dbtest.Money("10"), Status: "PAID"})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	other := dbtest.SeedClient(t, f.db)
	ap, _ := f.booked(t, dbtest.SeedStaff(t, f.db), "50.00")
	_, err = uc.Execute(f.ctx, CreatePaymentInput{ClientID: other.ID, AppointmentID: &ap.ID, Amount: dbtest.Money("10")})
	assert.True(t, httperr.IsBusiness(err, "client_mismatch"))

	p, err := uc.Execute(f.ctx, CreatePaymentInput{
		ClientID:      f.client.ID,
		AppointmentID: &ap.ID,
		Amount:        dbtest.Money("20.555"),
		Method:        "debit",
		Status:        "partial",
	})
	require.NoError(t, err)
	assert.Equal(t, "20.56", p.Amount.StringFixed(2))
	assert.Equal(t, "DEBIT", p.Method)
	assert.Equal(t, "PARTIAL", p.Status)
}

// ======================================================
// READ
// ======================================================

func TestListAndReport(t *testing.T) {
	f := newFixture(t)
	create := NewCreatePayment(f.repo, nil)
	confirm := NewConfirmPayment(f.repo, nil, nil)

	mk := func(amount, method string) *models.Payment {
		p, err := create.Execute(f.ctx, CreatePaymentInput{
			ClientID: f.client.ID,
			Amount:   dbtest.Money(amount),
			Method:   method,
		})
		require.NoError(t, err)
		return p
	}

	cash := mk("100.00", "CASH")
	pix := mk("50.00", "PIX")
	mk("30.00", "CASH")
	refunded := mk("20.00", "CASH")

	for _, p := range []*models.Payment{cash, pix, refunded} {
		_, err := confirm.Execute(f.ctx, ConfirmPaymentInput{ID: p.ID})
		require.NoError(t, err)
	}
	_, err := NewRefundPayment(f.repo, nil).Execute(f.ctx, refunded.ID, nil)
	require.NoError(t, err)

	list, err := NewListPayments(f.repo).Execute(f.ctx, ListPaymentsInput{Status: "paid"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	for _, item := range list.Items {
		assert.Equal(t, "PAID", item.Status)
		assert.Equal(t, f.client.Name, item.ClientName)
	}

	list, err = NewListPayments(f.repo).Execute(f.ctx, ListPaymentsInput{Method: "CASH", Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Total)
	assert.Len(t, list.Items, 2)

	now := time.Now().UTC()
	report, err := NewGetReport(f.repo).Execute(f.ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.EqualValues(t, 4, report.All.Count)
	assert.Equal(t, "200.00", report.All.Total.StringFixed(2))
	assert.EqualValues(t, 2, report.Paid.Count)
	assert.Equal(t, "150.00", report.Paid.Total.StringFixed(2))
	assert.EqualValues(t, 1, report.Pending.Count)
	assert.Equal(t, "30.00", report.Pending.Total.StringFixed(2))
	assert.EqualValues(t, 1, report.Refunded.Count)

	require.Len(t, report.ByMethod, 2)
	assert.Equal(t, "CASH", report.ByMethod[0].Method)
	assert.Equal(t, "100.00", report.ByMethod[0].Total.StringFixed(2))
	assert.Equal(t, "PIX", report.ByMethod[1].Method)
	assert.Equal(t, "50.00", report.ByMethod[1].Total.StringFixed(2))

	_, err = NewGetReport(f.repo).Execute(f.ctx, now, now)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}
