package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/auth"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/config"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/db/dbtest"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

type server struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenIssuer
	admin  string
}

// memoryCache is an in-process availability cache keyed like the Redis one.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Availability
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*domain.Availability{}}
}

func (m *memoryCache) key(staffID uuid.UUID, day time.Time, slot time.Duration) string {
	return fmt.Sprintf("%s:%s:%d", staffID, day.UTC().Format("2006-01-02"), slot/time.Minute)
}

func (m *memoryCache) Get(_ context.Context, staffID uuid.UUID, day time.Time, slot time.Duration) (*domain.Availability, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[m.key(staffID, day, slot)]
	return v, ok
}

func (m *memoryCache) Set(_ context.Context, staffID uuid.UUID, day time.Time, slot time.Duration, v *domain.Availability) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.key(staffID, day, slot)] = v
}

func (m *memoryCache) Invalidate(_ context.Context, staffID uuid.UUID, days ...time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range days {
		m.drop(fmt.Sprintf("%s:%s:", staffID, d.UTC().Format("2006-01-02")))
	}
}

func (m *memoryCache) InvalidateStaff(_ context.Context, staffID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drop(staffID.String() + ":")
}

func (m *memoryCache) drop(prefix string) {
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
}

func newServer(t *testing.T, opts ...func(*Deps)) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.New(t)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	deps := Deps{
		DB: gdb,
		Config: &config.Config{
			RateLimit:   "1000-M",
			CORSOrigins: []string{"*"},
		},
		Tokens: tokens,
	}
	for _, o := range opts {
		o(&deps)
	}

	r := gin.New()
	require.NoError(t, RegisterRoutes(r, deps))

	perms := make([]string, 0, len(auth.AllPermissions))
	for _, p := range auth.AllPermissions {
		perms = append(perms, string(p))
	}
	admin, err := tokens.Issue(uuid.New(), "admin", perms, time.Now())
	require.NoError(t, err)

	return &server{t: t, db: gdb, router: r, tokens: tokens, admin: admin}
}

func (s *server) do(method, path string, body any, token string) (int, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func bookingBody(clientID, staffID uuid.UUID, start string) map[string]any {
	return map[string]any{
		"clientId":  clientID,
		"staffId":   staffID,
		"startTime": start,
		"services": []map[string]any{
			{"id": uuid.New(), "name": "Escova", "price": "100.00", "duration": 60},
		},
	}
}

// ======================================================
// AUTH
// ======================================================

func TestAuth_TokenAndPermissions(t *testing.T) {
	s := newServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/appointments", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing_authorization_header", env.ErrorCode)

	code, _ = s.do(http.MethodGet, "/api/v1/appointments", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)

	reader, err := s.tokens.Issue(uuid.New(), "reception", []string{string(auth.PermAppointmentsRead)}, time.Now())
	require.NoError(t, err)

	code, _ = s.do(http.MethodGet, "/api/v1/appointments", nil, reader)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/v1/payments/"+uuid.NewString()+"/refund", nil, reader)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", env.ErrorCode)
}

func TestLogin(t *testing.T) {
	s := newServer(t)

	role := models.Role{Name: "manager", Permissions: []string{"appointments.read", "payments.read"}}
	require.NoError(t, s.db.Create(&role).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: "Carla", Email: "carla@salon.example", PasswordHash: string(hash), RoleID: &role.ID}
	require.NoError(t, s.db.Omit("Role").Create(&user).Error)

	code, env := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "Carla@Salon.example",
		"password": "s3cret!",
	}, "")
	require.Equal(t, http.StatusOK, code)

	out := decode[struct {
		Token string `json:"token"`
	}](t, env.Data)

	identity, err := s.tokens.Parse(out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "manager", identity.Role)
	assert.True(t, identity.Can(auth.PermPaymentsRead))
	assert.False(t, identity.Can(auth.PermPaymentsUpdate))

	code, env = s.do(http.MethodGet, "/api/v1/me", nil, out.Token)
	require.Equal(t, http.StatusOK, code)
	me := decode[struct {
		User        models.User   `json:"user"`
		Staff       *models.Staff `json:"staff"`
		Permissions []string      `json:"permissions"`
	}](t, env.Data)
	assert.Equal(t, "carla@salon.example", me.User.Email)
	assert.Nil(t, me.Staff)
	assert.Equal(t, []string{"appointments.read", "payments.read"}, me.Permissions)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "carla@salon.example",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_credentials", env.ErrorCode)
}

// ======================================================
// APPOINTMENTS + PAYMENTS
// ======================================================

func TestAppointmentLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	client := dbtest.SeedClient(t, s.db)
	staff := dbtest.SeedStaff(t, s.db)

	// create
	code, env := s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-10T10:00:00Z"), s.admin)
	require.Equal(t, http.StatusCreated, code, env.Message)

	created := decode[models.Appointment](t, env.Data)
	assert.Equal(t, "SCHEDULED", created.Status)
	assert.True(t, created.EndTime.Equal(dbtest.At(11, 0)))
	require.Len(t, created.Payments, 1)
	paymentID := created.Payments[0].ID

	// overlapping booking
	code, env = s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-10T10:30:00Z"), s.admin)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "time_conflict", env.ErrorCode)
	assert.Equal(t, "Time slot not available", env.Message)

	// touching booking
	code, _ = s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-10T11:00:00Z"), s.admin)
	assert.Equal(t, http.StatusCreated, code)

	// list
	code, env = s.do(http.MethodGet, "/api/v1/appointments?date=2025-03-10&limit=1", nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	// confirm the pending payment
	code, env = s.do(http.MethodPost, "/api/v1/payments/"+paymentID.String()+"/confirm", nil, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(http.MethodGet, "/api/v1/payments/"+paymentID.String(), nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	payment := decode[models.Payment](t, env.Data)
	assert.Equal(t, "PAID", payment.Status)
	require.Len(t, payment.Commissions, 1)
	assert.True(t, payment.Commissions[0].Amount.Equal(decimal.NewFromInt(40)))

	// detail
	code, env = s.do(http.MethodGet, "/api/v1/appointments/"+created.ID.String(), nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[models.Appointment](t, env.Data).IsPaid)

	// cancel leaves the PAID payment alone
	code, env = s.do(http.MethodPost, "/api/v1/appointments/"+created.ID.String()+"/cancel", nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "CANCELLED", decode[models.Appointment](t, env.Data).Status)

	var stored models.Payment
	require.NoError(t, s.db.First(&stored, "id = ?", paymentID).Error)
	assert.Equal(t, "PAID", stored.Status)

	// stats
	code, env = s.do(http.MethodGet, "/api/v1/appointments/stats?startDate=2025-03-10&endDate=2025-03-10", nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	stats := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 2, stats["total"])
	assert.EqualValues(t, 1, stats["cancelled"])
}

func TestNoShowBlocksOverHTTP(t *testing.T) {
	s := newServer(t)
	client := dbtest.SeedClient(t, s.db, func(c *models.Client) { c.NoShowCount = 2 })
	staff := dbtest.SeedStaff(t, s.db)

	code, env := s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-10T09:00:00Z"), s.admin)
	require.Equal(t, http.StatusCreated, code)
	id := decode[models.Appointment](t, env.Data).ID

	code, _ = s.do(http.MethodPost, "/api/v1/appointments/"+id.String()+"/no-show", nil, s.admin)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-11T09:00:00Z"), s.admin)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "client_blocked", env.ErrorCode)

	code, env = s.do(http.MethodPatch, "/api/v1/clients/"+client.ID.String()+"/unblock", nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	unblocked := decode[models.Client](t, env.Data)
	assert.False(t, unblocked.IsBlocked)
	assert.Equal(t, 3, unblocked.NoShowCount)

	code, _ = s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-11T09:00:00Z"), s.admin)
	assert.Equal(t, http.StatusCreated, code)
}

func TestRequestValidation(t *testing.T) {
	s := newServer(t)
	client := dbtest.SeedClient(t, s.db)
	staff := dbtest.SeedStaff(t, s.db)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"bad id", http.MethodGet, "/api/v1/appointments/not-a-uuid", nil, 400, "invalid_id"},
		{"unknown appointment", http.MethodGet, "/api/v1/appointments/" + uuid.NewString(), nil, 404, "appointment_not_found"},
		{"availability without staff", http.MethodGet, "/api/v1/appointments/availability?date=2025-03-10", nil, 400, "missing_staff_id"},
		{"bad date", http.MethodGet, "/api/v1/appointments?date=10/03/2025", nil, 400, "invalid_date"},
		{"stats without range", http.MethodGet, "/api/v1/appointments/stats", nil, 400, "missing_date_range"},
		{"bad start time", http.MethodPost, "/api/v1/appointments", bookingBody(client.ID, staff.ID, "tomorrow"), 400, "invalid_date_or_time"},
		{
			"no services", http.MethodPost, "/api/v1/appointments",
			map[string]any{"clientId": client.ID, "staffId": staff.ID, "startTime": "2025-03-10T10:00:00Z", "services": []any{}},
			400, "services_required",
		},
		{"unknown staff", http.MethodPost, "/api/v1/appointments", bookingBody(client.ID, uuid.New(), "2025-03-10T10:00:00Z"), 400, "staff_unavailable"},
		{"bad payment method", http.MethodPatch, "/api/v1/payments/" + uuid.NewString() + "/method", map[string]string{"method": "GOLD"}, 400, "invalid_payment_method"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := s.do(tc.method, tc.path, tc.body, s.admin)
			assert.Equal(t, tc.status, code)
			assert.Equal(t, tc.code, env.ErrorCode)
		})
	}
}

// ======================================================
// CLIENTS / STAFF
// ======================================================

func TestClients(t *testing.T) {
	s := newServer(t)

	body := map[string]any{"name": "Joana", "phone": "+5511999990000", "consent": true}

	code, env := s.do(http.MethodPost, "/api/v1/clients", body, s.admin)
	require.Equal(t, http.StatusCreated, code)
	created := decode[models.Client](t, env.Data)
	assert.NotNil(t, created.ConsentAt)

	code, env = s.do(http.MethodPost, "/api/v1/clients", body, s.admin)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "phone_already_registered", env.ErrorCode)

	code, env = s.do(http.MethodGet, "/api/v1/clients?query=joa", nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, env.Pagination.Total)

	code, _ = s.do(http.MethodGet, "/api/v1/clients/"+created.ID.String(), nil, s.admin)
	assert.Equal(t, http.StatusOK, code)
}

func TestStaffSetupAndAvailability(t *testing.T) {
	s := newServer(t)
	client := dbtest.SeedClient(t, s.db)

	code, env := s.do(http.MethodPost, "/api/v1/staff", map[string]any{
		"name":            "Bruna",
		"email":           "bruna@salon.example",
		"password":        "123456",
		"specialties":     []string{"nails"},
		"commissionType":  "table",
		"commissionValue": "0",
	}, s.admin)
	require.Equal(t, http.StatusCreated, code, env.Message)
	staff := decode[models.Staff](t, env.Data)
	assert.Equal(t, "TABLE", staff.CommissionType)
	assert.True(t, staff.IsAvailable)

	code, env = s.do(http.MethodPut, "/api/v1/staff/"+staff.ID.String()+"/working-hours", map[string]any{
		"days": []map[string]any{
			{"weekday": 1, "active": true, "startTime": "09:00", "endTime": "12:00"},
			{"weekday": 0, "active": false},
		},
	}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(http.MethodPut, "/api/v1/staff/"+staff.ID.String()+"/working-hours", map[string]any{
		"days": []map[string]any{{"weekday": 2, "active": true, "startTime": "18:00", "endTime": "09:00"}},
	}, s.admin)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_working_hours", env.ErrorCode)

	code, env = s.do(http.MethodPut, "/api/v1/staff/"+staff.ID.String()+"/commission-tiers", map[string]any{
		"tiers": []map[string]any{
			{"minAmount": "0", "maxAmount": "100", "rate": "10"},
			{"minAmount": "100", "rate": "20"},
		},
	}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(http.MethodGet, "/api/v1/staff/"+staff.ID.String(), nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	full := decode[models.Staff](t, env.Data)
	assert.Len(t, full.WorkingHours, 2)
	assert.Len(t, full.CommissionTiers, 2)
	require.NotNil(t, full.User)
	assert.Equal(t, "Bruna", full.User.Name)

	code, _ = s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-10T10:00:00Z"), s.admin)
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet,
		"/api/v1/appointments/availability?staffId="+staff.ID.String()+"&date=2025-03-10&duration=60", nil, s.admin)
	require.Equal(t, http.StatusOK, code)

	avail := decode[struct {
		Date  string `json:"date"`
		Slots []struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"slots"`
		Appointments []models.Appointment `json:"appointments"`
	}](t, env.Data)
	assert.Equal(t, "2025-03-10", avail.Date)
	assert.Len(t, avail.Appointments, 1)
	require.Len(t, avail.Slots, 2)
	assert.Equal(t, "09:00", avail.Slots[0].Start)
	assert.Equal(t, "11:00", avail.Slots[1].Start)
}

type slotView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (s *server) slots(staffID uuid.UUID) []slotView {
	s.t.Helper()

	code, env := s.do(http.MethodGet,
		"/api/v1/appointments/availability?staffId="+staffID.String()+"&date=2025-03-10&duration=60", nil, s.admin)
	require.Equal(s.t, http.StatusOK, code, env.Message)

	return decode[struct {
		Slots []slotView `json:"slots"`
	}](s.t, env.Data).Slots
}

func withCache(c *memoryCache) func(*Deps) {
	return func(d *Deps) { d.Cache = c }
}

func TestWorkingHoursChangeRefreshesCachedAvailability(t *testing.T) {
	s := newServer(t, withCache(newMemoryCache()))
	staff := dbtest.SeedStaff(t, s.db)
	hoursPath := "/api/v1/staff/" + staff.ID.String() + "/working-hours"

	code, env := s.do(http.MethodPut, hoursPath, map[string]any{
		"days": []map[string]any{{"weekday": 1, "active": true, "startTime": "09:00", "endTime": "10:00"}},
	}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, []slotView{{Start: "09:00", End: "10:00"}}, s.slots(staff.ID))

	code, env = s.do(http.MethodPut, hoursPath, map[string]any{
		"days": []map[string]any{{"weekday": 1, "active": true, "startTime": "14:00", "endTime": "16:00"}},
	}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, []slotView{
		{Start: "14:00", End: "15:00"},
		{Start: "15:00", End: "16:00"},
	}, s.slots(staff.ID))
}

func TestStaffUpdate(t *testing.T) {
	s := newServer(t, withCache(newMemoryCache()))
	client := dbtest.SeedClient(t, s.db)
	staff := dbtest.SeedStaff(t, s.db)
	staffPath := "/api/v1/staff/" + staff.ID.String()

	code, env := s.do(http.MethodPut, staffPath+"/working-hours", map[string]any{
		"days": []map[string]any{{"weekday": 1, "active": true, "startTime": "09:00", "endTime": "11:00"}},
	}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)
	require.Len(t, s.slots(staff.ID), 2)

	// disabling the staff member closes the agenda
	code, env = s.do(http.MethodPut, staffPath, map[string]any{"isAvailable": false}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)
	updated := decode[models.Staff](t, env.Data)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "PERCENT", updated.CommissionType)

	assert.Empty(t, s.slots(staff.ID))

	code, env = s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-10T09:00:00Z"), s.admin)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "staff_unavailable", env.ErrorCode)

	// back on duty but off that day
	code, env = s.do(http.MethodPut, staffPath, map[string]any{
		"isAvailable":  true,
		"blockedDates": []string{"2025-03-10"},
	}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, []string{"2025-03-10"}, decode[models.Staff](t, env.Data).BlockedDates)
	assert.Empty(t, s.slots(staff.ID))

	code, env = s.do(http.MethodPut, staffPath, map[string]any{
		"blockedDates":    []string{},
		"commissionType":  "fixed",
		"commissionValue": "30",
		"name":            "Ana Paula",
	}, s.admin)
	require.Equal(t, http.StatusOK, code, env.Message)
	updated = decode[models.Staff](t, env.Data)
	assert.Equal(t, "FIXED", updated.CommissionType)
	assert.Equal(t, "30.00", updated.CommissionValue.StringFixed(2))
	require.NotNil(t, updated.User)
	assert.Equal(t, "Ana Paula", updated.User.Name)
	assert.Len(t, s.slots(staff.ID), 2)

	code, _ = s.do(http.MethodPost, "/api/v1/appointments",
		bookingBody(client.ID, staff.ID, "2025-03-10T09:00:00Z"), s.admin)
	assert.Equal(t, http.StatusCreated, code)

	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{"percent above 100", map[string]any{"commissionType": "percent", "commissionValue": "150"}, "invalid_commission_value"},
		{"negative value", map[string]any{"commissionValue": "-1"}, "invalid_commission_value"},
		{"unknown type", map[string]any{"commissionType": "split"}, "invalid_commission_type"},
		{"bad blocked date", map[string]any{"blockedDates": []string{"10/03/2025"}}, "invalid_date"},
		{"empty name", map[string]any{"name": "  "}, "invalid_name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := s.do(http.MethodPut, staffPath, tc.body, s.admin)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tc.code, env.ErrorCode)
		})
	}

	var stored models.Staff
	require.NoError(t, s.db.First(&stored, "id = ?", staff.ID).Error)
	assert.Equal(t, "FIXED", stored.CommissionType)

	code, env = s.do(http.MethodPut, "/api/v1/staff/"+uuid.NewString(), map[string]any{"isAvailable": true}, s.admin)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "staff_not_found", env.ErrorCode)
}

func TestAuditLogs(t *testing.T) {
	s := newServer(t)

	id := uuid.New()
	require.NoError(t, s.db.Create(&models.AuditLog{Action: "payment_refunded", Entity: "payment", EntityID: &id}).Error)
	require.NoError(t, s.db.Create(&models.AuditLog{Action: "appointment_created", Entity: "appointment"}).Error)

	code, env := s.do(http.MethodGet, "/api/v1/audit-logs?entity=payment", nil, s.admin)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, env.Pagination.Total)

	logs := decode[[]models.AuditLog](t, env.Data)
	require.Len(t, logs, 1)
	assert.Equal(t, "payment_refunded", logs[0].Action)
}
