// Package dbtest opens throwaway in-memory stores and seeds fixtures for
// repository and use case tests.
package dbtest

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/db"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

// New returns a migrated in-memory sqlite database. A single connection
// keeps the memory database shared and serialises transactions the way
// the staff row lock does on Postgres.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: db.UTCNow,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return gdb
}

// NewPostgres opens the database at TEST_DATABASE_URL with the overlap
// constraint installed, skipping the test when the variable is unset. Every
// table is truncated when the test ends.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: db.UTCNow,
	})
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.InstallOverlapConstraint(gdb); err != nil {
		t.Fatalf("failed to install overlap constraint: %v", err)
	}

	t.Cleanup(func() {
		gdb.Exec(`TRUNCATE commissions, payments, appointments, commission_tiers,
			working_hours, staffs, clients, audit_logs, users, roles CASCADE`)
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}

func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Day is a fixed Monday used by the fixtures.
func Day() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

// At returns hh:mm on Day.
func At(hour, minute int) time.Time {
	return Day().Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func SeedClient(t *testing.T, gdb *gorm.DB, mutate ...func(*models.Client)) *models.Client {
	t.Helper()

	c := &models.Client{
		Name:  "Maria Souza",
		Phone: "+55" + uuid.NewString()[:11],
		Email: "maria@example.com",
	}
	for _, m := range mutate {
		m(c)
	}
	if err := gdb.Create(c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func SeedStaff(t *testing.T, gdb *gorm.DB, mutate ...func(*models.Staff)) *models.Staff {
	t.Helper()

	u := &models.User{
		Name:         "Ana Lima",
		Email:        uuid.NewString() + "@salon.example",
		PasswordHash: "x",
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	s := &models.Staff{
		UserID:          u.ID,
		Specialties:     []string{"hair"},
		CommissionType:  "PERCENT",
		CommissionValue: Money("40"),
		IsAvailable:     true,
		BlockedDates:    []string{},
	}
	for _, m := range mutate {
		m(s)
	}
	if err := gdb.Omit("User").Create(s).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return s
}

// Services returns a single 60 minute, 100.00 service.
func Services() []models.ServiceItem {
	return []models.ServiceItem{
		{ID: uuid.New(), Name: "Corte feminino", Price: Money("100.00"), Duration: 60},
	}
}
