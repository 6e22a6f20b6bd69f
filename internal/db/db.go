package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/config"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
		NowFunc:     UTCNow,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	if err := InstallOverlapConstraint(db); err != nil {
		log.Warn("could not install overlap constraint", zap.Error(err))
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Client{},
		&models.Staff{},
		&models.WorkingHours{},
		&models.CommissionTier{},
		&models.Appointment{},
		&models.Payment{},
		&models.Commission{},
		&models.AuditLog{},
	)
}

// InstallOverlapConstraint makes Postgres refuse overlapping live
// bookings for one staff member.
func InstallOverlapConstraint(db *gorm.DB) error {
	for _, stmt := range []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$ BEGIN
			ALTER TABLE appointments ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (staff_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
			WHERE (status NOT IN ('CANCELLED', 'NO_SHOW'));
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// UTCNow stamps CreatedAt/UpdatedAt in UTC so day filters line up.
func UTCNow() time.Time {
	return time.Now().UTC()
}
