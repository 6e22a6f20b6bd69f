package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Staff struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`

	Specialties []string `gorm:"type:jsonb;serializer:json" json:"specialties"`

	CommissionType  string          `gorm:"size:10;not null;default:'PERCENT'" json:"commissionType"`
	CommissionValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commissionValue"`

	IsAvailable bool `gorm:"not null" json:"isAvailable"`

	// YYYY-MM-DD days with no availability (vacations, courses...)
	BlockedDates []string `gorm:"type:jsonb;serializer:json" json:"blockedDates"`

	WorkingHours    []WorkingHours   `gorm:"foreignKey:StaffID" json:"workingHours,omitempty"`
	CommissionTiers []CommissionTier `gorm:"foreignKey:StaffID" json:"commissionTiers,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CommissionTier is one bracket of a TABLE commission policy. MaxAmount
// is open ended when not valid.
type CommissionTier struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;index" json:"staffId"`

	MinAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"minAmount"`
	MaxAmount decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"maxAmount"`
	Rate      decimal.Decimal     `gorm:"type:decimal(5,2);not null" json:"rate"`

	CreatedAt time.Time `json:"createdAt"`
}

func (t *CommissionTier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
