package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceItem is the snapshot of a catalogue service taken when the
// appointment is booked. Later price or duration changes in the catalogue
// never touch an existing appointment.
type ServiceItem struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
}

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"clientId"`
	Client   *Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	StaffID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_staff_start" json:"staffId"`
	Staff   *Staff    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"staff,omitempty"`

	StartTime time.Time `gorm:"not null;index:idx_appointments_staff_start" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	Status string `gorm:"size:20;not null;default:'SCHEDULED';index" json:"status"`

	Services    []ServiceItem   `gorm:"type:jsonb;serializer:json" json:"services"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`

	Notes     string     `gorm:"size:500" json:"notes"`
	IsPaid    bool       `gorm:"not null" json:"isPaid"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"createdBy"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	Payments []Payment `gorm:"foreignKey:AppointmentID" json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
