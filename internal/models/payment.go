package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// nil for standalone payments (product sales, deposits)
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"clientId"`
	Client   *Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method string          `gorm:"size:10;not null;default:'CASH'" json:"method"`
	Status string          `gorm:"size:10;not null;default:'PENDING';index" json:"status"`

	GatewayReference string     `gorm:"size:120" json:"gatewayReference"`
	PaidAt           *time.Time `json:"paidAt"`

	Commissions []Commission `gorm:"foreignKey:PaymentID" json:"commissions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Commission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"paymentId"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;index" json:"staffId"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	IsPaid bool            `gorm:"not null" json:"isPaid"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
