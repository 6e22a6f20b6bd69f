package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkingHours struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_working_hours_staff_weekday" json:"staffId"`

	Weekday int `gorm:"not null;uniqueIndex:idx_working_hours_staff_weekday" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"startTime"`
	EndTime    string `gorm:"size:5" json:"endTime"`
	BreakStart string `gorm:"size:5" json:"breakStart"`
	BreakEnd   string `gorm:"size:5" json:"breakEnd"`
	Active     bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *WorkingHours) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
