package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	APPOINTMENT_SCHEDULED = "scheduled"
	APPOINTMENT_COMPLETED = "completed"
	APPOINTMENT_CANCELLED = "cancelled"
	APPOINTMENT_NO_SHOW   = "no-show"
)

type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientID       uint      `gorm:"index" json:"patient_id" validate:"required"`
	AppointmentDate time.Time `gorm:"type:timestamp;index" json:"appointment_date" validate:"required"`
	AppointmentType string    `gorm:"type:varchar(100)" json:"appointment_type"`
	Duration        int       `json:"duration"` // minutes
	Status          string    `gorm:"type:varchar(20);default:'scheduled'" json:"status" validate:"omitempty,oneof=scheduled completed cancelled no-show"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Appointment) Validate() error {
	return validator.New().Struct(a)
}
