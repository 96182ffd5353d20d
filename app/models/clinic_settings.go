package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ClinicSettings is a single-row table in every tenant store holding the
// clinic profile. BusinessHours is a JSON object keyed by weekday.
type ClinicSettings struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClinicName    string    `gorm:"type:varchar(150)" json:"clinic_name" validate:"required,max=150"`
	ClinicAddress string    `gorm:"type:varchar(255);default:null" json:"clinic_address"`
	ClinicPhone   string    `gorm:"type:varchar(50);default:null" json:"clinic_phone"`
	ClinicEmail   string    `gorm:"type:varchar(200);default:null" json:"clinic_email" validate:"omitempty,email"`
	BusinessHours string    `gorm:"type:text" json:"business_hours"`
	Timezone      string    `gorm:"type:varchar(64);default:'UTC'" json:"timezone"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *ClinicSettings) Validate() error {
	return validator.New().Struct(s)
}
