package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Patient lives in a tenant store.
type Patient struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	FirstName      string     `gorm:"type:varchar(100)" json:"first_name" validate:"required,max=100"`
	LastName       string     `gorm:"type:varchar(100)" json:"last_name" validate:"required,max=100"`
	Email          string     `gorm:"type:varchar(200);default:null" json:"email" validate:"omitempty,email"`
	Phone          string     `gorm:"type:varchar(50);default:null" json:"phone"`
	DateOfBirth    *time.Time `gorm:"type:date;default:null" json:"date_of_birth"`
	Address        string     `gorm:"type:varchar(255);default:null" json:"address"`
	MedicalHistory string     `gorm:"type:text" json:"medical_history"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Patient) Validate() error {
	return validator.New().Struct(p)
}
