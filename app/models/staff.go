package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	STAFF_ADMIN        = "admin"
	STAFF_DOCTOR       = "doctor"
	STAFF_THERAPIST    = "therapist"
	STAFF_NURSE        = "nurse"
	STAFF_RECEPTIONIST = "receptionist"
)

type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(100)" json:"first_name" validate:"required,max=100"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name" validate:"required,max=100"`
	Email     string    `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email"`
	Role      string    `gorm:"type:varchar(30);default:'receptionist'" json:"role" validate:"omitempty,oneof=admin doctor therapist nurse receptionist"`
	Phone     string    `gorm:"type:varchar(50);default:null" json:"phone"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Staff) Validate() error {
	return validator.New().Struct(s)
}
