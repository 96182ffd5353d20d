package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	REVENUE_CONSULTATION = "patient-consultation"
	REVENUE_PHARMACY     = "pharmacy-sales"
	REVENUE_LAB          = "lab-tests"
	REVENUE_PROCEDURES   = "procedures"
	REVENUE_OTHER        = "other"
)

type Revenue struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Source        string    `gorm:"type:varchar(30);index" json:"source" validate:"required,oneof=patient-consultation pharmacy-sales lab-tests procedures other"`
	Amount        float64   `gorm:"type:decimal(12,2)" json:"amount" validate:"required,gt=0"`
	Date          time.Time `gorm:"type:timestamp;index" json:"date"`
	Category      string    `gorm:"type:varchar(100);default:null" json:"category"`
	Description   string    `gorm:"type:varchar(255);default:null" json:"description"`
	ReferenceType string    `gorm:"type:varchar(50);default:null" json:"reference_type"`
	ReferenceID   *uint     `json:"reference_id"`
	PaymentMethod string    `gorm:"type:varchar(30);default:null" json:"payment_method"`
	CreatedBy     string    `gorm:"type:varchar(150);default:null" json:"created_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Revenue) Validate() error {
	return validator.New().Struct(r)
}
