package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	TAX_PENDING = "pending"
	TAX_FILED   = "filed"
	TAX_PAID    = "paid"
)

type TaxRecord struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Period           string     `gorm:"type:varchar(20);index" json:"period" validate:"required"`
	PeriodType       string     `gorm:"type:varchar(20);default:'monthly'" json:"period_type" validate:"omitempty,oneof=monthly quarterly yearly"`
	TotalRevenue     float64    `gorm:"type:decimal(12,2)" json:"total_revenue" validate:"gte=0"`
	TaxableAmount    float64    `gorm:"type:decimal(12,2)" json:"taxable_amount" validate:"gte=0"`
	TaxRate          float64    `gorm:"type:decimal(5,2)" json:"tax_rate" validate:"gte=0"`
	TaxAmount        float64    `gorm:"type:decimal(12,2)" json:"tax_amount" validate:"gte=0"`
	Status           string     `gorm:"type:varchar(20);default:'pending'" json:"status" validate:"omitempty,oneof=pending filed paid"`
	FiledDate        *time.Time `gorm:"type:timestamp;default:null" json:"filed_date"`
	PaidDate         *time.Time `gorm:"type:timestamp;default:null" json:"paid_date"`
	PaymentReference string     `gorm:"type:varchar(100);default:null" json:"payment_reference"`
	Notes            string     `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *TaxRecord) Validate() error {
	return validator.New().Struct(t)
}
