package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PAYMENT_CASH      = "cash"
	PAYMENT_CARD      = "card"
	PAYMENT_UPI       = "upi"
	PAYMENT_INSURANCE = "insurance"
	PAYMENT_OTHER     = "other"
)

// Sale records one sold inventory line. Denormalized name/price fields keep
// the row meaningful after the inventory item changes.
type Sale struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MedicineID    uint      `gorm:"index" json:"medicine_id" validate:"required"`
	MedicineName  string    `gorm:"type:varchar(200)" json:"medicine_name"`
	Quantity      int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64   `gorm:"type:decimal(12,2)" json:"unit_price" validate:"required,gte=0"`
	CostPrice     float64   `gorm:"type:decimal(12,2)" json:"cost_price" validate:"gte=0"`
	TotalAmount   float64   `gorm:"type:decimal(12,2)" json:"total_amount" validate:"gte=0"`
	Discount      float64   `gorm:"type:decimal(12,2);default:0" json:"discount"`
	TaxAmount     float64   `gorm:"type:decimal(12,2);default:0" json:"tax_amount"`
	Profit        float64   `gorm:"type:decimal(12,2)" json:"profit"`
	PaymentMethod string    `gorm:"type:varchar(20);default:'cash'" json:"payment_method" validate:"omitempty,oneof=cash card upi insurance other"`
	CustomerID    *uint     `gorm:"index" json:"customer_id"`
	CustomerName  string    `gorm:"type:varchar(200);default:null" json:"customer_name"`
	SoldBy        string    `gorm:"type:varchar(150);default:null" json:"sold_by"`
	SaleDate      time.Time `gorm:"type:timestamp;index" json:"sale_date"`
	InvoiceNumber string    `gorm:"type:varchar(100);default:null" json:"invoice_number"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Sale) Validate() error {
	return validator.New().Struct(s)
}
