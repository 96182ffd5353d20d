package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PAYMENT_STATUS_COMPLETED = "completed"
	PAYMENT_STATUS_PENDING   = "pending"
	PAYMENT_STATUS_FAILED    = "failed"
	PAYMENT_STATUS_REFUNDED  = "refunded"
)

// Payment records money received, optionally against an invoice.
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PaymentNumber   string    `gorm:"uniqueIndex;type:varchar(100)" json:"payment_number" validate:"required"`
	InvoiceID       *uint     `gorm:"index" json:"invoice_id"`
	InvoiceNumber   string    `gorm:"type:varchar(100);default:null" json:"invoice_number"`
	Amount          float64   `gorm:"type:decimal(12,2)" json:"amount" validate:"required,gt=0"`
	PaymentMethod   string    `gorm:"type:varchar(30)" json:"payment_method" validate:"required,oneof=cash card bank_transfer upi cheque other"`
	PaymentDate     time.Time `gorm:"type:timestamp;index" json:"payment_date"`
	TransactionID   string    `gorm:"type:varchar(100);default:null" json:"transaction_id"`
	ReferenceNumber string    `gorm:"type:varchar(100);default:null" json:"reference_number"`
	Notes           string    `gorm:"type:text" json:"notes"`
	ReceivedBy      string    `gorm:"type:varchar(150);default:null" json:"received_by"`
	Status          string    `gorm:"type:varchar(20);default:'completed'" json:"status" validate:"omitempty,oneof=completed pending failed refunded"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Payment) Validate() error {
	return validator.New().Struct(p)
}
