package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	INVOICE_PAID           = "paid"
	INVOICE_PARTIALLY_PAID = "partially_paid"
	INVOICE_UNPAID         = "unpaid"
	INVOICE_OVERDUE        = "overdue"

	INVOICE_TYPE_PATIENT  = "patient"
	INVOICE_TYPE_PHARMACY = "pharmacy"
	INVOICE_TYPE_OTHER    = "other"
)

// InvoiceItem is one billed line; migrated together with Invoice.
type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InvoiceID   uint    `gorm:"index" json:"invoice_id"`
	Description string  `gorm:"type:varchar(255)" json:"description"`
	Amount      float64 `gorm:"type:decimal(12,2)" json:"amount"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	TotalAmount float64 `gorm:"type:decimal(12,2)" json:"total_amount"`
}

// Invoice is a billed document in a tenant store. InvoiceNumber is unique
// within the store; Balance tracks what remains after payments.
type Invoice struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string        `gorm:"uniqueIndex;type:varchar(100)" json:"invoice_number" validate:"required"`
	PatientID      *uint         `gorm:"index" json:"patient_id"`
	CustomerName   string        `gorm:"type:varchar(200);default:null" json:"customer_name"`
	Type           string        `gorm:"type:varchar(20);default:'patient'" json:"type" validate:"omitempty,oneof=patient pharmacy other"`
	Items          []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	Subtotal       float64       `gorm:"type:decimal(12,2)" json:"subtotal" validate:"gte=0"`
	TaxAmount      float64       `gorm:"type:decimal(12,2);default:0" json:"tax_amount"`
	DiscountAmount float64       `gorm:"type:decimal(12,2);default:0" json:"discount_amount"`
	TotalAmount    float64       `gorm:"type:decimal(12,2)" json:"total_amount" validate:"gte=0"`
	PaidAmount     float64       `gorm:"type:decimal(12,2);default:0" json:"paid_amount"`
	Balance        float64       `gorm:"type:decimal(12,2)" json:"balance"`
	Status         string        `gorm:"type:varchar(20);default:'unpaid';index" json:"status" validate:"omitempty,oneof=paid partially_paid unpaid overdue"`
	DueDate        *time.Time    `gorm:"type:timestamp;default:null" json:"due_date"`
	PaymentMethod  string        `gorm:"type:varchar(30);default:null" json:"payment_method"`
	PaymentTerms   string        `gorm:"type:varchar(150);default:null" json:"payment_terms"`
	Notes          string        `gorm:"type:text" json:"notes"`
	CreatedBy      string        `gorm:"type:varchar(150);default:null" json:"created_by"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Invoice) Validate() error {
	return validator.New().Struct(i)
}

// IsOverdue reports whether an unpaid balance is past its due date.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Balance > 0 && i.DueDate != nil && now.After(*i.DueDate)
}
