package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	EXPENSE_PENDING  = "pending"
	EXPENSE_APPROVED = "approved"
	EXPENSE_PAID     = "paid"
	EXPENSE_REJECTED = "rejected"
)

type Expense struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ExpenseNumber      string     `gorm:"uniqueIndex;type:varchar(100)" json:"expense_number" validate:"required"`
	Description        string     `gorm:"type:varchar(255)" json:"description" validate:"required,max=255"`
	Amount             float64    `gorm:"type:decimal(12,2)" json:"amount" validate:"required,gt=0"`
	Category           string     `gorm:"type:varchar(30);default:'other';index" json:"category" validate:"omitempty,oneof=rent utilities supplies salary maintenance inventory marketing insurance taxes other"`
	Date               time.Time  `gorm:"type:timestamp;index" json:"date"`
	PaymentMethod      string     `gorm:"type:varchar(30);default:null" json:"payment_method" validate:"omitempty,oneof=cash card bank_transfer cheque other"`
	Recipient          string     `gorm:"type:varchar(200);default:null" json:"recipient"`
	ReceiptURL         string     `gorm:"type:varchar(255);default:null" json:"receipt_url"`
	ReceiptNumber      string     `gorm:"type:varchar(100);default:null" json:"receipt_number"`
	ApprovedBy         string     `gorm:"type:varchar(150);default:null" json:"approved_by"`
	Tags               StringList `gorm:"type:text" json:"tags"`
	IsRecurring        bool       `gorm:"default:false" json:"is_recurring"`
	RecurringFrequency string     `gorm:"type:varchar(20);default:null" json:"recurring_frequency" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Status             string     `gorm:"type:varchar(20);default:'approved'" json:"status" validate:"omitempty,oneof=pending approved paid rejected"`
	CreatedBy          string     `gorm:"type:varchar(150);default:null" json:"created_by"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Expense) Validate() error {
	return validator.New().Struct(e)
}
