package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	LEDGER_DEBIT  = "debit"
	LEDGER_CREDIT = "credit"
)

// LedgerEntry is one line of the per-store account ledger. Balance is the
// running balance after this entry.
type LedgerEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Date            time.Time `gorm:"type:timestamp;index" json:"date"`
	Type            string    `gorm:"type:varchar(10)" json:"type" validate:"required,oneof=debit credit"`
	Category        string    `gorm:"type:varchar(100)" json:"category" validate:"required,max=100"`
	Amount          float64   `gorm:"type:decimal(12,2)" json:"amount" validate:"required,gt=0"`
	Balance         float64   `gorm:"type:decimal(12,2)" json:"balance"`
	Description     string    `gorm:"type:varchar(255);default:null" json:"description"`
	ReferenceType   string    `gorm:"type:varchar(50);default:null" json:"reference_type"`
	ReferenceID     *uint     `json:"reference_id"`
	ReferenceNumber string    `gorm:"type:varchar(100);default:null" json:"reference_number"`
	CreatedBy       string    `gorm:"type:varchar(150);default:null" json:"created_by"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *LedgerEntry) Validate() error {
	return validator.New().Struct(l)
}
