package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MOVEMENT_PURCHASE   = "purchase"
	MOVEMENT_SALE       = "sale"
	MOVEMENT_ADJUSTMENT = "adjustment"
	MOVEMENT_RETURN     = "return"
	MOVEMENT_EXPIRED    = "expired"
	MOVEMENT_DAMAGED    = "damaged"
)

// StockMovement is the audit trail for every inventory quantity change.
type StockMovement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MedicineID    uint      `gorm:"index" json:"medicine_id" validate:"required"`
	MedicineName  string    `gorm:"type:varchar(200)" json:"medicine_name"`
	Type          string    `gorm:"type:varchar(20)" json:"type" validate:"required,oneof=purchase sale adjustment return expired damaged"`
	Quantity      int       `json:"quantity" validate:"required"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `gorm:"type:varchar(255);default:null" json:"reason"`
	ReferenceID   *uint     `json:"reference_id"`
	ReferenceType string    `gorm:"type:varchar(50);default:null" json:"reference_type"`
	PerformedBy   string    `gorm:"type:varchar(150);default:null" json:"performed_by"`
	Date          time.Time `gorm:"type:timestamp;index" json:"date"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *StockMovement) Validate() error {
	return validator.New().Struct(m)
}
