package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// BankDetails is embedded into Supplier as bank_* columns.
type BankDetails struct {
	AccountName   string `gorm:"type:varchar(150);default:null" json:"account_name"`
	AccountNumber string `gorm:"type:varchar(50);default:null" json:"account_number"`
	BankName      string `gorm:"type:varchar(150);default:null" json:"bank_name"`
	IFSCCode      string `gorm:"type:varchar(20);default:null" json:"ifsc_code"`
}

type Supplier struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Name          string      `gorm:"type:varchar(150);index" json:"name" validate:"required,max=150"`
	ContactPerson string      `gorm:"type:varchar(150);default:null" json:"contact_person"`
	Email         string      `gorm:"type:varchar(200);default:null" json:"email" validate:"omitempty,email"`
	Phone         string      `gorm:"type:varchar(50)" json:"phone" validate:"required,max=50"`
	Address       string      `gorm:"type:varchar(255);default:null" json:"address"`
	City          string      `gorm:"type:varchar(100);default:null" json:"city"`
	State         string      `gorm:"type:varchar(100);default:null" json:"state"`
	Country       string      `gorm:"type:varchar(100);default:null" json:"country"`
	TaxID         string      `gorm:"type:varchar(50);default:null" json:"tax_id"`
	PaymentTerms  string      `gorm:"type:varchar(150);default:null" json:"payment_terms"`
	BankDetails   BankDetails `gorm:"embedded;embeddedPrefix:bank_" json:"bank_details"`
	IsActive      bool        `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Supplier) Validate() error {
	return validator.New().Struct(s)
}
