package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PO_PENDING            = "pending"
	PO_APPROVED           = "approved"
	PO_RECEIVED           = "received"
	PO_PARTIALLY_RECEIVED = "partially_received"
	PO_CANCELLED          = "cancelled"

	PO_PAYMENT_PENDING = "pending"
	PO_PAYMENT_PARTIAL = "partial"
	PO_PAYMENT_PAID    = "paid"
)

// PurchaseOrderItem is one ordered line; migrated together with PurchaseOrder.
type PurchaseOrderItem struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint       `gorm:"index" json:"purchase_order_id"`
	MedicineID      uint       `json:"medicine_id"`
	MedicineName    string     `gorm:"type:varchar(200)" json:"medicine_name"`
	Quantity        int        `json:"quantity" validate:"required,gt=0"`
	UnitCost        float64    `gorm:"type:decimal(12,2)" json:"unit_cost" validate:"required,gte=0"`
	TotalCost       float64    `gorm:"type:decimal(12,2)" json:"total_cost"`
	BatchNumber     string     `gorm:"type:varchar(100);default:null" json:"batch_number"`
	ExpiryDate      *time.Time `gorm:"type:date;default:null" json:"expiry_date"`
}

// PurchaseOrder tracks restocking from a supplier. PONumber is unique within
// the owning tenant store.
type PurchaseOrder struct {
	ID                   uint                `gorm:"primaryKey" json:"id"`
	PONumber             string              `gorm:"uniqueIndex;type:varchar(100)" json:"po_number" validate:"required"`
	SupplierID           uint                `gorm:"index" json:"supplier_id" validate:"required"`
	SupplierName         string              `gorm:"type:varchar(150)" json:"supplier_name"`
	Items                []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items" validate:"required,min=1,dive"`
	TotalAmount          float64             `gorm:"type:decimal(12,2)" json:"total_amount"`
	TaxAmount            float64             `gorm:"type:decimal(12,2);default:0" json:"tax_amount"`
	GrandTotal           float64             `gorm:"type:decimal(12,2)" json:"grand_total"`
	Status               string              `gorm:"type:varchar(30);default:'pending'" json:"status" validate:"omitempty,oneof=pending approved received partially_received cancelled"`
	OrderDate            time.Time           `gorm:"type:timestamp" json:"order_date"`
	ExpectedDeliveryDate *time.Time          `gorm:"type:timestamp;default:null" json:"expected_delivery_date"`
	ReceivedDate         *time.Time          `gorm:"type:timestamp;default:null" json:"received_date"`
	InvoiceNumber        string              `gorm:"type:varchar(100);default:null" json:"invoice_number"`
	PaymentStatus        string              `gorm:"type:varchar(20);default:'pending'" json:"payment_status" validate:"omitempty,oneof=pending partial paid"`
	PaidAmount           float64             `gorm:"type:decimal(12,2);default:0" json:"paid_amount"`
	Notes                string              `gorm:"type:text" json:"notes"`
	CreatedBy            string              `gorm:"type:varchar(150);default:null" json:"created_by"`
	CreatedAt            time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PurchaseOrder) Validate() error {
	return validator.New().Struct(p)
}
