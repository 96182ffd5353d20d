package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ITEM_ACTIVE       = "active"
	ITEM_DISCONTINUED = "discontinued"
	ITEM_OUT_OF_STOCK = "out-of-stock"
)

// InventoryItem is a pharmacy stock item. SKU is unique within the owning
// tenant store only; stores never share inventory.
type InventoryItem struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Name                 string     `gorm:"type:varchar(200);index" json:"name" validate:"required,max=200"`
	Description          string     `gorm:"type:text" json:"description"`
	SKU                  string     `gorm:"uniqueIndex;type:varchar(100);default:null" json:"sku"`
	Category             string     `gorm:"type:varchar(100);default:'general'" json:"category"`
	Manufacturer         string     `gorm:"type:varchar(150);default:null" json:"manufacturer"`
	BatchNumber          string     `gorm:"type:varchar(100);default:null" json:"batch_number"`
	Barcode              string     `gorm:"type:varchar(100);default:null" json:"barcode"`
	Quantity             int        `gorm:"default:0" json:"quantity" validate:"gte=0"`
	CostPrice            float64    `gorm:"type:decimal(12,2)" json:"cost_price" validate:"required,gte=0"`
	SellingPrice         float64    `gorm:"type:decimal(12,2)" json:"selling_price" validate:"required,gte=0"`
	ProfitMargin         float64    `gorm:"type:decimal(12,2)" json:"profit_margin"`
	TaxRate              float64    `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	ExpiryDate           *time.Time `gorm:"type:date;default:null" json:"expiry_date"`
	SupplierName         string     `gorm:"type:varchar(150);default:null" json:"supplier_name"`
	SupplierID           *uint      `gorm:"index" json:"supplier_id"`
	LowStockThreshold    int        `gorm:"default:10" json:"low_stock_threshold"`
	PrescriptionRequired bool       `gorm:"default:false" json:"prescription_required"`
	Status               string     `gorm:"type:varchar(20);default:'active'" json:"status" validate:"omitempty,oneof=active discontinued out-of-stock"`
	IsActive             bool       `gorm:"default:true" json:"is_active"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *InventoryItem) Validate() error {
	return validator.New().Struct(i)
}

// IsLowStock reports whether the quantity fell to or below the threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
