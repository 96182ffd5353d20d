package tenant

import (
	"github.com/vertisaas/medisuite/app/models"
)

// Entity names as they appear in the catalog and the bound handle set.
const (
	EntityPatient       = "Patient"
	EntityAppointment   = "Appointment"
	EntityStaff         = "Staff"
	EntitySettings      = "Settings"
	EntityInventory     = "Inventory"
	EntitySale          = "Sale"
	EntitySupplier      = "Supplier"
	EntityStockMovement = "StockMovement"
	EntityPurchaseOrder = "PurchaseOrder"
	EntityInvoice       = "Invoice"
	EntityPayment       = "Payment"
	EntityRevenue       = "Revenue"
	EntityExpense       = "Expense"
	EntityAccountLedger = "AccountLedger"
	EntityTaxRecord     = "TaxRecord"
)

// Entity pairs a catalog name with its gorm model.
type Entity struct {
	Name  string
	Model interface{}
}

// catalog is the single source of truth for the shape of every tenant store.
// The provisioner materializes these tables at signup and the binder builds
// one request handle per entry; both sides always see the same definitions.
// The list is fixed at compile time, adding an entity is a deployment.
var catalog = []Entity{
	// Core
	{EntityPatient, &models.Patient{}},
	{EntityAppointment, &models.Appointment{}},
	{EntityStaff, &models.Staff{}},
	{EntitySettings, &models.ClinicSettings{}},
	// Pharmacy
	{EntityInventory, &models.InventoryItem{}},
	{EntitySale, &models.Sale{}},
	{EntitySupplier, &models.Supplier{}},
	{EntityStockMovement, &models.StockMovement{}},
	{EntityPurchaseOrder, &models.PurchaseOrder{}},
	// Accounting
	{EntityInvoice, &models.Invoice{}},
	{EntityPayment, &models.Payment{}},
	{EntityRevenue, &models.Revenue{}},
	{EntityExpense, &models.Expense{}},
	{EntityAccountLedger, &models.LedgerEntry{}},
	{EntityTaxRecord, &models.TaxRecord{}},
}

// Catalog returns the fixed entity list in materialization order.
func Catalog() []Entity {
	out := make([]Entity, len(catalog))
	copy(out, catalog)
	return out
}

// EntityNames returns the catalog names in order.
func EntityNames() []string {
	names := make([]string, 0, len(catalog))
	for _, e := range catalog {
		names = append(names, e.Name)
	}
	return names
}
