package tenant

import (
	"gorm.io/gorm"
)

// HandleSet is the per-request set of entity handles, one per catalog entry,
// all bound to the same resolved tenant store. It is built after the caller
// is authenticated and discarded with the request; the underlying connection
// stays cached in the registry.
type HandleSet struct {
	store   string
	conn    *gorm.DB
	handles map[string]*gorm.DB
}

// NewHandleSet builds one handle per catalog entity on the given connection.
func NewHandleSet(storeName string, conn *gorm.DB) *HandleSet {
	handles := make(map[string]*gorm.DB, len(catalog))
	for _, entity := range catalog {
		// The trailing Session makes the handle safe to chain from more
		// than once within the request; conditions never accumulate.
		handles[entity.Name] = conn.Session(&gorm.Session{NewDB: true}).
			Model(entity.Model).
			Session(&gorm.Session{})
	}

	return &HandleSet{
		store:   storeName,
		conn:    conn,
		handles: handles,
	}
}

// Store returns the tenant store name every handle in the set resolves to.
func (h *HandleSet) Store() string {
	return h.store
}

// Handle returns the query handle for a catalog entity name, nil if unknown.
func (h *HandleSet) Handle(entityName string) *gorm.DB {
	return h.handles[entityName]
}

// DB exposes the underlying connection for multi-entity transactions.
func (h *HandleSet) DB() *gorm.DB {
	return h.conn
}

func (h *HandleSet) Patients() *gorm.DB       { return h.handles[EntityPatient] }
func (h *HandleSet) Appointments() *gorm.DB   { return h.handles[EntityAppointment] }
func (h *HandleSet) Staff() *gorm.DB          { return h.handles[EntityStaff] }
func (h *HandleSet) Settings() *gorm.DB       { return h.handles[EntitySettings] }
func (h *HandleSet) Inventory() *gorm.DB      { return h.handles[EntityInventory] }
func (h *HandleSet) Sales() *gorm.DB          { return h.handles[EntitySale] }
func (h *HandleSet) Suppliers() *gorm.DB      { return h.handles[EntitySupplier] }
func (h *HandleSet) StockMovements() *gorm.DB { return h.handles[EntityStockMovement] }
func (h *HandleSet) PurchaseOrders() *gorm.DB { return h.handles[EntityPurchaseOrder] }
func (h *HandleSet) Invoices() *gorm.DB       { return h.handles[EntityInvoice] }
func (h *HandleSet) Payments() *gorm.DB       { return h.handles[EntityPayment] }
func (h *HandleSet) Revenues() *gorm.DB       { return h.handles[EntityRevenue] }
func (h *HandleSet) Expenses() *gorm.DB       { return h.handles[EntityExpense] }
func (h *HandleSet) Ledger() *gorm.DB         { return h.handles[EntityAccountLedger] }
func (h *HandleSet) TaxRecords() *gorm.DB     { return h.handles[EntityTaxRecord] }
