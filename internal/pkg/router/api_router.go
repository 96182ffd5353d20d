package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/vertisaas/medisuite/app/controllers"
	"github.com/vertisaas/medisuite/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{Max: 120}))

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	api.Get("/plans", controllers.HandleListPlans)

	// Everything below requires a valid token. The access gate and the
	// tenant binder run after authentication, in that order.
	api.Use(
		middleware.RequireBearerAuth,
		middleware.RequireAccess,
		middleware.AttachTenantHandles,
	)
	protected := api

	protected.Get("/auth/profile", controllers.HandleProfile)

	patients := protected.Group("/patients")
	patients.Get("/", controllers.HandleListPatients)
	patients.Post("/", controllers.HandleCreatePatient)
	patients.Get("/:id", controllers.HandleGetPatient)
	patients.Put("/:id", controllers.HandleUpdatePatient)
	patients.Delete("/:id", controllers.HandleDeletePatient)

	appointments := protected.Group("/appointments")
	appointments.Get("/", controllers.HandleListAppointments)
	appointments.Post("/", controllers.HandleCreateAppointment)
	appointments.Get("/:id", controllers.HandleGetAppointment)
	appointments.Put("/:id", controllers.HandleUpdateAppointment)
	appointments.Delete("/:id", controllers.HandleCancelAppointment)

	staff := protected.Group("/staff")
	staff.Get("/", controllers.HandleListStaff)
	staff.Post("/", controllers.HandleCreateStaff)
	staff.Put("/:id", controllers.HandleUpdateStaff)
	staff.Delete("/:id", controllers.HandleDeleteStaff)

	settings := protected.Group("/settings")
	settings.Get("/", controllers.HandleGetSettings)
	settings.Put("/", controllers.HandleUpdateSettings)

	inventory := protected.Group("/inventory")
	inventory.Get("/", controllers.HandleListInventory)
	inventory.Post("/", controllers.HandleCreateInventoryItem)
	inventory.Get("/low-stock", controllers.HandleLowStockItems)
	inventory.Get("/expiring", controllers.HandleExpiringItems)
	inventory.Get("/movements", controllers.HandleListStockMovements)
	inventory.Get("/:id", controllers.HandleGetInventoryItem)
	inventory.Put("/:id", controllers.HandleUpdateInventoryItem)
	inventory.Delete("/:id", controllers.HandleDeleteInventoryItem)
	inventory.Post("/:id/adjust", controllers.HandleAdjustStock)

	sales := protected.Group("/sales")
	sales.Get("/", controllers.HandleListSales)
	sales.Post("/", controllers.HandleRecordSale)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", controllers.HandleListSuppliers)
	suppliers.Post("/", controllers.HandleCreateSupplier)
	suppliers.Put("/:id", controllers.HandleUpdateSupplier)
	suppliers.Delete("/:id", controllers.HandleDeleteSupplier)

	purchaseOrders := protected.Group("/purchase-orders")
	purchaseOrders.Get("/", controllers.HandleListPurchaseOrders)
	purchaseOrders.Post("/", controllers.HandleCreatePurchaseOrder)
	purchaseOrders.Get("/:id", controllers.HandleGetPurchaseOrder)
	purchaseOrders.Post("/:id/receive", controllers.HandleReceivePurchaseOrder)

	invoices := protected.Group("/invoices")
	invoices.Get("/", controllers.HandleListInvoices)
	invoices.Post("/", controllers.HandleCreateInvoice)
	invoices.Get("/overdue", controllers.HandleListOverdueInvoices)
	invoices.Get("/:id", controllers.HandleGetInvoice)
	invoices.Post("/:id/payments", controllers.HandleAddInvoicePayment)

	payments := protected.Group("/payments")
	payments.Get("/", controllers.HandleListPayments)
	payments.Post("/", controllers.HandleCreatePayment)

	revenue := protected.Group("/revenue")
	revenue.Get("/", controllers.HandleListRevenue)
	revenue.Post("/", controllers.HandleCreateRevenue)

	expenses := protected.Group("/expenses")
	expenses.Get("/", controllers.HandleListExpenses)
	expenses.Post("/", controllers.HandleCreateExpense)
	expenses.Put("/:id", controllers.HandleUpdateExpense)

	protected.Get("/ledger", controllers.HandleListLedger)

	taxRecords := protected.Group("/tax-records")
	taxRecords.Get("/", controllers.HandleListTaxRecords)
	taxRecords.Post("/", controllers.HandleCreateTaxRecord)
	taxRecords.Put("/:id", controllers.HandleUpdateTaxRecord)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
