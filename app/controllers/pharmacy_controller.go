package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

var errInsufficientStock = errors.New("insufficient stock")

// -- Inventory ---------------------------------------------------------------

func HandleListInventory(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Inventory()
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ? OR barcode LIKE ?", like, like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count inventory")
	}

	var items []models.InventoryItem
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load inventory")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"items": items,
		"total": total,
	})
}

func HandleGetInventoryItem(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var item models.InventoryItem
	if err := hs.Inventory().First(&item, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Inventory item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load inventory item")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"item": item})
}

func HandleCreateInventoryItem(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var item models.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	item.ID = 0
	item.ProfitMargin = item.SellingPrice - item.CostPrice
	if err := item.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 0 {
			movement := models.StockMovement{
				MedicineID:    item.ID,
				MedicineName:  item.Name,
				Type:          models.MOVEMENT_PURCHASE,
				Quantity:      item.Quantity,
				PreviousStock: 0,
				NewStock:      item.Quantity,
				Reason:        "Initial stock",
				PerformedBy:   usercontext.Get(c).Email,
				Date:          time.Now(),
			}
			return tx.Create(&movement).Error
		}
		return nil
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create inventory item")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Inventory item created", fiber.Map{"item": item})
}

func HandleUpdateInventoryItem(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var item models.InventoryItem
	if err := hs.Inventory().First(&item, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Inventory item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load inventory item")
	}

	id, prevQty := item.ID, item.Quantity
	if err := c.BodyParser(&item); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	item.ID = id
	// Quantity changes go through the stock adjustment endpoint so every
	// change lands in the movement trail
	item.Quantity = prevQty
	item.ProfitMargin = item.SellingPrice - item.CostPrice
	if err := item.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Inventory().Save(&item).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update inventory item")
	}

	return jsonSuccess(c, fiber.StatusOK, "Inventory item updated", fiber.Map{"item": item})
}

func HandleDeleteInventoryItem(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	result := hs.Inventory().Where("id = ?", c.Params("id")).Updates(map[string]interface{}{
		"is_active": false,
		"status":    models.ITEM_DISCONTINUED,
	})
	if result.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete inventory item")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Inventory item not found")
	}

	return jsonSuccess(c, fiber.StatusOK, "Inventory item discontinued", nil)
}

func HandleLowStockItems(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var items []models.InventoryItem
	err := hs.Inventory().
		Where("quantity <= low_stock_threshold AND is_active = ?", true).
		Order("quantity ASC").Find(&items).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load low stock items")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"items": items})
}

func HandleExpiringItems(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	days := c.QueryInt("days", 30)
	if days < 1 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, days)

	var items []models.InventoryItem
	err := hs.Inventory().
		Where("expiry_date IS NOT NULL AND expiry_date <= ? AND is_active = ?", cutoff, true).
		Order("expiry_date ASC").Find(&items).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load expiring items")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"items": items})
}

// AdjustStockRequest changes an item's quantity by a signed delta and logs
// the movement.
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=purchase adjustment return expired damaged"`
	Reason   string `json:"reason" validate:"max=255"`
	Notes    string `json:"notes"`
}

func HandleAdjustStock(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	var item models.InventoryItem
	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, c.Params("id")).Error; err != nil {
			return err
		}
		newStock := item.Quantity + req.Quantity
		if newStock < 0 {
			return errInsufficientStock
		}

		if err := tx.Model(&item).UpdateColumn("quantity", newStock).Error; err != nil {
			return err
		}

		movement := models.StockMovement{
			MedicineID:    item.ID,
			MedicineName:  item.Name,
			Type:          req.Type,
			Quantity:      req.Quantity,
			PreviousStock: item.Quantity,
			NewStock:      newStock,
			Reason:        req.Reason,
			PerformedBy:   usercontext.Get(c).Email,
			Date:          time.Now(),
			Notes:         req.Notes,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
		item.Quantity = newStock
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Inventory item not found")
		}
		if errors.Is(err, errInsufficientStock) {
			return jsonError(c, fiber.StatusBadRequest, "insufficient_stock", "Adjustment would make stock negative")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to adjust stock")
	}

	return jsonSuccess(c, fiber.StatusOK, "Stock adjusted", fiber.Map{"item": item})
}

func HandleListStockMovements(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.StockMovements()
	if medicineID := c.Query("medicine_id"); medicineID != "" {
		query = query.Where("medicine_id = ?", medicineID)
	}
	if movementType := c.Query("type"); movementType != "" {
		query = query.Where("type = ?", movementType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count stock movements")
	}

	var movements []models.StockMovement
	if err := query.Order("date DESC").Offset(offset).Limit(limit).Find(&movements).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stock movements")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"movements": movements,
		"total":     total,
	})
}

// -- Sales -------------------------------------------------------------------

// RecordSaleRequest sells a quantity of one inventory item.
type RecordSaleRequest struct {
	MedicineID    uint    `json:"medicine_id" validate:"required"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	Discount      float64 `json:"discount" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash card upi insurance other"`
	CustomerName  string  `json:"customer_name" validate:"max=200"`
	Notes         string  `json:"notes"`
}

// HandleRecordSale decrements stock, records the sale, the stock movement
// and the matching revenue entry in one transaction. The stock check and
// decrement are a single guarded UPDATE, so two concurrent sales can never
// oversell the same batch.
func HandleRecordSale(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var req RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PAYMENT_CASH
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	var sale models.Sale
	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, req.MedicineID).Error; err != nil {
			return err
		}

		decrement := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity >= ?", item.ID, req.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", req.Quantity))
		if decrement.Error != nil {
			return decrement.Error
		}
		if decrement.RowsAffected == 0 {
			return errInsufficientStock
		}

		// Re-read inside the transaction: the decrement holds the row lock,
		// so this is the true post-sale quantity even under concurrent sales.
		var after models.InventoryItem
		if err := tx.First(&after, item.ID).Error; err != nil {
			return err
		}

		now := time.Now()
		gross := item.SellingPrice * float64(req.Quantity)
		taxAmount := gross * item.TaxRate / 100
		total := gross - req.Discount + taxAmount

		sale = models.Sale{
			MedicineID:    item.ID,
			MedicineName:  item.Name,
			Quantity:      req.Quantity,
			UnitPrice:     item.SellingPrice,
			CostPrice:     item.CostPrice,
			TotalAmount:   total,
			Discount:      req.Discount,
			TaxAmount:     taxAmount,
			Profit:        (item.SellingPrice-item.CostPrice)*float64(req.Quantity) - req.Discount,
			PaymentMethod: req.PaymentMethod,
			CustomerName:  req.CustomerName,
			SoldBy:        usercontext.Get(c).Email,
			SaleDate:      now,
			Notes:         req.Notes,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		movement := models.StockMovement{
			MedicineID:    item.ID,
			MedicineName:  item.Name,
			Type:          models.MOVEMENT_SALE,
			Quantity:      -req.Quantity,
			PreviousStock: after.Quantity + req.Quantity,
			NewStock:      after.Quantity,
			ReferenceID:   &sale.ID,
			ReferenceType: "sale",
			PerformedBy:   usercontext.Get(c).Email,
			Date:          now,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		revenue := models.Revenue{
			Source:        models.REVENUE_PHARMACY,
			Amount:        total,
			Date:          now,
			Description:   fmt.Sprintf("Sale of %dx %s", req.Quantity, item.Name),
			ReferenceType: "sale",
			ReferenceID:   &sale.ID,
			PaymentMethod: req.PaymentMethod,
			CreatedBy:     usercontext.Get(c).Email,
		}
		return tx.Create(&revenue).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Inventory item not found")
		}
		if errors.Is(err, errInsufficientStock) {
			return jsonError(c, fiber.StatusBadRequest, "insufficient_stock", "Not enough stock to complete the sale")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record sale")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Sale recorded", fiber.Map{"sale": sale})
}

func HandleListSales(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Sales()
	if medicineID := c.Query("medicine_id"); medicineID != "" {
		query = query.Where("medicine_id = ?", medicineID)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("sale_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("sale_date < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count sales")
	}

	var sales []models.Sale
	if err := query.Order("sale_date DESC").Offset(offset).Limit(limit).Find(&sales).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load sales")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"sales": sales,
		"total": total,
	})
}

// -- Suppliers ---------------------------------------------------------------

func HandleListSuppliers(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Suppliers()
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR contact_person LIKE ?", like, like)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count suppliers")
	}

	var suppliers []models.Supplier
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&suppliers).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load suppliers")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"suppliers": suppliers,
		"total":     total,
	})
}

func HandleCreateSupplier(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	supplier.ID = 0
	if err := supplier.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Suppliers().Create(&supplier).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create supplier")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Supplier created", fiber.Map{"supplier": supplier})
}

func HandleUpdateSupplier(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var supplier models.Supplier
	if err := hs.Suppliers().First(&supplier, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Supplier not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load supplier")
	}

	id := supplier.ID
	if err := c.BodyParser(&supplier); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	supplier.ID = id
	if err := supplier.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Suppliers().Save(&supplier).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update supplier")
	}

	return jsonSuccess(c, fiber.StatusOK, "Supplier updated", fiber.Map{"supplier": supplier})
}

func HandleDeleteSupplier(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	result := hs.Suppliers().Where("id = ?", c.Params("id")).Update("is_active", false)
	if result.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete supplier")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Supplier not found")
	}

	return jsonSuccess(c, fiber.StatusOK, "Supplier deactivated", nil)
}

// -- Purchase orders ---------------------------------------------------------

func HandleListPurchaseOrders(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.PurchaseOrders()
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count purchase orders")
	}

	var orders []models.PurchaseOrder
	if err := query.Preload("Items").Order("order_date DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load purchase orders")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"purchase_orders": orders,
		"total":           total,
	})
}

func HandleGetPurchaseOrder(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var order models.PurchaseOrder
	if err := hs.PurchaseOrders().Preload("Items").First(&order, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Purchase order not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load purchase order")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"purchase_order": order})
}

func HandleCreatePurchaseOrder(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var order models.PurchaseOrder
	if err := c.BodyParser(&order); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	order.ID = 0
	if order.Status == "" {
		order.Status = models.PO_PENDING
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	order.CreatedBy = usercontext.Get(c).Email

	var subtotal float64
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].TotalCost = order.Items[i].UnitCost * float64(order.Items[i].Quantity)
		subtotal += order.Items[i].TotalCost
	}
	order.TotalAmount = subtotal
	order.GrandTotal = subtotal + order.TaxAmount

	if err := order.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	var count int64
	if err := hs.Suppliers().Where("id = ?", order.SupplierID).Count(&count).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to verify supplier")
	}
	if count == 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_supplier", "Supplier does not exist")
	}

	if err := hs.PurchaseOrders().Create(&order).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create purchase order")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Purchase order created", fiber.Map{"purchase_order": order})
}

// HandleReceivePurchaseOrder marks an order as received and books every
// ordered line into stock, with one movement per line.
func HandleReceivePurchaseOrder(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var order models.PurchaseOrder
	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, c.Params("id")).Error; err != nil {
			return err
		}
		if order.Status == models.PO_RECEIVED || order.Status == models.PO_CANCELLED {
			return fmt.Errorf("purchase order is already %s", order.Status)
		}

		now := time.Now()
		performedBy := usercontext.Get(c).Email

		for _, line := range order.Items {
			var item models.InventoryItem
			if err := tx.First(&item, line.MedicineID).Error; err != nil {
				return err
			}

			updates := map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", line.Quantity),
			}
			if line.BatchNumber != "" {
				updates["batch_number"] = line.BatchNumber
			}
			if line.ExpiryDate != nil {
				updates["expiry_date"] = line.ExpiryDate
			}
			if err := tx.Model(&models.InventoryItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
				return err
			}

			movement := models.StockMovement{
				MedicineID:    item.ID,
				MedicineName:  item.Name,
				Type:          models.MOVEMENT_PURCHASE,
				Quantity:      line.Quantity,
				PreviousStock: item.Quantity,
				NewStock:      item.Quantity + line.Quantity,
				ReferenceID:   &order.ID,
				ReferenceType: "purchase_order",
				PerformedBy:   performedBy,
				Date:          now,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		return tx.Model(&order).Updates(map[string]interface{}{
			"status":        models.PO_RECEIVED,
			"received_date": &now,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Purchase order or ordered item not found")
		}
		return jsonError(c, fiber.StatusBadRequest, "receive_failed", err.Error())
	}

	return jsonSuccess(c, fiber.StatusOK, "Purchase order received", fiber.Map{"purchase_order": order})
}
