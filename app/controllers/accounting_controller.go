package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vertisaas/medisuite/app/models"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

var errAlreadySettled = errors.New("invoice already settled")

// -- Invoices ----------------------------------------------------------------

func HandleListInvoices(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Invoices()
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if patientID := c.Query("patient_id"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count invoices")
	}

	var invoices []models.Invoice
	if err := query.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invoices")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"invoices": invoices,
		"total":    total,
	})
}

func HandleGetInvoice(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var invoice models.Invoice
	if err := hs.Invoices().Preload("Items").First(&invoice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Invoice not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invoice")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"invoice": invoice})
}

func HandleCreateInvoice(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var invoice models.Invoice
	if err := c.BodyParser(&invoice); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	invoice.ID = 0
	if invoice.Type == "" {
		invoice.Type = models.INVOICE_TYPE_PATIENT
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = fmt.Sprintf("INV-%d", time.Now().UnixMilli())
	}
	invoice.CreatedBy = usercontext.Get(c).Email

	var subtotal float64
	for i := range invoice.Items {
		invoice.Items[i].ID = 0
		if invoice.Items[i].Quantity == 0 {
			invoice.Items[i].Quantity = 1
		}
		invoice.Items[i].TotalAmount = invoice.Items[i].Amount * float64(invoice.Items[i].Quantity)
		subtotal += invoice.Items[i].TotalAmount
	}
	invoice.Subtotal = subtotal
	invoice.TotalAmount = subtotal + invoice.TaxAmount - invoice.DiscountAmount
	invoice.Balance = invoice.TotalAmount - invoice.PaidAmount
	invoice.Status = invoiceStatus(&invoice)

	if err := invoice.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Invoices().Create(&invoice).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create invoice")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Invoice created", fiber.Map{"invoice": invoice})
}

// HandleListOverdueInvoices returns invoices with an open balance past due.
func HandleListOverdueInvoices(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var invoices []models.Invoice
	err := hs.Invoices().
		Where("balance > 0 AND due_date IS NOT NULL AND due_date < ?", time.Now()).
		Order("due_date ASC").Find(&invoices).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load overdue invoices")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"invoices": invoices})
}

// AddPaymentRequest records a payment against an invoice.
type AddPaymentRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash card bank_transfer upi cheque other"`
	TransactionID   string  `json:"transaction_id" validate:"max=100"`
	ReferenceNumber string  `json:"reference_number" validate:"max=100"`
	Notes           string  `json:"notes"`
}

// HandleAddInvoicePayment books a payment against an invoice: the payment
// row, the invoice balance and the ledger entry move in one transaction.
func HandleAddInvoicePayment(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var req AddPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	var payment models.Payment
	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, c.Params("id")).Error; err != nil {
			return err
		}
		if invoice.Balance <= 0 {
			return errAlreadySettled
		}

		now := time.Now()
		receivedBy := usercontext.Get(c).Email

		payment = models.Payment{
			PaymentNumber:   fmt.Sprintf("PAY-%d", now.UnixMilli()),
			InvoiceID:       &invoice.ID,
			InvoiceNumber:   invoice.InvoiceNumber,
			Amount:          req.Amount,
			PaymentMethod:   req.PaymentMethod,
			PaymentDate:     now,
			TransactionID:   req.TransactionID,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
			ReceivedBy:      receivedBy,
			Status:          models.PAYMENT_STATUS_COMPLETED,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		invoice.PaidAmount += req.Amount
		invoice.Balance = invoice.TotalAmount - invoice.PaidAmount
		invoice.PaymentMethod = req.PaymentMethod
		invoice.Status = invoiceStatus(&invoice)
		if err := tx.Save(&invoice).Error; err != nil {
			return err
		}

		return appendLedgerEntry(tx, models.LedgerEntry{
			Date:            now,
			Type:            models.LEDGER_CREDIT,
			Category:        "invoice-payment",
			Amount:          req.Amount,
			Description:     fmt.Sprintf("Payment for invoice %s", invoice.InvoiceNumber),
			ReferenceType:   "payment",
			ReferenceID:     &payment.ID,
			ReferenceNumber: payment.PaymentNumber,
			CreatedBy:       receivedBy,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Invoice not found")
		}
		if errors.Is(err, errAlreadySettled) {
			return jsonError(c, fiber.StatusBadRequest, "already_settled", "Invoice has no open balance")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record payment")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Payment recorded", fiber.Map{"payment": payment})
}

func invoiceStatus(i *models.Invoice) string {
	switch {
	case i.Balance <= 0 && i.TotalAmount > 0:
		return models.INVOICE_PAID
	case i.PaidAmount > 0:
		return models.INVOICE_PARTIALLY_PAID
	case i.IsOverdue(time.Now()):
		return models.INVOICE_OVERDUE
	default:
		return models.INVOICE_UNPAID
	}
}

// appendLedgerEntry writes a ledger line with the running balance carried
// forward from the latest entry. The read locks the latest row so two
// concurrent transactions cannot both carry the same base balance forward.
func appendLedgerEntry(tx *gorm.DB, entry models.LedgerEntry) error {
	var last models.LedgerEntry
	balance := 0.0
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Model(&models.LedgerEntry{}).Order("id DESC").First(&last).Error
	if err == nil {
		balance = last.Balance
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if entry.Type == models.LEDGER_CREDIT {
		balance += entry.Amount
	} else {
		balance -= entry.Amount
	}
	entry.Balance = balance

	return tx.Create(&entry).Error
}

// -- Payments ----------------------------------------------------------------

func HandleListPayments(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Payments()
	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		query = query.Where("invoice_id = ?", invoiceID)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count payments")
	}

	var payments []models.Payment
	if err := query.Order("payment_date DESC").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load payments")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"payments": payments,
		"total":    total,
	})
}

// HandleCreatePayment records a standalone payment not tied to an invoice,
// for example a walk-in consultation fee. Still lands in the ledger.
func HandleCreatePayment(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var payment models.Payment
	if err := c.BodyParser(&payment); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	payment.ID = 0
	payment.InvoiceID = nil
	payment.InvoiceNumber = ""
	if payment.PaymentNumber == "" {
		payment.PaymentNumber = fmt.Sprintf("PAY-%d", time.Now().UnixMilli())
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}
	if payment.Status == "" {
		payment.Status = models.PAYMENT_STATUS_COMPLETED
	}
	payment.ReceivedBy = usercontext.Get(c).Email
	if err := payment.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return appendLedgerEntry(tx, models.LedgerEntry{
			Date:            payment.PaymentDate,
			Type:            models.LEDGER_CREDIT,
			Category:        "direct-payment",
			Amount:          payment.Amount,
			Description:     payment.Notes,
			ReferenceType:   "payment",
			ReferenceID:     &payment.ID,
			ReferenceNumber: payment.PaymentNumber,
			CreatedBy:       payment.ReceivedBy,
		})
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record payment")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Payment recorded", fiber.Map{"payment": payment})
}

// -- Revenue -----------------------------------------------------------------

func HandleListRevenue(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Revenues()
	if source := c.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("date < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count revenue entries")
	}

	var entries []models.Revenue
	if err := query.Order("date DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load revenue entries")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"revenue": entries,
		"total":   total,
	})
}

func HandleCreateRevenue(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var entry models.Revenue
	if err := c.BodyParser(&entry); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	entry.ID = 0
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	entry.CreatedBy = usercontext.Get(c).Email
	if err := entry.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return appendLedgerEntry(tx, models.LedgerEntry{
			Date:          entry.Date,
			Type:          models.LEDGER_CREDIT,
			Category:      entry.Source,
			Amount:        entry.Amount,
			Description:   entry.Description,
			ReferenceType: "revenue",
			ReferenceID:   &entry.ID,
			CreatedBy:     entry.CreatedBy,
		})
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record revenue")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Revenue recorded", fiber.Map{"revenue": entry})
}

// -- Expenses ----------------------------------------------------------------

func HandleListExpenses(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Expenses()
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count expenses")
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Offset(offset).Limit(limit).Find(&expenses).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load expenses")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"expenses": expenses,
		"total":    total,
	})
}

func HandleCreateExpense(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var expense models.Expense
	if err := c.BodyParser(&expense); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	expense.ID = 0
	if expense.ExpenseNumber == "" {
		expense.ExpenseNumber = fmt.Sprintf("EXP-%d", time.Now().UnixMilli())
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	if expense.Status == "" {
		expense.Status = models.EXPENSE_APPROVED
	}
	expense.CreatedBy = usercontext.Get(c).Email
	if err := expense.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	err := hs.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		return appendLedgerEntry(tx, models.LedgerEntry{
			Date:            expense.Date,
			Type:            models.LEDGER_DEBIT,
			Category:        expense.Category,
			Amount:          expense.Amount,
			Description:     expense.Description,
			ReferenceType:   "expense",
			ReferenceID:     &expense.ID,
			ReferenceNumber: expense.ExpenseNumber,
			CreatedBy:       expense.CreatedBy,
		})
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record expense")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Expense recorded", fiber.Map{"expense": expense})
}

func HandleUpdateExpense(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var expense models.Expense
	if err := hs.Expenses().First(&expense, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Expense not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load expense")
	}

	id, number := expense.ID, expense.ExpenseNumber
	if err := c.BodyParser(&expense); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	expense.ID = id
	expense.ExpenseNumber = number
	if err := expense.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Expenses().Save(&expense).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update expense")
	}

	return jsonSuccess(c, fiber.StatusOK, "Expense updated", fiber.Map{"expense": expense})
}

// -- Ledger ------------------------------------------------------------------

func HandleListLedger(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Ledger()
	if entryType := c.Query("type"); entryType != "" {
		query = query.Where("type = ?", entryType)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count ledger entries")
	}

	var entries []models.LedgerEntry
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load ledger")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"entries": entries,
		"total":   total,
	})
}

// -- Tax records -------------------------------------------------------------

func HandleListTaxRecords(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.TaxRecords()
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if period := c.Query("period"); period != "" {
		query = query.Where("period = ?", period)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count tax records")
	}

	var records []models.TaxRecord
	if err := query.Order("period DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load tax records")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"tax_records": records,
		"total":       total,
	})
}

func HandleCreateTaxRecord(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var record models.TaxRecord
	if err := c.BodyParser(&record); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	record.ID = 0
	if record.Status == "" {
		record.Status = models.TAX_PENDING
	}
	if err := record.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.TaxRecords().Create(&record).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create tax record")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Tax record created", fiber.Map{"tax_record": record})
}

func HandleUpdateTaxRecord(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var record models.TaxRecord
	if err := hs.TaxRecords().First(&record, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Tax record not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load tax record")
	}

	id := record.ID
	if err := c.BodyParser(&record); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	record.ID = id
	if err := record.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.TaxRecords().Save(&record).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update tax record")
	}

	return jsonSuccess(c, fiber.StatusOK, "Tax record updated", fiber.Map{"tax_record": record})
}
