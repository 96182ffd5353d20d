package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
	"github.com/vertisaas/medisuite/internal/pkg/tenant"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// withTenantStore binds a mocked tenant store and a logged-in principal in
// front of a handler, standing in for the auth and binder middleware.
func withTenantStore(conn *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usercontext.Set(c, usercontext.UserContext{
			UserID:       1,
			Email:        "owner@acme.test",
			TenantDBName: "tenant_acme_clinic_1700000000000",
			IsLoggedIn:   true,
		})
		c.Locals(usercontext.KeyTenantHandles,
			tenant.NewHandleSet("tenant_acme_clinic_1700000000000", conn))
		return c.Next()
	}
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func TestRegisterRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: RegisterRequest{
				Email:       "owner@acme.test",
				Password:    "secret1",
				CompanyName: "Acme Clinic",
				PlanType:    models.PLAN_BASIC,
			},
		},
		{
			name: "short password",
			req: RegisterRequest{
				Email:       "owner@acme.test",
				Password:    "short",
				CompanyName: "Acme Clinic",
			},
			wantErr: true,
		},
		{
			name: "bad email",
			req: RegisterRequest{
				Email:       "not-an-email",
				Password:    "secret1",
				CompanyName: "Acme Clinic",
			},
			wantErr: true,
		},
		{
			name: "unknown plan",
			req: RegisterRequest{
				Email:       "owner@acme.test",
				Password:    "secret1",
				CompanyName: "Acme Clinic",
				PlanType:    "platinum",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)

	tests := []struct {
		name    string
		invoice models.Invoice
		want    string
	}{
		{"fully paid", models.Invoice{TotalAmount: 100, PaidAmount: 100, Balance: 0}, models.INVOICE_PAID},
		{"partial", models.Invoice{TotalAmount: 100, PaidAmount: 40, Balance: 60}, models.INVOICE_PARTIALLY_PAID},
		{"unpaid", models.Invoice{TotalAmount: 100, Balance: 100}, models.INVOICE_UNPAID},
		{"overdue", models.Invoice{TotalAmount: 100, Balance: 100, DueDate: &past}, models.INVOICE_OVERDUE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoiceStatus(&tt.invoice))
		})
	}
}

func TestAppendLedgerEntryCarriesBalanceForward(t *testing.T) {
	db, mock := newMockDB(t)

	// The balance read must take the row lock
	mock.ExpectQuery("SELECT \\* FROM `ledger_entries`.*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "balance"}).AddRow(9, 500.0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `ledger_entries`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	err := appendLedgerEntry(db, models.LedgerEntry{
		Date:     time.Now(),
		Type:     models.LEDGER_DEBIT,
		Category: "rent",
		Amount:   120,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendLedgerEntryStartsAtZero(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `ledger_entries`.*FOR UPDATE").
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `ledger_entries`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := appendLedgerEntry(db, models.LedgerEntry{
		Date:     time.Now(),
		Type:     models.LEDGER_CREDIT,
		Category: "invoice-payment",
		Amount:   75,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
