package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// The movement trail must record the quantity the decrement actually left
// behind, not what the pre-decrement read saw. Here another sale lands
// between the read (10 units) and our decrement, so selling 2 leaves 5.
func TestRecordSaleMovementTracksPostDecrementStock(t *testing.T) {
	conn, mock := newMockDB(t)
	itemCols := []string{"id", "name", "quantity", "cost_price", "selling_price", "tax_rate"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `inventory_items`").
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(1, "Paracetamol 500mg", 10, 4.0, 6.0, 0.0))
	mock.ExpectExec("UPDATE `inventory_items`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `inventory_items`").
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(1, "Paracetamol 500mg", 5, 4.0, 6.0, 0.0))
	mock.ExpectExec("INSERT INTO `sales`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `stock_movements`").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			7, 5,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `revenues`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	app := fiber.New()
	app.Post("/sales", withTenantStore(conn), HandleRecordSale)

	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"medicine_id":1,"quantity":2}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, _ := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSaleRejectsInsufficientStock(t *testing.T) {
	conn, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `inventory_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity", "cost_price", "selling_price", "tax_rate"}).
			AddRow(1, "Paracetamol 500mg", 1, 4.0, 6.0, 0.0))
	mock.ExpectExec("UPDATE `inventory_items`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	app := fiber.New()
	app.Post("/sales", withTenantStore(conn), HandleRecordSale)

	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"medicine_id":1,"quantity":2}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "insufficient_stock", body["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
