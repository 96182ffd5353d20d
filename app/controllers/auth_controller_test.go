package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
	"github.com/vertisaas/medisuite/app/repository"
	"github.com/vertisaas/medisuite/internal/pkg/database"
	"github.com/vertisaas/medisuite/internal/pkg/tenant"
)

func planRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "plan_type", "plan_name", "price", "billing_cycle",
		"features", "trial_days", "is_active",
	}).AddRow(1, models.PLAN_BASIC, "Basic", 0.0, "monthly", `["patients"]`, 7, true)
}

// A store that cannot be fully materialized must leave no account row behind.
// The tenant connection here accepts no queries, so the first table migration
// fails and the signup has to roll the store back.
func TestRegisterAbortsWhenProvisioningFails(t *testing.T) {
	masterDB, masterMock := newMockDB(t)
	database.DB = masterDB
	repository.InitializeFactory(masterDB)

	tenantDB, _ := newMockDB(t)
	tenant.SetupRegistry(func(storeName string) (*gorm.DB, error) {
		return tenantDB, nil
	})

	masterMock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	masterMock.ExpectQuery("SELECT \\* FROM `plans`").
		WillReturnRows(planRows())
	masterMock.ExpectExec("CREATE DATABASE `tenant_acme_clinic_").
		WillReturnResult(sqlmock.NewResult(0, 0))
	masterMock.ExpectExec("DROP DATABASE IF EXISTS `tenant_acme_clinic_").
		WillReturnResult(sqlmock.NewResult(0, 0))

	app := fiber.New()
	app.Post("/register", HandleRegister)

	payload := `{"email":"owner@acme.test","password":"secret1","company_name":"Acme Clinic"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"error":"provisioning_failed"`)

	// Only the rollback DROP may touch the master store after the failure.
	// In particular there must be no INSERT INTO users.
	assert.NoError(t, masterMock.ExpectationsWereMet())
}
