package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/repository"
	"github.com/vertisaas/medisuite/internal/pkg/tenant"
	"github.com/vertisaas/medisuite/internal/pkg/token"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

var masterMock sqlmock.Sqlmock

// newMockDB returns a gorm handle backed by sqlmock, no MySQL required.
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

// setupMasterStore wires the global repository factory to a mocked master
// store. The factory is once-guarded, so all tests share one mock and queue
// their expectations sequentially.
func setupMasterStore(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	if masterMock == nil {
		db, mock := newMockDB(t)
		repository.InitializeFactory(db)
		masterMock = mock
	}
	return masterMock
}

func userRows(status string, trialEnd time.Time, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "company_name", "tenant_db_name",
		"subscription_status", "trial_end_date", "product_id", "is_active",
	}).AddRow(1, "owner@acme.test", "Acme Clinic", "tenant_acme_clinic_1700000000000",
		status, trialEnd, "basic", active)
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

func TestRequireBearerAuthRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/p", RequireBearerAuth, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthorized", body["error"])
}

func TestRequireBearerAuthRejectsGarbageToken(t *testing.T) {
	app := fiber.New()
	app.Get("/p", RequireBearerAuth, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, _ := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireBearerAuthPopulatesUserContext(t *testing.T) {
	mock := setupMasterStore(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRows("trial", time.Now().Add(48*time.Hour), true))

	jwt, err := token.Generate(1, "owner@acme.test", "tenant_acme_clinic_1700000000000", "basic")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/p", RequireBearerAuth, func(c *fiber.Ctx) error {
		return c.JSON(usercontext.Get(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+jwt)
	resp, body := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "owner@acme.test", body["email"])
	assert.Equal(t, "tenant_acme_clinic_1700000000000", body["tenant_db_name"])
	assert.Equal(t, true, body["is_logged_in"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireBearerAuthRejectsDeactivatedAccount(t *testing.T) {
	mock := setupMasterStore(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRows("active", time.Now(), false))

	jwt, err := token.Generate(1, "owner@acme.test", "tenant_acme_clinic_1700000000000", "basic")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/p", RequireBearerAuth, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+jwt)
	resp, body := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "account_deactivated", body["error"])
}

func withUserContext(uc usercontext.UserContext) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usercontext.Set(c, uc)
		return c.Next()
	}
}

func TestRequireAccessDeniesExpiredTrial(t *testing.T) {
	mock := setupMasterStore(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRows("trial", time.Now().Add(-24*time.Hour), true))

	app := fiber.New()
	app.Get("/p",
		withUserContext(usercontext.UserContext{UserID: 1, IsLoggedIn: true}),
		RequireAccess,
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/p", nil))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "access_denied", body["error"])
	assert.Equal(t, "trial_expired", body["reason"])
	assert.Equal(t, "trial", body["subscription_status"])
}

func TestRequireAccessAllowsActiveSubscription(t *testing.T) {
	mock := setupMasterStore(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRows("active", time.Now().Add(-24*time.Hour), true))

	app := fiber.New()
	app.Get("/p",
		withUserContext(usercontext.UserContext{UserID: 1, IsLoggedIn: true}),
		RequireAccess,
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAccessRequiresLogin(t *testing.T) {
	app := fiber.New()
	app.Get("/p", RequireAccess, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAttachTenantHandlesRejectsMissingContext(t *testing.T) {
	app := fiber.New()
	app.Get("/p", AttachTenantHandles, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "tenant_context_missing", body["error"])
}

func TestAttachTenantHandlesBindsStore(t *testing.T) {
	conn, _ := newMockDB(t)
	tenant.SetupRegistry(func(storeName string) (*gorm.DB, error) {
		return conn, nil
	})

	app := fiber.New()
	app.Get("/p",
		withUserContext(usercontext.UserContext{
			UserID:       1,
			TenantDBName: "tenant_acme_clinic_1700000000000",
			IsLoggedIn:   true,
		}),
		AttachTenantHandles,
		func(c *fiber.Ctx) error {
			hs, ok := c.Locals(usercontext.KeyTenantHandles).(*tenant.HandleSet)
			require.True(t, ok)
			return c.JSON(fiber.Map{"store": hs.Store()})
		})

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "tenant_acme_clinic_1700000000000", body["store"])
}

func TestAttachTenantHandlesRejectsUnknownStore(t *testing.T) {
	conn, _ := newMockDB(t)
	tenant.SetupRegistry(func(storeName string) (*gorm.DB, error) {
		return conn, nil
	})

	app := fiber.New()
	app.Get("/p",
		withUserContext(usercontext.UserContext{
			UserID:       1,
			TenantDBName: "production",
			IsLoggedIn:   true,
		}),
		AttachTenantHandles,
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "store_unavailable", body["error"])
}
