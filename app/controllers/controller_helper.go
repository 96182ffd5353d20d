package controllers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vertisaas/medisuite/internal/pkg/tenant"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

var validate = validator.New()

// tenantHandles returns the request's bound tenant handle set. The binder
// middleware guarantees it is present on every protected route.
func tenantHandles(c *fiber.Ctx) *tenant.HandleSet {
	if v := c.Locals(usercontext.KeyTenantHandles); v != nil {
		if hs, ok := v.(*tenant.HandleSet); ok {
			return hs
		}
	}
	return nil
}

// parsePagination extracts page/limit query params with sane bounds
func parsePagination(c *fiber.Ctx) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, limit
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   code,
		"message": message,
	})
}

func jsonSuccess(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
