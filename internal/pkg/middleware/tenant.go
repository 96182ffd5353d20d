package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/vertisaas/medisuite/internal/pkg/tenant"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

// AttachTenantHandles resolves the authenticated principal's tenant store
// and attaches the complete bound handle set to the request before any
// domain handler runs. Must be installed after RequireBearerAuth.
func AttachTenantHandles(c *fiber.Ctx) error {
	uc := usercontext.Get(c)
	if !uc.IsLoggedIn || uc.TenantDBName == "" {
		// An authenticated principal without a store name is a data
		// inconsistency; never fall back to a default store.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "tenant_context_missing",
			"message": "Authentication required to access tenant resources",
		})
	}

	conn, err := tenant.GetRegistry().ConnectionFor(uc.TenantDBName)
	if err != nil {
		log.Printf("Tenant store resolution failed for %s: %v", uc.TenantDBName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "store_unavailable",
			"message": "Failed to establish tenant database context",
		})
	}

	c.Locals(usercontext.KeyTenantHandles, tenant.NewHandleSet(uc.TenantDBName, conn))

	return c.Next()
}
