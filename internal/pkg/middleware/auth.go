package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vertisaas/medisuite/app/repository"
	"github.com/vertisaas/medisuite/internal/pkg/token"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

// RequireBearerAuth validates the Authorization bearer token, loads the
// account from the master store and populates the request's user context.
// The tenant store name always comes from the master store record, never
// from the token alone.
func RequireBearerAuth(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "No token provided. Please login to access this resource.",
		})
	}

	claims, err := token.Validate(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Invalid or expired token",
		})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Invalid token. User not found.",
		})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "account_deactivated",
			"message": "Your account has been deactivated. Please contact support.",
		})
	}

	usercontext.Set(c, usercontext.UserContext{
		UserID:             user.ID,
		Email:              user.Email,
		CompanyName:        user.CompanyName,
		TenantDBName:       user.TenantDBName,
		SubscriptionStatus: user.SubscriptionStatus,
		ProductID:          user.ProductID,
		IsLoggedIn:         true,
	})

	return c.Next()
}
