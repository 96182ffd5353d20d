package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vertisaas/medisuite/app/repository"
	"github.com/vertisaas/medisuite/internal/pkg/entitlements"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

// RequireAccess enforces the subscription gate on protected routes. Trials
// expire lazily, so the account state is re-read and re-evaluated against
// the clock on every check.
func RequireAccess(c *fiber.Ctx) error {
	uc := usercontext.Get(c)
	if !uc.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Authentication required",
		})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uc.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "User not found",
		})
	}

	decision := entitlements.CheckAccess(user, time.Now())
	if !decision.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":               "access_denied",
			"message":             "Access denied. Your trial has expired or subscription is not active.",
			"reason":              decision.Reason,
			"subscription_status": decision.Status,
			"trial_end_date":      decision.TrialEndDate,
		})
	}

	return c.Next()
}
