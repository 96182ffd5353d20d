package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
)

// HandleGetSettings returns the clinic profile. The table holds at most one
// row per store; a missing row just means nothing was configured yet.
func HandleGetSettings(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var settings models.ClinicSettings
	err := hs.Settings().First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"settings": nil})
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"settings": settings})
}

// HandleUpdateSettings creates or replaces the single clinic profile row.
func HandleUpdateSettings(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var incoming models.ClinicSettings
	if err := c.BodyParser(&incoming); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := incoming.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	var existing models.ClinicSettings
	err := hs.Settings().First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		incoming.ID = 0
		if err := hs.Settings().Create(&incoming).Error; err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save settings")
		}
		return jsonSuccess(c, fiber.StatusCreated, "Settings saved", fiber.Map{"settings": incoming})
	} else if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}

	incoming.ID = existing.ID
	if err := hs.Settings().Save(&incoming).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save settings")
	}

	return jsonSuccess(c, fiber.StatusOK, "Settings saved", fiber.Map{"settings": incoming})
}
