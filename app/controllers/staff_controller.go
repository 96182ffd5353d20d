package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
)

func HandleListStaff(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Staff()
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count staff")
	}

	var staff []models.Staff
	if err := query.Order("last_name ASC, first_name ASC").Offset(offset).Limit(limit).Find(&staff).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load staff")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"staff": staff,
		"total": total,
	})
}

func HandleCreateStaff(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var member models.Staff
	if err := c.BodyParser(&member); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	member.ID = 0
	if member.Role == "" {
		member.Role = models.STAFF_RECEPTIONIST
	}
	if err := member.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	var count int64
	if err := hs.Staff().Where("email = ?", member.Email).Count(&count).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check existing staff")
	}
	if count > 0 {
		return jsonError(c, fiber.StatusBadRequest, "email_taken", "A staff member with this email already exists")
	}

	if err := hs.Staff().Create(&member).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create staff member")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Staff member created", fiber.Map{"staff": member})
}

func HandleUpdateStaff(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var member models.Staff
	if err := hs.Staff().First(&member, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Staff member not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load staff member")
	}

	id := member.ID
	if err := c.BodyParser(&member); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	member.ID = id
	if err := member.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Staff().Save(&member).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update staff member")
	}

	return jsonSuccess(c, fiber.StatusOK, "Staff member updated", fiber.Map{"staff": member})
}

func HandleDeleteStaff(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	result := hs.Staff().Where("id = ?", c.Params("id")).Update("is_active", false)
	if result.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete staff member")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Staff member not found")
	}

	return jsonSuccess(c, fiber.StatusOK, "Staff member deactivated", nil)
}
