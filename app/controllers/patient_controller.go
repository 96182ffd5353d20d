package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
)

// HandleListPatients returns a paginated patient list, optionally filtered
// by a free text search over name and phone.
func HandleListPatients(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Patients()
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR phone LIKE ?", like, like, like)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count patients")
	}

	var patients []models.Patient
	if err := query.Order("last_name ASC, first_name ASC").Offset(offset).Limit(limit).Find(&patients).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load patients")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"patients": patients,
		"total":    total,
	})
}

func HandleGetPatient(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var patient models.Patient
	if err := hs.Patients().First(&patient, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Patient not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load patient")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"patient": patient})
}

func HandleCreatePatient(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var patient models.Patient
	if err := c.BodyParser(&patient); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	patient.ID = 0
	if err := patient.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Patients().Create(&patient).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create patient")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Patient created", fiber.Map{"patient": patient})
}

func HandleUpdatePatient(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var patient models.Patient
	if err := hs.Patients().First(&patient, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Patient not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load patient")
	}

	id := patient.ID
	if err := c.BodyParser(&patient); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	patient.ID = id
	if err := patient.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Patients().Save(&patient).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update patient")
	}

	return jsonSuccess(c, fiber.StatusOK, "Patient updated", fiber.Map{"patient": patient})
}

// HandleDeletePatient deactivates the patient record. Medical history is
// never physically removed.
func HandleDeletePatient(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	result := hs.Patients().Where("id = ?", c.Params("id")).Update("is_active", false)
	if result.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete patient")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Patient not found")
	}

	return jsonSuccess(c, fiber.StatusOK, "Patient deactivated", nil)
}
