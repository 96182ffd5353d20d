package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
)

// HandleListAppointments returns appointments filtered by status, patient
// and date range.
func HandleListAppointments(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}
	offset, limit := parsePagination(c)

	query := hs.Appointments()
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if patientID := c.Query("patient_id"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("appointment_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("appointment_date < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count appointments")
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date ASC").Offset(offset).Limit(limit).Find(&appointments).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointments")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{
		"appointments": appointments,
		"total":        total,
	})
}

func HandleGetAppointment(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var appointment models.Appointment
	if err := hs.Appointments().First(&appointment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Appointment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointment")
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"appointment": appointment})
}

func HandleCreateAppointment(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	appointment.ID = 0
	if appointment.Status == "" {
		appointment.Status = models.APPOINTMENT_SCHEDULED
	}
	if err := appointment.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	// The referenced patient must exist in this store
	var count int64
	if err := hs.Patients().Where("id = ?", appointment.PatientID).Count(&count).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to verify patient")
	}
	if count == 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_patient", "Patient does not exist")
	}

	if err := hs.Appointments().Create(&appointment).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create appointment")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Appointment scheduled", fiber.Map{"appointment": appointment})
}

func HandleUpdateAppointment(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	var appointment models.Appointment
	if err := hs.Appointments().First(&appointment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Appointment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointment")
	}

	id := appointment.ID
	if err := c.BodyParser(&appointment); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	appointment.ID = id
	if err := appointment.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := hs.Appointments().Save(&appointment).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update appointment")
	}

	return jsonSuccess(c, fiber.StatusOK, "Appointment updated", fiber.Map{"appointment": appointment})
}

func HandleCancelAppointment(c *fiber.Ctx) error {
	hs := tenantHandles(c)
	if hs == nil {
		return jsonError(c, fiber.StatusInternalServerError, "store_unavailable", "Tenant context not available")
	}

	result := hs.Appointments().Where("id = ?", c.Params("id")).Update("status", models.APPOINTMENT_CANCELLED)
	if result.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to cancel appointment")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Appointment not found")
	}

	return jsonSuccess(c, fiber.StatusOK, "Appointment cancelled", nil)
}
