package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
	"github.com/vertisaas/medisuite/app/repository"
	"github.com/vertisaas/medisuite/internal/pkg/cache"
	"github.com/vertisaas/medisuite/internal/pkg/database"
	"github.com/vertisaas/medisuite/internal/pkg/entitlements"
	"github.com/vertisaas/medisuite/internal/pkg/tenant"
	"github.com/vertisaas/medisuite/internal/pkg/token"
	"github.com/vertisaas/medisuite/internal/pkg/usercontext"
)

const planCacheTTL = 10 * time.Minute

// RegisterRequest is the signup payload. PlanType defaults to the basic
// trial plan when omitted.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,min=5,max=200"`
	Password    string `json:"password" validate:"required,min=6"`
	CompanyName string `json:"company_name" validate:"required,min=2,max=150"`
	Phone       string `json:"phone" validate:"max=50"`
	Address     string `json:"address" validate:"max=255"`
	PlanType    string `json:"plan_type" validate:"omitempty,oneof=white-label subscription one-time basic"`
	ProductID   string `json:"product_id" validate:"max=50"`
}

// LoginRequest is the credential payload for HandleLogin.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates the master account and provisions the tenant store
// in one flow. The store is fully materialized before the account row is
// written; if the account insert fails the store is torn down again.
func HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.PlanType == "" {
		req.PlanType = models.PLAN_BASIC
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	repos := repository.GetGlobalRepositories()

	exists, err := repos.User.EmailExists(req.Email)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check existing accounts")
	}
	if exists {
		return jsonError(c, fiber.StatusBadRequest, "email_taken", "User already exists with this email")
	}

	plan, err := lookupActivePlan(repos.Plan, req.PlanType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_plan", "Selected plan is not available")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load plan")
	}

	provisioner := tenant.NewProvisioner(database.GetDB(), tenant.GetRegistry(), database.TenantURL)
	store, err := provisioner.Provision(req.CompanyName)
	if err != nil {
		log.Printf("Provisioning failed for %s: %v", req.Email, err)
		return jsonError(c, fiber.StatusInternalServerError, "provisioning_failed", "Failed to set up your workspace. Please try again.")
	}

	now := time.Now()
	trialEnd := now.AddDate(0, 0, plan.TrialDays)

	productID := req.ProductID
	if productID == "" {
		productID = plan.PlanType
	}

	user := models.User{
		Email:              req.Email,
		CompanyName:        req.CompanyName,
		Phone:              req.Phone,
		Address:            req.Address,
		PlanID:             plan.ID,
		TenantDBName:       store.StoreName,
		TenantDBURL:        store.StoreURL,
		SubscriptionStatus: models.SUBSCRIPTION_TRIAL,
		TrialStartDate:     now,
		TrialEndDate:       &trialEnd,
		ProductID:          productID,
		IsActive:           true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		provisioner.Deprovision(store.StoreName)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create account")
	}

	if err := repos.User.Create(&user); err != nil {
		provisioner.Deprovision(store.StoreName)
		log.Printf("Account insert failed for %s: %v", req.Email, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create account")
	}

	jwt, err := token.Generate(user.ID, user.Email, user.TenantDBName, user.ProductID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to issue token")
	}

	return jsonSuccess(c, fiber.StatusCreated, "Account created successfully", fiber.Map{
		"token": jwt,
		"user":  userPayload(&user),
	})
}

// HandleLogin verifies credentials and enforces the subscription gate before
// issuing a token.
func HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByEmail(req.Email)
	if err != nil {
		// Same response as a wrong password, never reveal which one it was
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	}
	if !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	}

	if !user.IsActive {
		return jsonError(c, fiber.StatusForbidden, "account_deactivated", "Your account has been deactivated. Please contact support.")
	}

	decision := entitlements.CheckAccess(user, time.Now())
	if !decision.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success":             false,
			"error":               "access_denied",
			"message":             "Access denied. Your trial has expired or subscription is not active.",
			"reason":              decision.Reason,
			"subscription_status": decision.Status,
			"trial_end_date":      decision.TrialEndDate,
		})
	}

	if err := repos.User.UpdateLastLogin(user.ID); err != nil {
		log.Printf("Failed to update last login for user %d: %v", user.ID, err)
	}

	jwt, err := token.Generate(user.ID, user.Email, user.TenantDBName, user.ProductID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to issue token")
	}

	return jsonSuccess(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": jwt,
		"user":  userPayload(user),
	})
}

// HandleProfile returns the authenticated account together with its plan.
func HandleProfile(c *fiber.Ctx) error {
	uc := usercontext.Get(c)

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(uc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	payload := userPayload(user)
	if plan, err := repos.Plan.GetByID(user.PlanID); err == nil {
		payload["plan"] = fiber.Map{
			"plan_type":     plan.PlanType,
			"plan_name":     plan.PlanName,
			"price":         plan.Price,
			"billing_cycle": plan.BillingCycle,
			"features":      plan.Features,
			"trial_days":    plan.TrialDays,
		}
	}

	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"user": payload})
}

// HandleListPlans returns the currently offered plans. Public route.
func HandleListPlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalRepositories().Plan.ListActive()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load plans")
	}
	return jsonSuccess(c, fiber.StatusOK, "", fiber.Map{"plans": plans})
}

// lookupActivePlan resolves a plan by type, cache first. Plans are seeded at
// deployment and effectively immutable, so a short TTL is plenty.
func lookupActivePlan(repo repository.PlanRepository, planType string) (*models.Plan, error) {
	cacheKey := "plan:" + planType

	if raw, err := cache.Get(cacheKey); err == nil && raw != "" {
		var plan models.Plan
		if err := json.Unmarshal([]byte(raw), &plan); err == nil {
			return &plan, nil
		}
	}

	plan, err := repo.GetActiveByType(planType)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(plan); err == nil {
		if err := cache.Set(cacheKey, string(raw), planCacheTTL); err != nil {
			log.Printf("Failed to cache plan %s: %v", planType, err)
		}
	}

	return plan, nil
}

func userPayload(u *models.User) fiber.Map {
	return fiber.Map{
		"id":                  u.ID,
		"email":               u.Email,
		"company_name":        u.CompanyName,
		"phone":               u.Phone,
		"address":             u.Address,
		"tenant_db_name":      u.TenantDBName,
		"subscription_status": u.SubscriptionStatus,
		"trial_start_date":    u.TrialStartDate.UTC().Format(time.RFC3339),
		"trial_end_date":      formatTimePtr(u.TrialEndDate),
		"product_id":          u.ProductID,
		"is_active":           u.IsActive,
		"last_login_at":       formatTimePtr(u.LastLoginAt),
		"created_at":          u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
