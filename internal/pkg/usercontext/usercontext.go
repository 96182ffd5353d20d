package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext represents the authenticated principal for a request
type UserContext struct {
	UserID             uint   `json:"user_id"`
	Email              string `json:"email"`
	CompanyName        string `json:"company_name"`
	TenantDBName       string `json:"tenant_db_name"`
	SubscriptionStatus string `json:"subscription_status"`
	ProductID          string `json:"product_id"`
	IsLoggedIn         bool   `json:"is_logged_in"`
}

// Set stores the user context on the request.
func Set(c *fiber.Ctx, ctx UserContext) {
	c.Locals(KeyUserContext, ctx)
}

// Get retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func Get(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		if uc, ok := ctx.(UserContext); ok {
			return uc
		}
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is authenticated
func IsLoggedIn(c *fiber.Ctx) bool {
	return Get(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return Get(c).UserID
}

// GetTenantDBName returns the authenticated principal's tenant store name,
// or empty string if not logged in
func GetTenantDBName(c *fiber.Ctx) string {
	return Get(c).TenantDBName
}
