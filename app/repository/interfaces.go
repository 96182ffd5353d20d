package repository

import (
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
)

// UserRepository defines the interface for account operations on the master store
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
	UpdateLastLogin(id uint) error
	UpdateSubscription(id uint, status string, productID string) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// PlanRepository defines the interface for plan catalog operations on the master store
type PlanRepository interface {
	Create(plan *models.Plan) error
	GetByID(id uint) (*models.Plan, error)
	GetByType(planType string) (*models.Plan, error)
	GetActiveByType(planType string) (*models.Plan, error)
	ListActive() ([]models.Plan, error)
	Update(plan *models.Plan) error
	Upsert(plan *models.Plan) error
}

// Repositories holds all repository instances for the master store
type Repositories struct {
	User UserRepository
	Plan PlanRepository
}

// NewRepositories creates all repository instances with the given database connection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
		Plan: NewPlanRepository(db),
	}
}
