package repository

import (
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create creates a new plan in the master store
func (r *planRepository) Create(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

// GetByID retrieves a plan by its ID
func (r *planRepository) GetByID(id uint) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByType retrieves a plan by its unique plan type
func (r *planRepository) GetByType(planType string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("plan_type = ?", planType).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetActiveByType retrieves a plan by type, only if it is currently offered
func (r *planRepository) GetActiveByType(planType string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("plan_type = ? AND is_active = ?", planType, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive retrieves all currently offered plans
func (r *planRepository) ListActive() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

// Update updates an existing plan
func (r *planRepository) Update(plan *models.Plan) error {
	return r.db.Save(plan).Error
}

// Upsert creates the plan or updates the existing row with the same plan type
func (r *planRepository) Upsert(plan *models.Plan) error {
	var existing models.Plan
	err := r.db.Where("plan_type = ?", plan.PlanType).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(plan).Error
	} else if err != nil {
		return err
	}

	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	return r.db.Save(plan).Error
}
