package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PLAN_WHITE_LABEL  = "white-label"
	PLAN_SUBSCRIPTION = "subscription"
	PLAN_ONE_TIME     = "one-time"
	PLAN_BASIC        = "basic"

	BILLING_MONTHLY = "monthly"
	BILLING_YEARLY  = "yearly"
	BILLING_ONCE    = "once"
)

// Plan is a master-store billing plan. Plans are seeded at deployment and
// read-only afterwards; registration looks them up by PlanType.
type Plan struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PlanType     string     `gorm:"uniqueIndex;type:varchar(50);index:idx_plans_type_active" json:"plan_type" validate:"required,oneof=white-label subscription one-time basic"`
	PlanName     string     `gorm:"type:varchar(150)" json:"plan_name" validate:"required,min=3,max=150"`
	Price        float64    `gorm:"type:decimal(12,2)" json:"price" validate:"gte=0"`
	BillingCycle string     `gorm:"type:varchar(20)" json:"billing_cycle" validate:"required,oneof=monthly yearly once"`
	Features     StringList `gorm:"type:text" json:"features"`
	TrialDays    int        `gorm:"default:3" json:"trial_days" validate:"gte=0"`
	IsActive     bool       `gorm:"default:true;index:idx_plans_type_active" json:"is_active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Plan) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
