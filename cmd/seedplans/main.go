// Seeds the master store with the offered plans. Safe to run repeatedly,
// existing rows are updated in place.
package main

import (
	"log"

	"github.com/vertisaas/medisuite/app/models"
	"github.com/vertisaas/medisuite/app/repository"
	"github.com/vertisaas/medisuite/internal/pkg/database"
	"github.com/vertisaas/medisuite/internal/pkg/env"
)

func main() {
	env.SetupEnvFile()
	database.SetupDatabase()

	repo := repository.NewPlanRepository(database.GetDB())

	plans := []models.Plan{
		{
			PlanType:     models.PLAN_BASIC,
			PlanName:     "Basic",
			Price:        0,
			BillingCycle: models.BILLING_ONCE,
			Features:     models.StringList{"patients", "appointments", "staff"},
			TrialDays:    3,
			IsActive:     true,
		},
		{
			PlanType:     models.PLAN_SUBSCRIPTION,
			PlanName:     "Professional",
			Price:        49,
			BillingCycle: models.BILLING_MONTHLY,
			Features:     models.StringList{"patients", "appointments", "staff", "pharmacy", "accounting"},
			TrialDays:    3,
			IsActive:     true,
		},
		{
			PlanType:     models.PLAN_ONE_TIME,
			PlanName:     "Lifetime",
			Price:        999,
			BillingCycle: models.BILLING_ONCE,
			Features:     models.StringList{"patients", "appointments", "staff", "pharmacy", "accounting"},
			TrialDays:    3,
			IsActive:     true,
		},
		{
			PlanType:     models.PLAN_WHITE_LABEL,
			PlanName:     "White Label",
			Price:        199,
			BillingCycle: models.BILLING_MONTHLY,
			Features:     models.StringList{"patients", "appointments", "staff", "pharmacy", "accounting", "branding"},
			TrialDays:    7,
			IsActive:     true,
		},
	}

	for i := range plans {
		if err := repo.Upsert(&plans[i]); err != nil {
			log.Fatalf("Failed to seed plan %s: %v", plans[i].PlanType, err)
		}
		log.Printf("Seeded plan: %s", plans[i].PlanType)
	}
}
