package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/app/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestEmailExistsNormalizesInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("owner@acme.test").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := repo.EmailExists("  Owner@Acme.TEST ")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSubscriptionKeepsProductWhenEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	// Only subscription_status may change when no product is supplied
	mock.ExpectExec("UPDATE `users` SET `subscription_status`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateSubscription(1, models.SUBSCRIPTION_ACTIVE, "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanUpsertCreatesWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlanRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `plans`").
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `plans`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	plan := models.Plan{
		PlanType:     models.PLAN_BASIC,
		PlanName:     "Basic",
		BillingCycle: models.BILLING_ONCE,
		TrialDays:    3,
		IsActive:     true,
	}
	require.NoError(t, repo.Upsert(&plan))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanUpsertUpdatesExistingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlanRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `plans`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "plan_type"}).AddRow(7, models.PLAN_BASIC))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `plans` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan := models.Plan{
		PlanType:     models.PLAN_BASIC,
		PlanName:     "Basic v2",
		BillingCycle: models.BILLING_ONCE,
	}
	require.NoError(t, repo.Upsert(&plan))
	assert.Equal(t, uint(7), plan.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
