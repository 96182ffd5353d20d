package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vertisaas/medisuite/app/models"
)

func trialUser(end time.Time, active bool) *models.User {
	return &models.User{
		IsActive:           active,
		SubscriptionStatus: models.SUBSCRIPTION_TRIAL,
		TrialEndDate:       &end,
	}
}

func TestCheckAccessTrialWindow(t *testing.T) {
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * 24 * time.Hour)
	u := trialUser(end, true)

	d := CheckAccess(u, start.Add(2*24*time.Hour))
	assert.True(t, d.Allowed, "day 2 of a 3-day trial must be allowed")

	d = CheckAccess(u, start.Add(4*24*time.Hour))
	assert.False(t, d.Allowed, "day 4 of a 3-day trial must be denied")
	assert.Equal(t, ReasonTrialExpired, d.Reason)
	assert.Equal(t, models.SUBSCRIPTION_TRIAL, d.Status)
	assert.NotNil(t, d.TrialEndDate)
	assert.Equal(t, end, *d.TrialEndDate)
}

func TestCheckAccessActiveSubscriptionIgnoresClock(t *testing.T) {
	u := &models.User{IsActive: true, SubscriptionStatus: models.SUBSCRIPTION_ACTIVE}

	for _, now := range []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		d := CheckAccess(u, now)
		assert.True(t, d.Allowed)
		assert.Empty(t, d.Reason)
	}
}

func TestCheckAccessDeactivationIsTerminal(t *testing.T) {
	now := time.Now()

	u := &models.User{IsActive: false, SubscriptionStatus: models.SUBSCRIPTION_ACTIVE}
	d := CheckAccess(u, now)
	assert.False(t, d.Allowed, "deactivation overrides an active subscription")
	assert.Equal(t, ReasonAccountDeactivated, d.Reason)

	end := now.Add(24 * time.Hour)
	d = CheckAccess(trialUser(end, false), now)
	assert.False(t, d.Allowed, "deactivation overrides a running trial")
	assert.Equal(t, ReasonAccountDeactivated, d.Reason)
}

func TestCheckAccessLapsedStatuses(t *testing.T) {
	now := time.Now()

	for _, status := range []string{models.SUBSCRIPTION_EXPIRED, models.SUBSCRIPTION_CANCELLED} {
		u := &models.User{IsActive: true, SubscriptionStatus: status}
		d := CheckAccess(u, now)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonSubscriptionLapsed, d.Reason)
		assert.Equal(t, status, d.Status)
	}
}

func TestCheckAccessTrialWithoutEndDate(t *testing.T) {
	u := &models.User{IsActive: true, SubscriptionStatus: models.SUBSCRIPTION_TRIAL}
	d := CheckAccess(u, time.Now())
	assert.False(t, d.Allowed, "a trial without an end date must not grant access")
	assert.Equal(t, ReasonTrialExpired, d.Reason)
}
