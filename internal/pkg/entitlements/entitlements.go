package entitlements

import (
	"time"

	"github.com/vertisaas/medisuite/app/models"
)

// Deny reasons surfaced to the client so it can render the right prompt.
const (
	ReasonTrialExpired       = "trial_expired"
	ReasonSubscriptionLapsed = "subscription_inactive"
	ReasonAccountDeactivated = "account_deactivated"
)

// Decision is the outcome of an access check. Status and TrialEndDate are
// carried on denials so callers can tell an expired trial from a lapsed
// subscription.
type Decision struct {
	Allowed      bool
	Reason       string
	Status       string
	TrialEndDate *time.Time
}

// CheckAccess evaluates the subscription gate for a user at the given time.
// Pure function of user state and the clock: deactivation is terminal and
// overrides everything, trials expire lazily by clock comparison, an active
// subscription needs no trial window.
func CheckAccess(u *models.User, now time.Time) Decision {
	d := Decision{
		Status:       u.SubscriptionStatus,
		TrialEndDate: u.TrialEndDate,
	}

	if !u.IsActive {
		d.Reason = ReasonAccountDeactivated
		return d
	}

	if u.SubscriptionStatus == models.SUBSCRIPTION_ACTIVE {
		d.Allowed = true
		return d
	}

	if u.SubscriptionStatus == models.SUBSCRIPTION_TRIAL {
		if u.IsTrialExpired(now) {
			d.Reason = ReasonTrialExpired
			return d
		}
		d.Allowed = true
		return d
	}

	d.Reason = ReasonSubscriptionLapsed
	return d
}
