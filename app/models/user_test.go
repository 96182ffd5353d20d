package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestUserHasAccess(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in2days := now.Add(48 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{
			name: "trial inside window",
			user: User{IsActive: true, SubscriptionStatus: SUBSCRIPTION_TRIAL, TrialEndDate: &in2days},
			want: true,
		},
		{
			name: "trial expired",
			user: User{IsActive: true, SubscriptionStatus: SUBSCRIPTION_TRIAL, TrialEndDate: &past},
			want: false,
		},
		{
			name: "trial without end date",
			user: User{IsActive: true, SubscriptionStatus: SUBSCRIPTION_TRIAL},
			want: false,
		},
		{
			name: "active subscription without trial end",
			user: User{IsActive: true, SubscriptionStatus: SUBSCRIPTION_ACTIVE},
			want: true,
		},
		{
			name: "deactivated overrides active subscription",
			user: User{IsActive: false, SubscriptionStatus: SUBSCRIPTION_ACTIVE},
			want: false,
		},
		{
			name: "expired subscription",
			user: User{IsActive: true, SubscriptionStatus: SUBSCRIPTION_EXPIRED},
			want: false,
		},
		{
			name: "cancelled subscription",
			user: User{IsActive: true, SubscriptionStatus: SUBSCRIPTION_CANCELLED},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.HasAccess(now))
		})
	}
}

func TestTrialBoundary(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(3 * 24 * time.Hour)
	u := User{IsActive: true, SubscriptionStatus: SUBSCRIPTION_TRIAL, TrialStartDate: start, TrialEndDate: &end}

	assert.True(t, u.HasAccess(start.Add(2*24*time.Hour)), "day 2 of a 3-day trial")
	assert.True(t, u.HasAccess(end), "the end instant itself is still inside the trial")
	assert.False(t, u.HasAccess(start.Add(4*24*time.Hour)), "day 4 of a 3-day trial")
}
