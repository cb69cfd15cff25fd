package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vivaleve/internal/domain"
)

func TestPlanChange(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	free := &domain.User{Plan: domain.PlanFree, PlanExpiry: now.Add(48 * time.Hour)}
	premium := &domain.User{Plan: domain.PlanPremium, PlanExpiry: now.Add(10 * 24 * time.Hour)}

	plan, expiry, ok := domain.PlanChange(domain.EventPurchaseApproved, free, now)
	assert.True(t, ok)
	assert.Equal(t, domain.PlanPremium, plan)
	assert.Equal(t, now.Add(domain.PremiumPeriod), expiry)

	plan, expiry, ok = domain.PlanChange(domain.EventSubscriptionRenewed, premium, now)
	assert.True(t, ok)
	assert.Equal(t, domain.PlanPremium, plan)
	assert.Equal(t, premium.PlanExpiry.Add(domain.PremiumPeriod), expiry)

	for _, ev := range []string{domain.EventSubscriptionCanceled, domain.EventSubscriptionLate} {
		plan, expiry, ok = domain.PlanChange(ev, premium, now)
		assert.True(t, ok)
		assert.Equal(t, domain.PlanFree, plan)
		assert.Equal(t, now, expiry)
	}

	_, _, ok = domain.PlanChange("reembolso", premium, now)
	assert.False(t, ok)
}

func TestUserPlanHelpers(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	u := &domain.User{Plan: domain.PlanPremium, PlanExpiry: now.Add(36 * time.Hour)}
	assert.Equal(t, 2, u.PlanDaysLeft(now))
	assert.True(t, u.HasPremiumAccess(now))

	u.PlanExpiry = now.Add(-time.Hour)
	assert.Equal(t, 0, u.PlanDaysLeft(now))
	assert.False(t, u.HasPremiumAccess(now))
}
