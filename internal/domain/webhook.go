package domain

import (
	"context"
	"time"
)

// Kiwify webhook event names.
const (
	EventPurchaseApproved     = "compra_aprovada"
	EventSubscriptionRenewed  = "assinatura_renovada"
	EventSubscriptionCanceled = "assinatura_cancelada"
	EventSubscriptionLate     = "assinatura_atrasada"
)

// PremiumPeriod is how long an approved purchase or renewal grants premium.
const PremiumPeriod = 30 * 24 * time.Hour

// WebhookEvent is the JSON document posted by Kiwify.
type WebhookEvent struct {
	Email   string `json:"email"`
	Evento  string `json:"evento"`
	Produto string `json:"produto"`
	Token   string `json:"token"`
}

// WebhookLog records one processed webhook.
type WebhookLog struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Evento      string    `json:"evento"`
	Produto     string    `json:"produto"`
	AppliedPlan Plan      `json:"appliedPlan,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WebhookLogRepository is the port for webhook log persistence.
type WebhookLogRepository interface {
	AddWebhookLog(ctx context.Context, l WebhookLog) error
	ListRecentWebhookLogs(ctx context.Context, limit int) ([]WebhookLog, error)
}

// PlanChange computes the plan a webhook event moves a user to. ok is false
// for unrecognised events. Renewals extend from the later of now and the
// current expiry.
func PlanChange(evento string, current *User, now time.Time) (plan Plan, expiry time.Time, ok bool) {
	switch evento {
	case EventPurchaseApproved, EventSubscriptionRenewed:
		base := now
		if current != nil && current.Plan == PlanPremium && current.PlanExpiry.After(now) {
			base = current.PlanExpiry
		}
		return PlanPremium, base.Add(PremiumPeriod), true
	case EventSubscriptionCanceled, EventSubscriptionLate:
		return PlanFree, now, true
	default:
		return "", time.Time{}, false
	}
}
