package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
	"github.com/typeless-cms/core/internal/models"
)

func TestTransitionFor(t *testing.T) {
	tests := []struct {
		eventType  stripe.EventType
		want       Transition
		recognized bool
	}{
		{"checkout.session.completed", Transition{Status: models.SubscriptionActive}, true},
		{"invoice.payment_succeeded", Transition{Status: models.SubscriptionActive}, true},
		{"invoice.payment_failed", Transition{Status: models.SubscriptionPastDue}, true},
		{"customer.subscription.deleted", Transition{Status: models.SubscriptionCanceled, Plan: models.PlanFree}, true},
		{"customer.created", Transition{}, false},
		{"payment_intent.succeeded", Transition{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			got, ok := TransitionFor(tt.eventType)
			assert.Equal(t, tt.recognized, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanFromSession(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		want     string
	}{
		{"team plan", map[string]string{"plan": "TEAM"}, models.PlanTeam},
		{"free plan", map[string]string{"plan": "FREE"}, models.PlanFree},
		{"pro plan", map[string]string{"plan": "PRO"}, models.PlanPro},
		{"untagged defaults to pro", nil, models.PlanPro},
		{"unknown tag defaults to pro", map[string]string{"plan": "ENTERPRISE"}, models.PlanPro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &stripe.CheckoutSession{Metadata: tt.metadata}
			assert.Equal(t, tt.want, planFromSession(session))
		})
	}
}

func TestCustomerID(t *testing.T) {
	assert.Equal(t, "", customerID(nil))
	assert.Equal(t, "cus_123", customerID(&stripe.Customer{ID: "cus_123"}))
}
