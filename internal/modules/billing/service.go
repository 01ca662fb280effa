package billing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/typeless-cms/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownWorkspace signals an event we cannot tie to any workspace.
var ErrUnknownWorkspace = errors.New("no workspace for billing event")

// Transition is the workspace billing state an event moves to.
type Transition struct {
	Status string
	// Plan is applied only when non-empty; most events keep the plan.
	Plan string
}

// TransitionFor maps a webhook event type to the resulting billing
// state. The zero Transition means the event is ignored.
func TransitionFor(eventType stripe.EventType) (Transition, bool) {
	switch eventType {
	case "checkout.session.completed", "invoice.payment_succeeded":
		return Transition{Status: models.SubscriptionActive}, true
	case "invoice.payment_failed":
		return Transition{Status: models.SubscriptionPastDue}, true
	case "customer.subscription.deleted":
		return Transition{Status: models.SubscriptionCanceled, Plan: models.PlanFree}, true
	}
	return Transition{}, false
}

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// HandleEvent applies one verified webhook event. Events are processed
// exactly once; a failure here surfaces as a 5xx and is not retried by
// this system.
func (s *Service) HandleEvent(event stripe.Event) error {
	transition, ok := TransitionFor(event.Type)
	if !ok {
		s.logger.Debug("ignoring billing event", zap.String("type", string(event.Type)))
		return nil
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(event, transition)
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("decode subscription: %w", err)
		}
		return s.applyByCustomer(customerID(sub.Customer), transition)
	default: // invoice events
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return fmt.Errorf("decode invoice: %w", err)
		}
		return s.applyByCustomer(customerID(inv.Customer), transition)
	}
}

// handleCheckoutCompleted attaches the Stripe customer and subscription
// to the workspace named in the checkout's client reference.
func (s *Service) handleCheckoutCompleted(event stripe.Event, transition Transition) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}
	if session.ClientReferenceID == "" {
		return ErrUnknownWorkspace
	}

	updates := map[string]interface{}{
		"subscription_status": transition.Status,
		"plan":                planFromSession(&session),
	}
	if id := customerID(session.Customer); id != "" {
		updates["stripe_customer_id"] = id
	}
	if session.Subscription != nil && session.Subscription.ID != "" {
		updates["stripe_subscription_id"] = session.Subscription.ID
	}

	res := s.db.Model(&models.WorkspaceModel{}).
		Where("id = ?", session.ClientReferenceID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUnknownWorkspace
	}

	s.logger.Info("workspace subscription activated",
		zap.String("workspace_id", session.ClientReferenceID),
		zap.String("plan", planFromSession(&session)),
	)
	return nil
}

func (s *Service) applyByCustomer(customer string, transition Transition) error {
	if customer == "" {
		return ErrUnknownWorkspace
	}

	updates := map[string]interface{}{"subscription_status": transition.Status}
	if transition.Plan != "" {
		updates["plan"] = transition.Plan
	}

	res := s.db.Model(&models.WorkspaceModel{}).
		Where("stripe_customer_id = ?", customer).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// The customer may belong to a deleted workspace; nothing to do.
		s.logger.Warn("billing event for unknown customer", zap.String("customer", customer))
	}
	return nil
}

// planFromSession reads the purchased plan from checkout metadata,
// defaulting to PRO when the dashboard didn't tag it.
func planFromSession(session *stripe.CheckoutSession) string {
	switch session.Metadata["plan"] {
	case models.PlanTeam:
		return models.PlanTeam
	case models.PlanFree:
		return models.PlanFree
	default:
		return models.PlanPro
	}
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}
