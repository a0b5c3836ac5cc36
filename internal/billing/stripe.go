package billing

import (
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	bpsession "github.com/stripe/stripe-go/v82/billingportal/session"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

// Provider wraps the Stripe API surface the app needs.
type Provider struct {
	webhookSecret string
	priceProID    string
}

func NewProvider(apiKey, webhookSecret, priceProID string) *Provider {
	stripe.Key = apiKey
	return &Provider{
		webhookSecret: webhookSecret,
		priceProID:    priceProID,
	}
}

// EnsureCustomer returns the club's Stripe customer ID, creating the
// customer on first use.
func (p *Provider) EnsureCustomer(club *models.Club, ownerEmail string) (string, error) {
	if club.StripeCustomerID != "" {
		return club.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(ownerEmail),
		Name:  stripe.String(club.Name),
		Metadata: map[string]string{
			"club_id":   fmt.Sprint(club.ID),
			"club_slug": club.Slug,
		},
	}
	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("billing: create stripe customer: %w", err)
	}
	return c.ID, nil
}

// CheckoutSession opens a subscription checkout for the PRO plan.
func (p *Provider) CheckoutSession(club *models.Club, customerID, baseURL string) (string, error) {
	meta := map[string]string{
		"club_id":   fmt.Sprint(club.ID),
		"club_slug": club.Slug,
	}

	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.priceProID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(baseURL + "/admin/tools?billing=success"),
		CancelURL:  stripe.String(baseURL + "/admin/tools?billing=cancel"),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: meta,
		},
		Metadata: meta,
	}

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("billing: create checkout session: %w", err)
	}
	return s.URL, nil
}

// PortalSession opens the Stripe customer portal for self-service
// subscription management.
func (p *Provider) PortalSession(customerID, baseURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(baseURL + "/admin/tools?billing=portal_return"),
	}

	s, err := bpsession.New(params)
	if err != nil {
		return "", fmt.Errorf("billing: create portal session: %w", err)
	}
	return s.URL, nil
}

// GetSubscription fetches the subscription for webhook events that
// only carry a subscription ID.
func (p *Provider) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
	sub, err := subscription.Get(subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("billing: fetch subscription: %w", err)
	}
	return sub, nil
}

// ConstructEvent verifies the webhook signature and decodes the event.
func (p *Provider) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
}

// PeriodEnd extracts the current period end; on current API versions
// the period lives on the subscription items.
func PeriodEnd(sub *stripe.Subscription) *time.Time {
	if sub == nil || sub.Items == nil {
		return nil
	}
	for _, item := range sub.Items.Data {
		if item != nil && item.CurrentPeriodEnd > 0 {
			t := time.Unix(item.CurrentPeriodEnd, 0).UTC()
			return &t
		}
	}
	return nil
}

// PlanForStatus maps a Stripe subscription status onto the club's
// plan and stored status. Paying states, including past_due while
// Stripe retries the card, keep the club on PRO.
func PlanForStatus(status string) (plan, subStatus string) {
	switch status {
	case string(stripe.SubscriptionStatusActive):
		return models.PlanPro, models.SubActive
	case string(stripe.SubscriptionStatusTrialing):
		return models.PlanPro, models.SubTrialing
	case string(stripe.SubscriptionStatusPastDue):
		return models.PlanPro, models.SubPastDue
	case string(stripe.SubscriptionStatusCanceled):
		return models.PlanFree, models.SubCanceled
	case string(stripe.SubscriptionStatusUnpaid),
		string(stripe.SubscriptionStatusIncomplete),
		string(stripe.SubscriptionStatusIncompleteExpired):
		return models.PlanFree, models.SubInactive
	case "":
		return models.PlanFree, models.SubUnknown
	default:
		return models.PlanFree, status
	}
}
