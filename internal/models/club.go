package models

import "time"

// Plan values stored on Club.Plan.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

// Subscription status values mirrored from the payment processor.
const (
	SubInactive = "inactive"
	SubActive   = "active"
	SubTrialing = "trialing"
	SubPastDue  = "past_due"
	SubCanceled = "canceled"
	SubUnknown  = "unknown"
)

type Club struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Slug is how public forms route to a tenant: ?club=london-ohio
	Slug    string `gorm:"size:80;uniqueIndex;not null" json:"slug"`
	Name    string `gorm:"size:255;not null" json:"name"`
	LogoURL string `gorm:"size:500" json:"logo_url"`

	Plan                 string     `gorm:"size:30;not null;default:'FREE'" json:"plan"`
	SubscriptionStatus   string     `gorm:"size:30;not null;default:'inactive'" json:"subscription_status"`
	StripeCustomerID     string     `gorm:"size:80" json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `gorm:"size:80" json:"stripe_subscription_id,omitempty"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`

	// Trial fields; TrialStartedAt is set at most once per club.
	TrialStartedAt *time.Time `json:"trial_started_at"`
	TrialExpiresAt *time.Time `json:"trial_expires_at"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
