package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/billing"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/gate"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/logger"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	trialuc "github.com/michaelofdavenport/london-ohio-lions-club-app/internal/usecase/trial"
)

type BillingHandler struct {
	db         *gorm.DB
	config     *config.Config
	provider   *billing.Provider
	startTrial *trialuc.StartTrial
	gateRepo   gate.Repository
}

func NewBillingHandler(
	db *gorm.DB,
	cfg *config.Config,
	provider *billing.Provider,
	startTrial *trialuc.StartTrial,
	gateRepo gate.Repository,
) *BillingHandler {
	return &BillingHandler{
		db:         db,
		config:     cfg,
		provider:   provider,
		startTrial: startTrial,
		gateRepo:   gateRepo,
	}
}

// --------- Helpers ---------

func (h *BillingHandler) requireEnabled(c *gin.Context) bool {
	if !h.config.BillingEnabled || h.config.StripeSecretKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error_code": "billing_disabled",
			"message":    "billing is disabled on this deployment",
		})
		return false
	}
	return true
}

func clubPayload(club *models.Club) gin.H {
	return gin.H{
		"id":                     club.ID,
		"slug":                   club.Slug,
		"name":                   club.Name,
		"plan":                   club.Plan,
		"subscription_status":    club.SubscriptionStatus,
		"stripe_customer_id":     club.StripeCustomerID,
		"stripe_subscription_id": club.StripeSubscriptionID,
		"current_period_end":     club.CurrentPeriodEnd,
	}
}

// statusPayload is the shared body of /billing/status and a
// successful /billing/start-trial.
func (h *BillingHandler) statusPayload(c *gin.Context, club *models.Club, actorEmail string) gin.H {
	now := time.Now()
	info := gate.Snapshot(club, now)

	canStart := false
	if club.Plan != models.PlanPro && info.TrialStatus == gate.TrialNever && actorEmail != "" {
		claimed, err := h.gateRepo.TrialClaimExists(c.Request.Context(), gate.NormalizeEmail(actorEmail))
		if err == nil {
			canStart = !claimed
		}
	}

	var lockReason any
	if !info.Active {
		lockReason = info.TrialStatus
	}

	return gin.H{
		"ok":              true,
		"billing_enabled": h.config.BillingEnabled,
		"club":            clubPayload(club),
		"trial":           info,
		"is_locked":       !info.Active,
		"can_start_trial": canStart,
		"lock_reason":     lockReason,
	}
}

// --------- Member-facing ---------

func (h *BillingHandler) Status(c *gin.Context) {
	member := middleware.CurrentMember(c)
	club := middleware.CurrentClub(c)
	if club == nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}
	c.JSON(http.StatusOK, h.statusPayload(c, club, member.Email))
}

// --------- Owner-facing ---------

func (h *BillingHandler) StartTrial(c *gin.Context) {
	owner := middleware.CurrentMember(c)
	club := middleware.CurrentClub(c)
	if club == nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}

	_, err := h.startTrial.Execute(c.Request.Context(), trialuc.StartTrialInput{
		Club:        club,
		ActorEmail:  owner.Email,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		if httperr.IsBusiness(err, "TRIAL_ALREADY_USED_FOR_EMAIL") {
			c.JSON(http.StatusOK, gin.H{
				"ok":              false,
				"code":            "TRIAL_ALREADY_USED_FOR_EMAIL",
				"message":         "free trial already used for this email",
				"billing_enabled": h.config.BillingEnabled,
				"trial": gin.H{
					"status":  "blocked",
					"expired": true,
				},
			})
			return
		}
		httperr.Internal(c, "trial_failed", "could not start trial")
		return
	}

	c.JSON(http.StatusOK, h.statusPayload(c, club, owner.Email))
}

func (h *BillingHandler) Me(c *gin.Context) {
	if !h.requireEnabled(c) {
		return
	}
	club := middleware.CurrentClub(c)
	if club == nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"billing_enabled": h.config.BillingEnabled,
		"club":            clubPayload(club),
	})
}

func (h *BillingHandler) Checkout(c *gin.Context) {
	if !h.requireEnabled(c) {
		return
	}
	owner := middleware.CurrentMember(c)
	club := middleware.CurrentClub(c)
	if club == nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}

	if club.SubscriptionStatus == models.SubActive || club.SubscriptionStatus == models.SubTrialing {
		httperr.BadRequest(c, "already_subscribed", "subscription already active")
		return
	}

	customerID, err := h.provider.EnsureCustomer(club, owner.Email)
	if err != nil {
		logger.L.Errorw("stripe customer create failed", "club", club.Slug, "err", err)
		httperr.Internal(c, "stripe_error", "could not create billing customer")
		return
	}
	if club.StripeCustomerID == "" {
		club.StripeCustomerID = customerID
		if err := h.db.Model(club).Update("stripe_customer_id", customerID).Error; err != nil {
			httperr.Internal(c, "update_failed", "could not save billing customer")
			return
		}
	}

	url, err := h.provider.CheckoutSession(club, customerID, h.config.AppBaseURL)
	if err != nil {
		logger.L.Errorw("stripe checkout failed", "club", club.Slug, "err", err)
		httperr.Internal(c, "stripe_error", "could not open checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "billing_enabled": true, "url": url})
}

func (h *BillingHandler) Portal(c *gin.Context) {
	if !h.requireEnabled(c) {
		return
	}
	club := middleware.CurrentClub(c)
	if club == nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}
	if club.StripeCustomerID == "" {
		httperr.BadRequest(c, "no_customer", "no billing customer for this club yet")
		return
	}

	url, err := h.provider.PortalSession(club.StripeCustomerID, h.config.AppBaseURL)
	if err != nil {
		logger.L.Errorw("stripe portal failed", "club", club.Slug, "err", err)
		httperr.Internal(c, "stripe_error", "could not open billing portal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "billing_enabled": true, "url": url})
}

// --------- Webhook ---------

// webhookObject is the subset of Stripe event payloads the handler
// reads, decoded directly so it works across object types.
type webhookObject struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata"`

	CurrentPeriodEnd int64 `json:"current_period_end"`
	Items            struct {
		Data []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

func (o *webhookObject) periodEnd() *time.Time {
	ts := o.CurrentPeriodEnd
	if ts == 0 {
		for _, it := range o.Items.Data {
			if it.CurrentPeriodEnd > 0 {
				ts = it.CurrentPeriodEnd
				break
			}
		}
	}
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

// Webhook applies Stripe subscription lifecycle events to the club
// record. Events that cannot be tied to a club are acknowledged and
// ignored so Stripe stops retrying them.
func (h *BillingHandler) Webhook(c *gin.Context) {
	if !h.requireEnabled(c) {
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "could not read payload")
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if sig == "" {
		httperr.BadRequest(c, "missing_signature", "missing Stripe signature header")
		return
	}

	event, err := h.provider.ConstructEvent(payload, sig)
	if err != nil {
		httperr.BadRequest(c, "invalid_signature", "invalid Stripe webhook signature")
		return
	}

	var obj webhookObject
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		httperr.BadRequest(c, "invalid_payload", "could not parse event object")
		return
	}

	club := h.resolveWebhookClub(&obj)
	if club == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": true, "type": string(event.Type)})
		return
	}

	switch string(event.Type) {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		h.applySubscription(club, &obj)

	case "checkout.session.completed":
		if obj.Customer != "" && club.StripeCustomerID == "" {
			club.StripeCustomerID = obj.Customer
		}
		if obj.Subscription != "" {
			club.StripeSubscriptionID = obj.Subscription
			if sub, err := h.provider.GetSubscription(obj.Subscription); err == nil {
				club.CurrentPeriodEnd = billing.PeriodEnd(sub)
				club.Plan, club.SubscriptionStatus = billing.PlanForStatus(string(sub.Status))
			} else {
				club.SubscriptionStatus = models.SubUnknown
			}
		}

	case "invoice.payment_failed", "invoice.payment_action_required":
		club.SubscriptionStatus = models.SubPastDue
		club.Plan = models.PlanPro

	case "invoice.paid", "invoice.payment_succeeded":
		subID := obj.Subscription
		if subID == "" {
			subID = club.StripeSubscriptionID
		}
		if subID != "" {
			if sub, err := h.provider.GetSubscription(subID); err == nil {
				club.StripeSubscriptionID = sub.ID
				club.CurrentPeriodEnd = billing.PeriodEnd(sub)
				club.Plan, club.SubscriptionStatus = billing.PlanForStatus(string(sub.Status))
			} else {
				club.SubscriptionStatus = models.SubActive
				club.Plan = models.PlanPro
			}
		} else {
			club.SubscriptionStatus = models.SubActive
			club.Plan = models.PlanPro
		}

	default:
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": true, "type": string(event.Type)})
		return
	}

	if err := h.db.Save(club).Error; err != nil {
		logger.L.Errorw("webhook club save failed", "club", club.Slug, "err", err)
		httperr.Internal(c, "update_failed", "could not apply event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *BillingHandler) applySubscription(club *models.Club, obj *webhookObject) {
	club.StripeSubscriptionID = obj.ID
	club.CurrentPeriodEnd = obj.periodEnd()
	club.Plan, club.SubscriptionStatus = billing.PlanForStatus(obj.Status)

	if club.CurrentPeriodEnd == nil && obj.ID != "" {
		if sub, err := h.provider.GetSubscription(obj.ID); err == nil {
			club.CurrentPeriodEnd = billing.PeriodEnd(sub)
		}
	}
	if obj.Customer != "" && club.StripeCustomerID == "" {
		club.StripeCustomerID = obj.Customer
	}
}

// resolveWebhookClub ties an event to a club: stored customer ID
// first, then metadata, then a subscription re-fetch.
func (h *BillingHandler) resolveWebhookClub(obj *webhookObject) *models.Club {
	if club := h.clubByCustomer(obj.Customer); club != nil {
		return club
	}
	if club := h.clubByMetadata(obj.Metadata); club != nil {
		return club
	}

	if obj.Subscription != "" {
		sub, err := h.provider.GetSubscription(obj.Subscription)
		if err != nil {
			return nil
		}
		if sub.Customer != nil {
			if club := h.clubByCustomer(sub.Customer.ID); club != nil {
				return club
			}
		}
		return h.clubByMetadata(sub.Metadata)
	}
	return nil
}

func (h *BillingHandler) clubByCustomer(customerID string) *models.Club {
	if customerID == "" {
		return nil
	}
	var club models.Club
	if err := h.db.Where("stripe_customer_id = ?", customerID).First(&club).Error; err != nil {
		return nil
	}
	return &club
}

func (h *BillingHandler) clubByMetadata(md map[string]string) *models.Club {
	if md == nil || md["club_id"] == "" {
		return nil
	}
	var club models.Club
	if err := h.db.First(&club, md["club_id"]).Error; err != nil {
		return nil
	}
	return &club
}
