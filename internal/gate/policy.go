package gate

// ============================================================
// Subscription/trial access policy. Evaluate is the single
// decision point: the global middleware and per-route guards
// all call it, so nothing can drift out of agreement.
// ============================================================

import (
	"strings"
	"time"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

// TrialDays is the length of the one-time free trial.
const TrialDays = 7

const (
	TrialNever   = "never"
	TrialActive  = "active"
	TrialExpired = "expired"
)

// Denial codes carried on 403 responses.
const (
	CodeTrialExpired = "TRIAL_EXPIRED"
	CodeNotAdmin     = "NOT_ADMIN"
	CodeAccessDenied = "ACCESS_DENIED"
)

// alwaysAllowed paths are reachable regardless of subscription state:
// health, public content, login, and everything needed to pay.
var alwaysAllowed = []string{
	"/",
	"/health",
	"/version",
	"/static",
	"/public",
	"/billing",
	"/member/login",
	"/admin/bootstrap",
}

// AccessInfo is the gate's view of a club's standing, also served
// verbatim by the billing status endpoints.
type AccessInfo struct {
	Plan               string     `json:"plan"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialStatus        string     `json:"trial_status"`
	TrialStartedAt     *time.Time `json:"trial_started_at"`
	TrialExpiresAt     *time.Time `json:"trial_expires_at"`
	TrialDaysLeft      int        `json:"trial_days_left"`
	Active             bool       `json:"active"`
}

// Decision is the outcome of evaluating a request against the policy.
type Decision struct {
	Allowed bool
	Code    string
	Access  *AccessInfo
}

// IsAlwaysAllowed reports whether the path is exempt from gating.
// A prefix matches exactly or as a path segment boundary, so
// "/billing" covers "/billing/checkout" but not "/billingx".
func IsAlwaysAllowed(path string) bool {
	for _, p := range alwaysAllowed {
		if path == p {
			return true
		}
		if p != "/" && strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// TrialExpiry returns when the club's trial ends. When the explicit
// expiry was never written, it derives TrialDays from the start.
func TrialExpiry(club *models.Club) *time.Time {
	if club == nil || club.TrialStartedAt == nil {
		return nil
	}
	if club.TrialExpiresAt != nil {
		return club.TrialExpiresAt
	}
	exp := club.TrialStartedAt.Add(TrialDays * 24 * time.Hour)
	return &exp
}

// TrialStatusAt classifies the club's trial at the given instant.
// The boundary is inclusive: at the exact expiry instant the trial
// is already expired.
func TrialStatusAt(club *models.Club, now time.Time) string {
	if club == nil || club.TrialStartedAt == nil {
		return TrialNever
	}
	exp := TrialExpiry(club)
	if !now.Before(*exp) {
		return TrialExpired
	}
	return TrialActive
}

// IsActiveForApp reports whether the club may use gated features.
// PRO clubs always may, including past_due; FREE clubs only while
// their trial is running.
func IsActiveForApp(club *models.Club, now time.Time) bool {
	if club == nil {
		return false
	}
	if club.Plan == models.PlanPro {
		return true
	}
	return TrialStatusAt(club, now) == TrialActive
}

// Snapshot builds the AccessInfo payload for a club.
func Snapshot(club *models.Club, now time.Time) *AccessInfo {
	info := &AccessInfo{
		Plan:               models.PlanFree,
		SubscriptionStatus: models.SubInactive,
		TrialStatus:        TrialNever,
	}
	if club == nil {
		return info
	}

	info.Plan = club.Plan
	info.SubscriptionStatus = club.SubscriptionStatus
	info.TrialStatus = TrialStatusAt(club, now)
	info.TrialStartedAt = club.TrialStartedAt
	info.TrialExpiresAt = TrialExpiry(club)
	info.Active = IsActiveForApp(club, now)

	if info.TrialStatus == TrialActive {
		left := info.TrialExpiresAt.Sub(now)
		info.TrialDaysLeft = int((left + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
	}
	return info
}

// Evaluate applies the full policy for a request path. member may be
// nil for unauthenticated requests (authentication is enforced
// elsewhere); club is the member's club, nil when unassigned.
func Evaluate(path string, member *models.Member, club *models.Club, now time.Time) Decision {
	if IsAlwaysAllowed(path) {
		return Decision{Allowed: true}
	}

	if member == nil {
		return Decision{Allowed: true}
	}

	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		if auth.IsPrivileged(member) {
			return Decision{Allowed: true}
		}
		return Decision{Code: CodeNotAdmin}
	}

	if auth.IsPrivileged(member) {
		return Decision{Allowed: true}
	}

	if club == nil {
		return Decision{Code: CodeAccessDenied}
	}

	if IsActiveForApp(club, now) {
		return Decision{Allowed: true}
	}

	return Decision{Code: CodeTrialExpired, Access: Snapshot(club, now)}
}
