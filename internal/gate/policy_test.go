package gate

import (
	"testing"
	"time"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clubWithTrial(started time.Time) *models.Club {
	return &models.Club{
		ID:                 1,
		Plan:               models.PlanFree,
		SubscriptionStatus: models.SubInactive,
		TrialStartedAt:     &started,
	}
}

func memberIn(club *models.Club) *models.Member {
	m := &models.Member{ID: 10, Role: models.RoleMember, IsActive: true}
	if club != nil {
		m.ClubID = &club.ID
	}
	return m
}

func TestIsAlwaysAllowed(t *testing.T) {
	allowed := []string{
		"/", "/health", "/version",
		"/public", "/public/clubs", "/public/club/lions",
		"/billing", "/billing/webhook", "/billing/checkout",
		"/member/login",
		"/admin/bootstrap",
		"/static/app.css",
	}
	for _, p := range allowed {
		assert.True(t, IsAlwaysAllowed(p), "path %q", p)
	}

	denied := []string{
		"/member/me", "/billingx", "/publicity",
		"/admin", "/admin/members", "/healthz",
		"/member/loginx", "/reports/hours",
	}
	for _, p := range denied {
		assert.False(t, IsAlwaysAllowed(p), "path %q", p)
	}
}

func TestTrialStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, TrialNever, TrialStatusAt(nil, now))
	assert.Equal(t, TrialNever, TrialStatusAt(&models.Club{}, now))

	fresh := clubWithTrial(now.Add(-time.Hour))
	assert.Equal(t, TrialActive, TrialStatusAt(fresh, now))

	old := clubWithTrial(now.Add(-8 * 24 * time.Hour))
	assert.Equal(t, TrialExpired, TrialStatusAt(old, now))
}

func TestTrialExpiryDerivedFromStart(t *testing.T) {
	started := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := clubWithTrial(started)

	exp := TrialExpiry(c)
	require.NotNil(t, exp)
	assert.Equal(t, started.Add(TrialDays*24*time.Hour), *exp)
}

func TestTrialBoundaryIsInclusive(t *testing.T) {
	started := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := clubWithTrial(started)
	exp := started.Add(TrialDays * 24 * time.Hour)

	assert.Equal(t, TrialActive, TrialStatusAt(c, exp.Add(-time.Second)))
	assert.Equal(t, TrialExpired, TrialStatusAt(c, exp))
	assert.Equal(t, TrialExpired, TrialStatusAt(c, exp.Add(time.Second)))
}

func TestExplicitExpiryWins(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	started := now.Add(-30 * 24 * time.Hour)
	explicit := now.Add(24 * time.Hour)

	c := clubWithTrial(started)
	c.TrialExpiresAt = &explicit

	assert.Equal(t, TrialActive, TrialStatusAt(c, now))
}

func TestIsActiveForApp(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsActiveForApp(nil, now))

	pro := &models.Club{Plan: models.PlanPro, SubscriptionStatus: models.SubActive}
	assert.True(t, IsActiveForApp(pro, now))

	// PRO stays usable while payment is being retried.
	pastDue := &models.Club{Plan: models.PlanPro, SubscriptionStatus: models.SubPastDue}
	assert.True(t, IsActiveForApp(pastDue, now))

	assert.True(t, IsActiveForApp(clubWithTrial(now.Add(-time.Hour)), now))
	assert.False(t, IsActiveForApp(clubWithTrial(now.Add(-10*24*time.Hour)), now))
	assert.False(t, IsActiveForApp(&models.Club{Plan: models.PlanFree}, now))
}

func TestEvaluateAlwaysAllowedSkipsEverything(t *testing.T) {
	now := time.Now()
	expired := clubWithTrial(now.Add(-30 * 24 * time.Hour))

	d := Evaluate("/billing/checkout", memberIn(expired), expired, now)
	assert.True(t, d.Allowed)

	d = Evaluate("/member/login", nil, nil, now)
	assert.True(t, d.Allowed)
}

func TestEvaluateUnauthenticatedPassesThrough(t *testing.T) {
	d := Evaluate("/member/me", nil, nil, time.Now())
	assert.True(t, d.Allowed)
}

func TestEvaluateAdminPaths(t *testing.T) {
	now := time.Now()
	club := clubWithTrial(now.Add(-30 * 24 * time.Hour))

	plain := memberIn(club)
	d := Evaluate("/admin/members", plain, club, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, CodeNotAdmin, d.Code)

	d = Evaluate("/admin", plain, club, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, CodeNotAdmin, d.Code)

	admin := memberIn(club)
	admin.Role = models.RoleAdmin
	d = Evaluate("/admin/members", admin, club, now)
	assert.True(t, d.Allowed)
}

func TestEvaluatePrivilegedBypassExpiredTrial(t *testing.T) {
	now := time.Now()
	club := clubWithTrial(now.Add(-30 * 24 * time.Hour))

	owner := memberIn(club)
	owner.Role = models.RoleOwner
	assert.True(t, Evaluate("/member/roster", owner, club, now).Allowed)

	super := memberIn(club)
	super.IsSuperAdmin = true
	assert.True(t, Evaluate("/member/roster", super, club, now).Allowed)

	legacy := memberIn(club)
	legacy.IsAdmin = true
	assert.True(t, Evaluate("/member/roster", legacy, club, now).Allowed)
}

func TestEvaluateMissingClub(t *testing.T) {
	d := Evaluate("/member/roster", memberIn(nil), nil, time.Now())
	assert.False(t, d.Allowed)
	assert.Equal(t, CodeAccessDenied, d.Code)
	assert.Nil(t, d.Access)
}

func TestEvaluateExpiredTrialPayload(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	club := clubWithTrial(now.Add(-10 * 24 * time.Hour))

	d := Evaluate("/member/roster", memberIn(club), club, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, CodeTrialExpired, d.Code)
	require.NotNil(t, d.Access)
	assert.Equal(t, models.PlanFree, d.Access.Plan)
	assert.Equal(t, TrialExpired, d.Access.TrialStatus)
	assert.False(t, d.Access.Active)
}

func TestEvaluateNeverStartedTrialDenied(t *testing.T) {
	now := time.Now()
	club := &models.Club{ID: 1, Plan: models.PlanFree, SubscriptionStatus: models.SubInactive}

	d := Evaluate("/member/roster", memberIn(club), club, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, CodeTrialExpired, d.Code)
	require.NotNil(t, d.Access)
	assert.Equal(t, TrialNever, d.Access.TrialStatus)
}

func TestEvaluateActiveStatesAllowed(t *testing.T) {
	now := time.Now()

	trial := clubWithTrial(now.Add(-time.Hour))
	assert.True(t, Evaluate("/member/roster", memberIn(trial), trial, now).Allowed)

	pro := &models.Club{ID: 2, Plan: models.PlanPro, SubscriptionStatus: models.SubActive}
	assert.True(t, Evaluate("/member/roster", memberIn(pro), pro, now).Allowed)
}

func TestSnapshotDaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	c := clubWithTrial(now.Add(-24 * time.Hour))
	info := Snapshot(c, now)
	assert.Equal(t, TrialActive, info.TrialStatus)
	assert.Equal(t, 6, info.TrialDaysLeft)
	assert.True(t, info.Active)

	almostOver := clubWithTrial(now.Add(-TrialDays*24*time.Hour + time.Minute))
	info = Snapshot(almostOver, now)
	assert.Equal(t, 1, info.TrialDaysLeft)

	expired := clubWithTrial(now.Add(-30 * 24 * time.Hour))
	info = Snapshot(expired, now)
	assert.Equal(t, 0, info.TrialDaysLeft)
	assert.False(t, info.Active)

	info = Snapshot(nil, now)
	assert.Equal(t, models.PlanFree, info.Plan)
	assert.Equal(t, TrialNever, info.TrialStatus)
}
