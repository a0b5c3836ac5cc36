package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// inject places a member/club pair on the context the way
// AuthMiddleware would.
func inject(m *models.Member, club *models.Club) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m != nil {
			c.Set(ContextMember, m)
		}
		if club != nil {
			c.Set(ContextClub, club)
		}
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	r := gin.New()
	r.GET("/member/me", AuthMiddleware(nil, cfg), okHandler)

	w := perform(r, http.MethodGet, "/member/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	r := gin.New()
	r.GET("/member/me", AuthMiddleware(nil, cfg), okHandler)

	w := perform(r, http.MethodGet, "/member/me", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_authorization_header")
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	r := gin.New()
	r.GET("/member/me", AuthMiddleware(nil, cfg), okHandler)

	w := perform(r, http.MethodGet, "/member/me", map[string]string{"Authorization": "Bearer not.a.jwt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestTrialGateAllowsPublicPath(t *testing.T) {
	r := gin.New()
	r.Use(TrialGate())
	r.GET("/public/clubs", okHandler)

	w := perform(r, http.MethodGet, "/public/clubs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrialGateDeniesExpiredTrial(t *testing.T) {
	started := time.Now().Add(-30 * 24 * time.Hour)
	club := &models.Club{ID: 1, Plan: models.PlanFree, SubscriptionStatus: models.SubInactive, TrialStartedAt: &started}
	member := &models.Member{ID: 1, ClubID: &club.ID, Role: models.RoleMember, IsActive: true}

	r := gin.New()
	r.Use(inject(member, club), TrialGate())
	r.GET("/member/roster", okHandler)

	w := perform(r, http.MethodGet, "/member/roster", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "TRIAL_EXPIRED")
	assert.Contains(t, w.Body.String(), "trial_status")
}

func TestTrialGateAllowsProPastDue(t *testing.T) {
	club := &models.Club{ID: 1, Plan: models.PlanPro, SubscriptionStatus: models.SubPastDue}
	member := &models.Member{ID: 1, ClubID: &club.ID, Role: models.RoleMember, IsActive: true}

	r := gin.New()
	r.Use(inject(member, club), TrialGate())
	r.GET("/member/roster", okHandler)

	w := perform(r, http.MethodGet, "/member/roster", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrialGateAdminPathNonAdmin(t *testing.T) {
	club := &models.Club{ID: 1, Plan: models.PlanPro}
	member := &models.Member{ID: 1, ClubID: &club.ID, Role: models.RoleMember, IsActive: true}

	r := gin.New()
	r.Use(inject(member, club), TrialGate())
	r.GET("/admin/members", okHandler)

	w := perform(r, http.MethodGet, "/admin/members", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_ADMIN")
}

func TestRequireActiveAccessMatchesGlobalGate(t *testing.T) {
	started := time.Now().Add(-30 * 24 * time.Hour)
	club := &models.Club{ID: 1, Plan: models.PlanFree, TrialStartedAt: &started}
	member := &models.Member{ID: 1, ClubID: &club.ID, Role: models.RoleMember, IsActive: true}

	global := gin.New()
	global.Use(inject(member, club), TrialGate())
	global.GET("/member/roster", okHandler)

	perRoute := gin.New()
	perRoute.Use(inject(member, club))
	perRoute.GET("/member/roster", RequireActiveAccess(), okHandler)

	w1 := perform(global, http.MethodGet, "/member/roster", nil)
	w2 := perform(perRoute, http.MethodGet, "/member/roster", nil)
	assert.Equal(t, w1.Code, w2.Code)
	assert.JSONEq(t, w1.Body.String(), w2.Body.String())
}

func TestRequireOwner(t *testing.T) {
	r := gin.New()
	owner := &models.Member{ID: 1, Role: models.RoleOwner, IsActive: true}
	r.GET("/owner/club", inject(owner, nil), RequireOwner(), okHandler)
	w := perform(r, http.MethodGet, "/owner/club", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	r2 := gin.New()
	admin := &models.Member{ID: 2, Role: models.RoleAdmin, IsActive: true}
	r2.GET("/owner/club", inject(admin, nil), RequireOwner(), okHandler)
	w = perform(r2, http.MethodGet, "/owner/club", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_OWNER")
}

func TestRequireSuperAdmin(t *testing.T) {
	r := gin.New()
	super := &models.Member{ID: 1, Role: models.RoleMember, IsSuperAdmin: true, IsActive: true}
	r.GET("/platform/clubs", inject(super, nil), RequireSuperAdmin(), okHandler)
	w := perform(r, http.MethodGet, "/platform/clubs", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	r2 := gin.New()
	owner := &models.Member{ID: 2, Role: models.RoleOwner, IsActive: true}
	r2.GET("/platform/clubs", inject(owner, nil), RequireSuperAdmin(), okHandler)
	w = perform(r2, http.MethodGet, "/platform/clubs", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePro(t *testing.T) {
	started := time.Now().Add(-time.Hour)
	trialClub := &models.Club{ID: 1, Plan: models.PlanFree, TrialStartedAt: &started}
	member := &models.Member{ID: 1, ClubID: &trialClub.ID, Role: models.RoleMember, IsActive: true}

	// an active trial is not enough for PRO-only features
	r := gin.New()
	r.GET("/reports/hours.csv", inject(member, trialClub), RequirePro(), okHandler)
	w := perform(r, http.MethodGet, "/reports/hours.csv", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PRO_REQUIRED")

	proClub := &models.Club{ID: 2, Plan: models.PlanPro}
	r2 := gin.New()
	r2.GET("/reports/hours.csv", inject(member, proClub), RequirePro(), okHandler)
	w = perform(r2, http.MethodGet, "/reports/hours.csv", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
