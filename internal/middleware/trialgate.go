package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/gate"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

// writeDecision translates a gate denial into the coded 403 body.
func writeDecision(c *gin.Context, d gate.Decision) {
	switch d.Code {
	case gate.CodeNotAdmin:
		httperr.Forbidden(c, gate.CodeNotAdmin, "admin access required")
	case gate.CodeAccessDenied:
		httperr.Forbidden(c, gate.CodeAccessDenied, "no club assigned to this account")
	default:
		extra := map[string]any{}
		if d.Access != nil {
			extra["plan"] = d.Access.Plan
			extra["subscription_status"] = d.Access.SubscriptionStatus
			extra["trial"] = d.Access
		}
		httperr.ForbiddenWith(c, gate.CodeTrialExpired,
			"free trial has ended; subscribe to continue", extra)
	}
	c.Abort()
}

// TrialGate enforces the subscription/trial policy on every request.
// It runs after AuthMiddleware on authenticated groups but is mounted
// globally, so it also sees public paths and lets them through.
func TrialGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := gate.Evaluate(c.Request.URL.Path, CurrentMember(c), CurrentClub(c), time.Now())
		if !d.Allowed {
			writeDecision(c, d)
			return
		}
		c.Next()
	}
}

// RequireActiveAccess is the per-route guard for gated features. It
// applies the same policy as TrialGate, keyed on the route's own path.
func RequireActiveAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := gate.Evaluate(c.Request.URL.Path, CurrentMember(c), CurrentClub(c), time.Now())
		if !d.Allowed {
			writeDecision(c, d)
			return
		}
		c.Next()
	}
}

// RequireAdmin allows club admins, owners and super admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := CurrentMember(c)
		if m == nil || !(m.IsSuperAdmin || auth.IsAdminRole(m)) {
			httperr.Forbidden(c, gate.CodeNotAdmin, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOwner allows the club owner and super admins.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := CurrentMember(c)
		if m == nil || !(m.IsSuperAdmin || auth.IsOwner(m)) {
			httperr.Forbidden(c, "NOT_OWNER", "owner access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin allows platform operators only.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := CurrentMember(c)
		if m == nil || !m.IsSuperAdmin {
			httperr.Forbidden(c, "NOT_SUPER_ADMIN", "platform admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePro gates features sold only on the paid plan. Unlike the
// trial gate, an active trial is not enough here.
func RequirePro() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := CurrentMember(c)
		if m != nil && m.IsSuperAdmin {
			c.Next()
			return
		}
		club := CurrentClub(c)
		if club == nil || club.Plan != models.PlanPro {
			httperr.Forbidden(c, "PRO_REQUIRED", "this feature requires the PRO plan")
			c.Abort()
			return
		}
		c.Next()
	}
}
