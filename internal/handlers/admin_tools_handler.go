package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/mailer"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type AdminToolsHandler struct {
	db     *gorm.DB
	config *config.Config
	mail   *mailer.Mailer
}

func NewAdminToolsHandler(db *gorm.DB, cfg *config.Config, mail *mailer.Mailer) *AdminToolsHandler {
	return &AdminToolsHandler{db: db, config: cfg, mail: mail}
}

// Ping tells the frontend whether admin tools may be shown. Must keep
// working for privileged members of locked clubs.
func (h *AdminToolsHandler) Ping(c *gin.Context) {
	m := middleware.CurrentMember(c)

	role := models.RoleAdmin
	if auth.IsOwner(m) {
		role = models.RoleOwner
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"role":           role,
		"is_admin":       m.IsAdmin,
		"is_super_admin": m.IsSuperAdmin,
	})
}

// TestEmail sends a test message through the configured SMTP account.
// The recipient defaults to the caller.
func (h *AdminToolsHandler) TestEmail(c *gin.Context) {
	m := middleware.CurrentMember(c)

	dest := strings.TrimSpace(c.Query("to_email"))
	if dest == "" {
		dest = m.Email
	}
	if dest == "" {
		httperr.BadRequest(c, "missing_recipient", "no recipient email")
		return
	}

	name := m.FullName
	if name == "" {
		name = m.Email
	}

	parts := mailer.TestEmail(h.config.OrgName, name)
	h.mail.SendIfConfigured(mailer.Message{To: dest, Subject: parts.Subject, Body: parts.Body})

	c.JSON(http.StatusOK, gin.H{
		"ok":            h.config.EmailEnabled && h.config.SMTPHost != "",
		"to":            dest,
		"email_enabled": h.config.EmailEnabled,
	})
}
