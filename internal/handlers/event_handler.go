package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httpresp"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/mailer"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type EventHandler struct {
	db     *gorm.DB
	config *config.Config
	mail   *mailer.Mailer
}

func NewEventHandler(db *gorm.DB, cfg *config.Config, mail *mailer.Mailer) *EventHandler {
	return &EventHandler{db: db, config: cfg, mail: mail}
}

// --------- Requests ---------

type EventUpsertRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Location    string     `json:"location" binding:"required,max=200"`
	Description string     `json:"description"`
	StartAt     time.Time  `json:"start_at" binding:"required"`
	EndAt       *time.Time `json:"end_at"`
	IsPublic    *bool      `json:"is_public"`
}

func (r *EventUpsertRequest) validate() string {
	if r.EndAt != nil && !r.EndAt.After(r.StartAt) {
		return "end_at must be after start_at"
	}
	return ""
}

// --------- Member / public listings ---------

// List returns the club's events; upcoming only unless include_past.
// Reachable even when the club is locked.
func (h *EventHandler) List(c *gin.Context) {
	member := middleware.CurrentMember(c)

	q := h.db.Where("club_id = ?", member.ClubID)
	if c.Query("include_past") != "true" {
		q = q.Where("start_at >= ?", time.Now().UTC())
	}

	var events []models.Event
	if err := q.Order("start_at asc").Find(&events).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list events")
		return
	}
	httpresp.List(c, events)
}

// ListPublic serves is_public events without auth, optionally scoped
// by ?club=<slug>.
func (h *EventHandler) ListPublic(c *gin.Context) {
	q := h.db.Where("is_public = ?", true)

	if slug := strings.TrimSpace(c.Query("club")); slug != "" {
		var club models.Club
		if err := h.db.Where("slug = ?", slug).First(&club).Error; err != nil {
			httperr.NotFound(c, "club_not_found", "club not found")
			return
		}
		q = q.Where("club_id = ?", club.ID)
	}

	if c.Query("include_past") != "true" {
		q = q.Where("start_at >= ?", time.Now().UTC())
	}

	var events []models.Event
	if err := q.Order("start_at asc").Find(&events).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list events")
		return
	}
	httpresp.List(c, events)
}

// --------- Admin CRUD ---------

func (h *EventHandler) Create(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	var req EventUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		httperr.BadRequest(c, "invalid_request", msg)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ev := models.Event{
		ClubID:            admin.ClubID,
		Title:             strings.TrimSpace(req.Title),
		Location:          strings.TrimSpace(req.Location),
		Description:       strings.TrimSpace(req.Description),
		StartAt:           req.StartAt,
		EndAt:             req.EndAt,
		IsPublic:          isPublic,
		CreatedByMemberID: &admin.ID,
	}

	if err := h.db.Create(&ev).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create event")
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) getClubEvent(c *gin.Context) (*models.Event, bool) {
	admin := middleware.CurrentMember(c)

	var ev models.Event
	if err := h.db.First(&ev, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "event_not_found", "event not found")
		return nil, false
	}
	if ev.ClubID == nil || admin.ClubID == nil || *ev.ClubID != *admin.ClubID {
		httperr.NotFound(c, "event_not_found", "event not found")
		return nil, false
	}
	return &ev, true
}

func (h *EventHandler) Update(c *gin.Context) {
	var req EventUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		httperr.BadRequest(c, "invalid_request", msg)
		return
	}

	ev, ok := h.getClubEvent(c)
	if !ok {
		return
	}

	ev.Title = strings.TrimSpace(req.Title)
	ev.Location = strings.TrimSpace(req.Location)
	ev.Description = strings.TrimSpace(req.Description)
	ev.StartAt = req.StartAt
	ev.EndAt = req.EndAt
	if req.IsPublic != nil {
		ev.IsPublic = *req.IsPublic
	}

	if err := h.db.Save(ev).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update event")
		return
	}
	httpresp.OK(c, ev)
}

func (h *EventHandler) Delete(c *gin.Context) {
	ev, ok := h.getClubEvent(c)
	if !ok {
		return
	}

	if err := h.db.Delete(ev).Error; err != nil {
		httperr.Internal(c, "delete_failed", "could not delete event")
		return
	}
	c.Status(http.StatusNoContent)
}

// --------- Invite / reminder ---------

// Invite emails the event schedule to every active member of the
// club. Queueing counts as sent; delivery is best-effort.
func (h *EventHandler) Invite(c *gin.Context) {
	ev, ok := h.getClubEvent(c)
	if !ok {
		return
	}

	var members []models.Member
	if err := h.db.
		Where("club_id = ? AND is_active = ?", ev.ClubID, true).
		Find(&members).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list members")
		return
	}

	parts := mailer.EventReminder(h.config.OrgName, ev)

	sent, skipped := 0, 0
	for _, m := range members {
		email := strings.TrimSpace(m.Email)
		if email == "" {
			skipped++
			continue
		}
		h.mail.SendIfConfigured(mailer.Message{To: email, Subject: parts.Subject, Body: parts.Body})
		sent++
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"event_id": ev.ID,
		"sent":     sent,
		"skipped":  skipped,
	})
}
