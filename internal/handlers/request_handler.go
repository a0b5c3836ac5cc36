package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/audit"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httpresp"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/mailer"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/validators"
)

type RequestHandler struct {
	db     *gorm.DB
	config *config.Config
	mail   *mailer.Mailer
	audit  *audit.Dispatcher
}

func NewRequestHandler(db *gorm.DB, cfg *config.Config, mail *mailer.Mailer, dispatcher *audit.Dispatcher) *RequestHandler {
	return &RequestHandler{db: db, config: cfg, mail: mail, audit: dispatcher}
}

// --------- Requests ---------

type PublicRequestCreate struct {
	Category         string `json:"category" binding:"required"`
	RequesterName    string `json:"requester_name" binding:"required"`
	RequesterPhone   string `json:"requester_phone"`
	RequesterEmail   string `json:"requester_email"`
	RequesterAddress string `json:"requester_address"`
	Description      string `json:"description" binding:"required"`
}

type RequestReviewIn struct {
	Status       string `json:"status" binding:"required,oneof=APPROVED DENIED"`
	DecisionNote string `json:"decision_note"`
}

type RequestDecisionIn struct {
	Status       string `json:"status" binding:"required,oneof=APPROVED DENIED"`
	DecisionNote string `json:"decision_note"`
}

type RequestStatusIn struct {
	Status             string  `json:"status" binding:"required,oneof=PENDING IN_PROGRESS CLOSED APPROVED DENIED"`
	AssignedToMemberID *uint   `json:"assigned_to_member_id"`
	DecisionNote       *string `json:"decision_note"`
}

type RequestNoteIn struct {
	Note string `json:"note" binding:"required"`
}

// --------- Public intake ---------

// CreatePublic takes a service request from the public intake form.
// ?club=<slug> binds the request to a tenant; with a single club in
// the database it falls back to that club.
func (h *RequestHandler) CreatePublic(c *gin.Context) {
	var req PublicRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if email := strings.TrimSpace(req.RequesterEmail); email != "" {
		if !validators.IsEmailDomainValid(email) {
			httperr.BadRequest(c, "invalid_email_domain", "the requester email domain does not look valid")
			return
		}
	}

	club, err := h.resolveClub(c.Query("club"))
	if err != nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}

	r := models.Request{
		ClubID:           &club.ID,
		Category:         strings.TrimSpace(req.Category),
		Status:           models.RequestPending,
		RequesterName:    strings.TrimSpace(req.RequesterName),
		RequesterPhone:   strings.TrimSpace(req.RequesterPhone),
		RequesterEmail:   strings.TrimSpace(req.RequesterEmail),
		RequesterAddress: strings.TrimSpace(req.RequesterAddress),
		Description:      strings.TrimSpace(req.Description),
	}

	if err := h.db.Create(&r).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create request")
		return
	}

	if r.RequesterEmail != "" {
		parts := mailer.RequestReceived(h.config.OrgName, &r, h.config.AppBaseURL)
		h.mail.SendIfConfigured(mailer.Message{To: r.RequesterEmail, Subject: parts.Subject, Body: parts.Body})
	}
	if h.config.AdminNotifyEmail != "" {
		parts := mailer.AdminNewRequest(h.config.OrgName, club.Slug, &r, h.config.AppBaseURL)
		h.mail.SendIfConfigured(mailer.Message{To: h.config.AdminNotifyEmail, Subject: parts.Subject, Body: parts.Body})
	}

	c.JSON(http.StatusCreated, r)
}

func (h *RequestHandler) resolveClub(slug string) (*models.Club, error) {
	slug = strings.TrimSpace(slug)

	var club models.Club
	if slug != "" {
		if err := h.db.Where("slug = ?", slug).First(&club).Error; err != nil {
			return nil, err
		}
		return &club, nil
	}

	var count int64
	h.db.Model(&models.Club{}).Count(&count)
	if count != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	if err := h.db.First(&club).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// --------- Member review ---------

// Review lets any member act on a PENDING request of their club.
func (h *RequestHandler) Review(c *gin.Context) {
	member := middleware.CurrentMember(c)

	var req RequestReviewIn
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var r models.Request
	if err := h.db.First(&r, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "request not found")
		return
	}
	if r.ClubID == nil || member.ClubID == nil || *r.ClubID != *member.ClubID {
		httperr.NotFound(c, "request_not_found", "request not found")
		return
	}

	if r.Status != models.RequestPending {
		httperr.BadRequest(c, "already_reviewed", "request already reviewed")
		return
	}

	now := time.Now().UTC()
	r.Status = req.Status
	r.DecisionNote = req.DecisionNote
	r.ReviewedByMemberID = &member.ID
	r.ReviewedAt = &now

	if err := h.db.Save(&r).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update request")
		return
	}

	h.audit.Dispatch(audit.Event{
		RequestID: r.ID,
		ActorID:   member.ID,
		Action:    "review",
		Detail:    gin.H{"status": r.Status},
	})

	h.notifyDecision(&r)
	httpresp.OK(c, r)
}

func (h *RequestHandler) notifyDecision(r *models.Request) {
	if r.RequesterEmail == "" {
		return
	}
	if r.Status != models.RequestApproved && r.Status != models.RequestDenied {
		return
	}
	parts := mailer.RequesterDecision(h.config.OrgName, r, r.Status, h.config.AppBaseURL)
	h.mail.SendIfConfigured(mailer.Message{To: r.RequesterEmail, Subject: parts.Subject, Body: parts.Body})
}

// --------- Admin triage ---------

func (h *RequestHandler) adminScope(c *gin.Context) *gorm.DB {
	admin := middleware.CurrentMember(c)
	q := h.db.Model(&models.Request{})
	if !admin.IsSuperAdmin {
		q = q.Where("club_id = ?", admin.ClubID)
	}
	return q
}

func (h *RequestHandler) filteredQuery(c *gin.Context, defaultLimit, maxLimit int) *gorm.DB {
	q := h.adminScope(c)

	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"requester_name ILIKE ? OR requester_email ILIKE ? OR description ILIKE ?",
			like, like, like,
		)
	}

	limit := defaultLimit
	if v := c.Query("limit"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n >= 1 && n <= maxLimit {
			limit = n
		}
	}
	return q.Order("id desc").Limit(limit)
}

func (h *RequestHandler) AdminList(c *gin.Context) {
	var requests []models.Request
	if err := h.filteredQuery(c, 300, 1000).Preload("ReviewedBy").Find(&requests).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list requests")
		return
	}
	httpresp.List(c, requests)
}

func (h *RequestHandler) adminGetRequest(c *gin.Context) (*models.Request, bool) {
	admin := middleware.CurrentMember(c)

	var r models.Request
	if err := h.db.First(&r, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "request not found")
		return nil, false
	}
	if !admin.IsSuperAdmin {
		if r.ClubID == nil || admin.ClubID == nil || *r.ClubID != *admin.ClubID {
			httperr.NotFound(c, "request_not_found", "request not found")
			return nil, false
		}
	}
	return &r, true
}

// Decision approves or denies a request and emails the requester.
func (h *RequestHandler) Decision(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	var req RequestDecisionIn
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	r, ok := h.adminGetRequest(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	r.Status = req.Status
	r.DecisionNote = req.DecisionNote
	r.ReviewedByMemberID = &admin.ID
	r.ReviewedAt = &now

	if err := h.db.Save(r).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update request")
		return
	}

	h.audit.Dispatch(audit.Event{
		RequestID: r.ID,
		ActorID:   admin.ID,
		Action:    "decision",
		Detail:    gin.H{"status": r.Status},
	})

	if r.RequesterEmail != "" {
		parts := mailer.RequesterStatus(h.config.OrgName, r)
		h.mail.SendIfConfigured(mailer.Message{To: r.RequesterEmail, Subject: parts.Subject, Body: parts.Body})
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UpdateStatus changes status and assignment in one shot; assigning a
// member sends them the briefing email, CLOSED stamps closed_at.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	var req RequestStatusIn
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	r, ok := h.adminGetRequest(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	previousAssignee := r.AssignedToMemberID

	r.Status = req.Status
	r.AssignedToMemberID = req.AssignedToMemberID
	if req.AssignedToMemberID != nil {
		r.AssignedAt = &now
	} else {
		r.AssignedAt = nil
	}
	if req.DecisionNote != nil {
		r.DecisionNote = *req.DecisionNote
	}
	if req.Status == models.RequestClosed {
		r.ClosedAt = &now
	} else {
		r.ClosedAt = nil
	}

	if err := h.db.Save(r).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update request")
		return
	}

	h.audit.Dispatch(audit.Event{
		RequestID: r.ID,
		ActorID:   admin.ID,
		Action:    "status_change",
		Detail:    gin.H{"status": r.Status, "assigned_to_member_id": r.AssignedToMemberID},
	})

	newlyAssigned := r.AssignedToMemberID != nil &&
		(previousAssignee == nil || *previousAssignee != *r.AssignedToMemberID)
	if newlyAssigned {
		h.notifyAssignee(admin, r)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *RequestHandler) notifyAssignee(admin *models.Member, r *models.Request) {
	var assignee models.Member
	if err := h.db.First(&assignee, *r.AssignedToMemberID).Error; err != nil || assignee.Email == "" {
		return
	}

	var notes []models.RequestNote
	h.db.Where("request_id = ?", r.ID).Order("created_at desc").Limit(10).Find(&notes)

	var b strings.Builder
	for _, n := range notes {
		fmt.Fprintf(&b, "- %s\n", n.Note)
	}

	assignedBy := admin.FullName
	if assignedBy == "" {
		assignedBy = admin.Email
	}

	parts := mailer.AssignmentNotice(h.config.OrgName, r, assignedBy, b.String(), h.config.AppBaseURL)
	h.mail.SendIfConfigured(mailer.Message{To: assignee.Email, Subject: parts.Subject, Body: parts.Body})
}

// --------- Notes & activity log ---------

func (h *RequestHandler) AddNote(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	var req RequestNoteIn
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	r, ok := h.adminGetRequest(c)
	if !ok {
		return
	}

	note := models.RequestNote{
		RequestID: r.ID,
		AuthorID:  admin.ID,
		Note:      strings.TrimSpace(req.Note),
	}
	if err := h.db.Create(&note).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not add note")
		return
	}

	h.audit.Dispatch(audit.Event{
		RequestID: r.ID,
		ActorID:   admin.ID,
		Action:    "note_added",
	})

	c.JSON(http.StatusCreated, note)
}

func (h *RequestHandler) ListNotes(c *gin.Context) {
	r, ok := h.adminGetRequest(c)
	if !ok {
		return
	}

	var notes []models.RequestNote
	if err := h.db.Where("request_id = ?", r.ID).Order("created_at desc").Find(&notes).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list notes")
		return
	}
	httpresp.List(c, notes)
}

func (h *RequestHandler) ListLogs(c *gin.Context) {
	r, ok := h.adminGetRequest(c)
	if !ok {
		return
	}

	var logs []models.RequestLog
	if err := h.db.Where("request_id = ?", r.ID).Order("created_at desc").Find(&logs).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list activity")
		return
	}
	httpresp.List(c, logs)
}

// --------- CSV export ---------

func (h *RequestHandler) ExportCSV(c *gin.Context) {
	var requests []models.Request
	if err := h.filteredQuery(c, 2000, 10000).Find(&requests).Error; err != nil {
		httperr.Internal(c, "export_failed", "could not export requests")
		return
	}

	filename := fmt.Sprintf("requests_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"id", "category", "status",
		"requester_name", "requester_email", "requester_phone", "requester_address",
		"description", "created_at",
		"assigned_to_member_id", "assigned_at",
		"reviewed_by_member_id", "reviewed_at", "decision_note",
	})

	oneLine := strings.NewReplacer("\n", " ", "\r", " ")
	for _, r := range requests {
		_ = w.Write([]string{
			fmt.Sprint(r.ID),
			r.Category,
			r.Status,
			r.RequesterName,
			r.RequesterEmail,
			r.RequesterPhone,
			r.RequesterAddress,
			strings.TrimSpace(oneLine.Replace(r.Description)),
			r.CreatedAt.UTC().Format(time.RFC3339),
			uintPtrString(r.AssignedToMemberID),
			timePtrString(r.AssignedAt),
			uintPtrString(r.ReviewedByMemberID),
			timePtrString(r.ReviewedAt),
			strings.TrimSpace(oneLine.Replace(r.DecisionNote)),
		})
	}
	w.Flush()
}

func uintPtrString(v *uint) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func timePtrString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
