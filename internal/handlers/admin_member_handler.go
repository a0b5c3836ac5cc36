package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httpresp"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/mailer"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/validators"
)

type AdminMemberHandler struct {
	db     *gorm.DB
	config *config.Config
	mail   *mailer.Mailer
}

func NewAdminMemberHandler(db *gorm.DB, cfg *config.Config, mail *mailer.Mailer) *AdminMemberHandler {
	return &AdminMemberHandler{db: db, config: cfg, mail: mail}
}

// --------- Requests ---------

type AdminMemberCreateRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	MemberSince *time.Time `json:"member_since"`
	Birthday    *time.Time `json:"birthday"`
	IsAdmin     bool       `json:"is_admin"`
	SendInvite  bool       `json:"send_invite"`
}

type AdminMemberUpdateRequest struct {
	FullName    *string    `json:"full_name"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	MemberSince *time.Time `json:"member_since"`
	Birthday    *time.Time `json:"birthday"`
	IsAdmin     *bool      `json:"is_admin"`
}

type AdminMemberActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AdminPasswordResetRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// --------- Helpers ---------

// getScopedMember loads the target, hiding cross-club members behind
// 404 unless the caller is a super admin.
func (h *AdminMemberHandler) getScopedMember(c *gin.Context) (*models.Member, bool) {
	admin := middleware.CurrentMember(c)

	var m models.Member
	if err := h.db.First(&m, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "member_not_found", "member not found")
		return nil, false
	}
	if !admin.IsSuperAdmin {
		if m.ClubID == nil || admin.ClubID == nil || *m.ClubID != *admin.ClubID {
			httperr.NotFound(c, "member_not_found", "member not found")
			return nil, false
		}
	}
	return &m, true
}

// --------- Handlers ---------

func (h *AdminMemberHandler) List(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	q := h.db.Model(&models.Member{})
	if !admin.IsSuperAdmin {
		q = q.Where("club_id = ?", admin.ClubID)
	}

	var members []models.Member
	if err := q.Order("COALESCE(NULLIF(full_name, ''), 'ZZZ'), email").Find(&members).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list members")
		return
	}
	httpresp.List(c, members)
}

// Create adds a member to the admin's club. Without a password a
// random temporary one is generated; send_invite emails a login link.
func (h *AdminMemberHandler) Create(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	var req AdminMemberCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := auth.NormalizeLogin(req.Email)
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "the email domain does not look valid")
		return
	}

	var count int64
	h.db.Model(&models.Member{}).Where("LOWER(email) = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_exists", "email already exists")
		return
	}

	password := req.Password
	if password == "" {
		password = auth.TempPassword()
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		httperr.Internal(c, "hash_failed", "could not hash password")
		return
	}

	role := models.RoleMember
	if req.IsAdmin {
		role = models.RoleAdmin
	}

	m := models.Member{
		ClubID:         admin.ClubID,
		Email:          email,
		HashedPassword: hash,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Address:        req.Address,
		MemberSince:    req.MemberSince,
		Birthday:       req.Birthday,
		IsActive:       true,
		IsAdmin:        req.IsAdmin,
		Role:           role,
	}

	if err := h.db.Create(&m).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create member")
		return
	}

	if req.SendInvite {
		club := middleware.CurrentClub(c)
		clubName, slug := h.config.OrgName, ""
		if club != nil {
			clubName, slug = club.Name, club.Slug
		}
		parts := mailer.Invite(clubName, m.FullName, slug, h.config.AppBaseURL)
		h.mail.SendIfConfigured(mailer.Message{To: m.Email, Subject: parts.Subject, Body: parts.Body})
	}

	c.JSON(http.StatusCreated, m)
}

func (h *AdminMemberHandler) Update(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	var req AdminMemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	m, ok := h.getScopedMember(c)
	if !ok {
		return
	}

	if m.ID == admin.ID && req.IsAdmin != nil && !*req.IsAdmin {
		httperr.BadRequest(c, "cannot_demote_self", "you cannot remove your own admin role")
		return
	}

	if req.FullName != nil {
		m.FullName = *req.FullName
	}
	if req.Phone != nil {
		m.Phone = *req.Phone
	}
	if req.Address != nil {
		m.Address = *req.Address
	}
	if req.MemberSince != nil {
		m.MemberSince = req.MemberSince
	}
	if req.Birthday != nil {
		m.Birthday = req.Birthday
	}
	if req.IsAdmin != nil {
		m.IsAdmin = *req.IsAdmin
		if m.Role != models.RoleOwner {
			if m.IsAdmin {
				m.Role = models.RoleAdmin
			} else {
				m.Role = models.RoleMember
			}
		}
	}

	if err := h.db.Save(m).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update member")
		return
	}
	httpresp.OK(c, m)
}

func (h *AdminMemberHandler) SetActive(c *gin.Context) {
	admin := middleware.CurrentMember(c)

	var req AdminMemberActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	m, ok := h.getScopedMember(c)
	if !ok {
		return
	}

	if m.ID == admin.ID && !*req.IsActive {
		httperr.BadRequest(c, "cannot_deactivate_self", "you cannot deactivate your own account")
		return
	}

	m.IsActive = *req.IsActive
	if err := h.db.Save(m).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update member")
		return
	}
	httpresp.OK(c, m)
}

func (h *AdminMemberHandler) ResetPassword(c *gin.Context) {
	var req AdminPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	m, ok := h.getScopedMember(c)
	if !ok {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "hash_failed", "could not hash password")
		return
	}

	if err := h.db.Model(m).Update("hashed_password", hash).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
