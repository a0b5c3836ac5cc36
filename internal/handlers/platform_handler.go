package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type PlatformHandler struct {
	db *gorm.DB
}

func NewPlatformHandler(db *gorm.DB) *PlatformHandler {
	return &PlatformHandler{db: db}
}

// --------- Requests ---------

type OnboardClubRequest struct {
	ClubName string `json:"club_name" binding:"required"`
	ClubSlug string `json:"club_slug"`
	LogoURL  string `json:"logo_url"`

	OwnerEmail    string `json:"owner_email" binding:"required,email"`
	OwnerFullName string `json:"owner_full_name"`
	TempPassword  string `json:"temp_password" binding:"omitempty,min=8"`
}

// Slugify lowercases and collapses non-alphanumerics into dashes.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	prevDash := false
	for _, ch := range s {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9'):
			b.WriteRune(ch)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Onboard creates a club and its first OWNER in one transaction and
// returns the temporary credentials.
func (h *PlatformHandler) Onboard(c *gin.Context) {
	var req OnboardClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	slug := Slugify(req.ClubSlug)
	if slug == "" {
		slug = Slugify(req.ClubName)
	}
	if slug == "" {
		httperr.BadRequest(c, "invalid_slug", "unable to derive club slug")
		return
	}

	var count int64
	h.db.Model(&models.Club{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_exists", "club slug already exists")
		return
	}

	ownerEmail := auth.NormalizeLogin(req.OwnerEmail)
	h.db.Model(&models.Member{}).Where("LOWER(email) = ?", ownerEmail).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_exists", "owner email already exists")
		return
	}

	password := req.TempPassword
	if password == "" {
		password = auth.TempPassword()
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		httperr.Internal(c, "hash_failed", "could not hash password")
		return
	}

	fullName := strings.TrimSpace(req.OwnerFullName)
	if fullName == "" {
		fullName = "Club Owner"
	}

	club := models.Club{
		Slug:     slug,
		Name:     strings.TrimSpace(req.ClubName),
		LogoURL:  strings.TrimSpace(req.LogoURL),
		IsActive: true,
	}
	owner := models.Member{
		Email:          ownerEmail,
		HashedPassword: hash,
		FullName:       fullName,
		IsActive:       true,
		IsAdmin:        true,
		Role:           models.RoleOwner,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&club).Error; err != nil {
			return err
		}
		owner.ClubID = &club.ID
		return tx.Create(&owner).Error
	})
	if err != nil {
		httperr.Internal(c, "onboard_failed", "could not onboard club")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok": true,
		"club": gin.H{
			"id":        club.ID,
			"slug":      club.Slug,
			"name":      club.Name,
			"logo_url":  club.LogoURL,
			"is_active": club.IsActive,
		},
		"owner": gin.H{
			"id":        owner.ID,
			"email":     owner.Email,
			"full_name": owner.FullName,
			"role":      owner.Role,
		},
		"temp_password":      password,
		"suggested_login":    "/static/index.html",
		"public_form_info":   "/public/club/" + club.Slug,
		"public_form_submit": "/public/requests?club=" + club.Slug,
	})
}
