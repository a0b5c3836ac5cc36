package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type ClubHandler struct {
	db *gorm.DB
}

func NewClubHandler(db *gorm.DB) *ClubHandler {
	return &ClubHandler{db: db}
}

// --------- Public ---------

func (h *ClubHandler) ListPublic(c *gin.Context) {
	var clubs []models.Club
	if err := h.db.Order("id asc").Find(&clubs).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list clubs")
		return
	}

	out := make([]gin.H, 0, len(clubs))
	for _, cl := range clubs {
		out = append(out, gin.H{"id": cl.ID, "slug": cl.Slug, "name": cl.Name})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(out), "clubs": out})
}

func (h *ClubHandler) GetPublicBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		httperr.BadRequest(c, "missing_slug", "missing club slug")
		return
	}

	var club models.Club
	if err := h.db.Where("slug = ?", slug).First(&club).Error; err != nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"club": gin.H{
			"id":       club.ID,
			"slug":     club.Slug,
			"name":     club.Name,
			"logo_url": club.LogoURL,
			"plan":     club.Plan,
		},
	})
}

// --------- Owner ---------

type OwnerClubUpdateRequest struct {
	Name     *string `json:"name"`
	LogoURL  *string `json:"logo_url"`
	IsActive *bool   `json:"is_active"`
}

func (h *ClubHandler) OwnerUpdateClub(c *gin.Context) {
	club := middleware.CurrentClub(c)
	if club == nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}

	var req OwnerClubUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		club.Name = strings.TrimSpace(*req.Name)
	}
	if req.LogoURL != nil {
		club.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.IsActive != nil {
		club.IsActive = *req.IsActive
	}

	if err := h.db.Save(club).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update club")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"club": gin.H{
			"id":        club.ID,
			"slug":      club.Slug,
			"name":      club.Name,
			"logo_url":  club.LogoURL,
			"is_active": club.IsActive,
		},
	})
}

type OwnerSetAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// OwnerSetMemberAdmin flips a member's admin role. Cross-club targets
// look like missing members on purpose.
func (h *ClubHandler) OwnerSetMemberAdmin(c *gin.Context) {
	owner := middleware.CurrentMember(c)

	var req OwnerSetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var target models.Member
	if err := h.db.First(&target, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "member_not_found", "member not found")
		return
	}

	if target.ClubID == nil || owner.ClubID == nil || *target.ClubID != *owner.ClubID {
		httperr.NotFound(c, "member_not_found", "member not found")
		return
	}

	if target.ID == owner.ID && !*req.IsAdmin {
		httperr.BadRequest(c, "cannot_demote_self", "owner cannot remove their own admin flag")
		return
	}

	target.IsAdmin = *req.IsAdmin
	if target.Role != models.RoleOwner {
		if target.IsAdmin {
			target.Role = models.RoleAdmin
		} else {
			target.Role = models.RoleMember
		}
	}

	if err := h.db.Save(&target).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update member")
		return
	}

	c.JSON(http.StatusOK, target)
}

type OwnerTransferRequest struct {
	NewOwnerMemberID uint `json:"new_owner_member_id" binding:"required"`
}

// OwnerTransfer hands the OWNER role to another member of the same
// club; the previous owner stays on as an admin.
func (h *ClubHandler) OwnerTransfer(c *gin.Context) {
	owner := middleware.CurrentMember(c)

	var req OwnerTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.NewOwnerMemberID == owner.ID {
		httperr.BadRequest(c, "already_owner", "you are already the owner")
		return
	}

	var newOwner models.Member
	if err := h.db.First(&newOwner, req.NewOwnerMemberID).Error; err != nil {
		httperr.NotFound(c, "member_not_found", "member not found")
		return
	}

	if newOwner.ClubID == nil || owner.ClubID == nil || *newOwner.ClubID != *owner.ClubID {
		httperr.NotFound(c, "member_not_found", "member not found")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&newOwner).Updates(map[string]interface{}{
			"role":     models.RoleOwner,
			"is_admin": true,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Member{}).
			Where("id = ?", owner.ID).
			Updates(map[string]interface{}{
				"role":     models.RoleAdmin,
				"is_admin": true,
			}).Error
	})
	if err != nil {
		httperr.Internal(c, "transfer_failed", "could not transfer ownership")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                  true,
		"new_owner_member_id": newOwner.ID,
		"club_id":             *owner.ClubID,
	})
}
