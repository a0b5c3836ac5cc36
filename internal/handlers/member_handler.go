package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httpresp"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type MemberHandler struct {
	db *gorm.DB
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{db: db}
}

// --------- Requests ---------

type MemberUpdateMeRequest struct {
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	MemberSince *time.Time `json:"member_since"`
	Birthday    *time.Time `json:"birthday"`
}

// --------- Profile ---------

func (h *MemberHandler) GetMe(c *gin.Context) {
	httpresp.OK(c, middleware.CurrentMember(c))
}

func (h *MemberHandler) UpdateMe(c *gin.Context) {
	member := middleware.CurrentMember(c)

	var req MemberUpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	member.FullName = req.FullName
	member.Phone = req.Phone
	member.Address = req.Address
	member.MemberSince = req.MemberSince
	member.Birthday = req.Birthday

	if err := h.db.Save(member).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update profile")
		return
	}

	httpresp.OK(c, member)
}

// Roster lists active members of the caller's club, named first.
func (h *MemberHandler) Roster(c *gin.Context) {
	member := middleware.CurrentMember(c)

	var members []models.Member
	err := h.db.
		Where("club_id = ? AND is_active = ?", member.ClubID, true).
		Order("COALESCE(NULLIF(full_name, ''), 'ZZZ'), email").
		Find(&members).Error
	if err != nil {
		httperr.Internal(c, "list_failed", "could not list members")
		return
	}

	httpresp.List(c, members)
}

// --------- Requests (triage) ---------

func (h *MemberHandler) ListRequests(c *gin.Context) {
	member := middleware.CurrentMember(c)

	q := h.db.Where("club_id = ?", member.ClubID)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var requests []models.Request
	if err := q.Order("created_at desc").Find(&requests).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list requests")
		return
	}

	httpresp.List(c, requests)
}

// RequestsSummary stays reachable when the club is locked; the
// dashboard uses it to render the paywall screen.
func (h *MemberHandler) RequestsSummary(c *gin.Context) {
	member := middleware.CurrentMember(c)

	var total int64
	h.db.Model(&models.Request{}).Where("club_id = ?", member.ClubID).Count(&total)

	type pair struct {
		Key   string
		Count int64
	}

	byStatus := map[string]int64{}
	var statusRows []pair
	h.db.Model(&models.Request{}).
		Select("status as key, count(id) as count").
		Where("club_id = ?", member.ClubID).
		Group("status").
		Scan(&statusRows)
	for _, row := range statusRows {
		byStatus[row.Key] = row.Count
	}

	byCategory := map[string]int64{}
	var categoryRows []pair
	h.db.Model(&models.Request{}).
		Select("category as key, count(id) as count").
		Where("club_id = ?", member.ClubID).
		Group("category").
		Scan(&categoryRows)
	for _, row := range categoryRows {
		byCategory[row.Key] = row.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"by_status":   byStatus,
		"by_category": byCategory,
	})
}
