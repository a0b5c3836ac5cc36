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

type ServiceHourHandler struct {
	db *gorm.DB
}

func NewServiceHourHandler(db *gorm.DB) *ServiceHourHandler {
	return &ServiceHourHandler{db: db}
}

// --------- Requests ---------

type ServiceHourCreateRequest struct {
	ServiceDate time.Time `json:"service_date" binding:"required"`
	Hours       float64   `json:"hours" binding:"required,gt=0"`
	Activity    string    `json:"activity" binding:"required"`
	Notes       string    `json:"notes"`
}

type ServiceHourUpdateRequest struct {
	ServiceDate *time.Time `json:"service_date"`
	Hours       *float64   `json:"hours"`
	Activity    *string    `json:"activity"`
	Notes       *string    `json:"notes"`
}

// --------- Handlers ---------

func (h *ServiceHourHandler) Create(c *gin.Context) {
	member := middleware.CurrentMember(c)

	var req ServiceHourCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry := models.ServiceHour{
		ClubID:      member.ClubID,
		MemberID:    member.ID,
		ServiceDate: req.ServiceDate,
		Hours:       req.Hours,
		Activity:    req.Activity,
		Notes:       req.Notes,
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not log service hours")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// List returns the caller's own entries, newest service date first.
func (h *ServiceHourHandler) List(c *gin.Context) {
	member := middleware.CurrentMember(c)

	var entries []models.ServiceHour
	err := h.db.
		Where("member_id = ? AND club_id = ?", member.ID, member.ClubID).
		Order("service_date desc").
		Find(&entries).Error
	if err != nil {
		httperr.Internal(c, "list_failed", "could not list service hours")
		return
	}
	httpresp.List(c, entries)
}

func (h *ServiceHourHandler) getOwnEntry(c *gin.Context) (*models.ServiceHour, bool) {
	member := middleware.CurrentMember(c)

	var entry models.ServiceHour
	if err := h.db.First(&entry, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "entry_not_found", "service hour entry not found")
		return nil, false
	}
	if entry.ClubID == nil || member.ClubID == nil || *entry.ClubID != *member.ClubID {
		httperr.NotFound(c, "entry_not_found", "service hour entry not found")
		return nil, false
	}
	if entry.MemberID != member.ID {
		httperr.Forbidden(c, "not_entry_owner", "not allowed to modify this entry")
		return nil, false
	}
	return &entry, true
}

func (h *ServiceHourHandler) Update(c *gin.Context) {
	var req ServiceHourUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry, ok := h.getOwnEntry(c)
	if !ok {
		return
	}

	if req.ServiceDate != nil {
		entry.ServiceDate = *req.ServiceDate
	}
	if req.Hours != nil {
		entry.Hours = *req.Hours
	}
	if req.Activity != nil {
		entry.Activity = *req.Activity
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}

	if err := h.db.Save(entry).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update entry")
		return
	}
	httpresp.OK(c, entry)
}

func (h *ServiceHourHandler) Delete(c *gin.Context) {
	entry, ok := h.getOwnEntry(c)
	if !ok {
		return
	}

	if err := h.db.Delete(entry).Error; err != nil {
		httperr.Internal(c, "delete_failed", "could not delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary reports the club's year-to-date hours. Reachable even when
// the club is locked.
func (h *ServiceHourHandler) Summary(c *gin.Context) {
	member := middleware.CurrentMember(c)
	year := time.Now().UTC().Year()

	var total float64
	h.db.Model(&models.ServiceHour{}).
		Select("COALESCE(SUM(hours), 0)").
		Where("club_id = ?", member.ClubID).
		Where("EXTRACT(YEAR FROM service_date) = ?", year).
		Scan(&total)

	c.JSON(http.StatusOK, gin.H{
		"year":           year,
		"club_ytd_hours": total,
	})
}
