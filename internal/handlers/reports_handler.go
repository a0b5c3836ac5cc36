package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

// ReportsHandler serves the PRO-only reporting endpoints. The route
// group carries the access and plan guards, so handlers here assume a
// paid, unlocked club.
type ReportsHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewReportsHandler(db *gorm.DB, cfg *config.Config) *ReportsHandler {
	return &ReportsHandler{db: db, config: cfg}
}

func (h *ReportsHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "reports": "enabled"})
}

// StatusCounts returns the club's service-request totals broken down
// by status.
func (h *ReportsHandler) StatusCounts(c *gin.Context) {
	club := middleware.CurrentClub(c)
	if club == nil {
		httperr.NotFound(c, "club_not_found", "club not found")
		return
	}

	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := h.db.Model(&models.Request{}).
		Select("status, COUNT(*) AS count").
		Where("club_id = ?", club.ID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "query_failed", "could not load report")
		return
	}

	counts := gin.H{}
	var total int64
	for _, r := range rows {
		counts[r.Status] = r.Count
		total += r.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"total":     total,
		"by_status": counts,
	})
}
