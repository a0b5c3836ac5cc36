package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/logger"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

const bootstrapFlagKey = "bootstrap_used"

type BootstrapHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewBootstrapHandler(db *gorm.DB, cfg *config.Config) *BootstrapHandler {
	return &BootstrapHandler{db: db, config: cfg}
}

// Bootstrap creates the first club and OWNER from environment
// settings. It is keyed, single-use, and pretends not to exist when
// unconfigured.
func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	// Unconfigured deployments must not reveal the endpoint.
	if h.config.BootstrapKey == "" ||
		h.config.BootstrapClubCode == "" ||
		h.config.BootstrapEmail == "" ||
		h.config.BootstrapPassword == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	key := c.Query("key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(h.config.BootstrapKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_bootstrap_key"})
		return
	}

	var flag models.SystemFlag
	if err := h.db.First(&flag, "key = ?", bootstrapFlagKey).Error; err == nil && flag.Value == "1" {
		httperr.Forbidden(c, "bootstrap_used", "bootstrap already used")
		return
	}

	hash, err := auth.HashPassword(h.config.BootstrapPassword)
	if err != nil {
		httperr.Internal(c, "hash_failed", "could not hash password")
		return
	}

	email := auth.NormalizeLogin(h.config.BootstrapEmail)
	slug := Slugify(h.config.BootstrapClubCode)

	var club models.Club
	var owner models.Member

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&club).Error; err != nil {
			club = models.Club{
				Slug:     slug,
				Name:     h.config.BootstrapClubName,
				IsActive: true,
			}
			if err := tx.Create(&club).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("LOWER(email) = ?", email).First(&owner).Error; err != nil {
			owner = models.Member{
				ClubID:         &club.ID,
				Email:          email,
				HashedPassword: hash,
				FullName:       "Club Owner",
				IsActive:       true,
				IsAdmin:        true,
				Role:           models.RoleOwner,
			}
			if err := tx.Create(&owner).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&owner).Updates(map[string]interface{}{
				"hashed_password": hash,
				"role":            models.RoleOwner,
				"is_admin":        true,
				"is_active":       true,
				"club_id":         club.ID,
			}).Error; err != nil {
				return err
			}
		}

		// Permanent lock, independent of the env vars.
		return tx.Create(&models.SystemFlag{Key: bootstrapFlagKey, Value: "1"}).Error
	})
	if err != nil {
		httperr.Internal(c, "bootstrap_failed", "could not bootstrap")
		return
	}

	logger.L.Infow("bootstrap completed", "club", club.Slug, "owner", email)

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"club_id":     club.ID,
		"club_slug":   club.Slug,
		"owner_email": email,
		"note":        "remove BOOTSTRAP_* environment variables now",
	})
}
