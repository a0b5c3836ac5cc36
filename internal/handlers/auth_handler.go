package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Login exchanges credentials for a bearer token. Bad email and bad
// password return the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := auth.NormalizeLogin(req.Email)

	var member models.Member
	err := h.db.Where("LOWER(email) = ?", email).First(&member).Error
	if err != nil || !auth.CheckPassword(member.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_email_or_password"})
		return
	}

	if !member.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account_inactive"})
		return
	}

	token, err := auth.IssueToken(&member, h.config.JWTSecret, h.config.TokenExpireMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_at":   time.Now().Add(time.Duration(h.config.TokenExpireMinutes) * time.Minute).UTC(),
	})
}
