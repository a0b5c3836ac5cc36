package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/auth"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

const (
	ContextMember = "member"
	ContextClub   = "club"
)

// AuthMiddleware verifies the bearer token and loads the member (and
// their club) fresh from the database, so deactivation and role
// changes take effect on the next request, not at token expiry.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		claims, err := auth.ParseToken(parts[1], cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		var member models.Member
		if err := db.Preload("Club").First(&member, claims.MemberID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if !member.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account_inactive"})
			return
		}

		c.Set(ContextMember, &member)
		if member.Club != nil {
			c.Set(ContextClub, member.Club)
		}

		c.Next()
	}
}

// CurrentMember returns the authenticated member, or nil outside an
// authenticated route.
func CurrentMember(c *gin.Context) *models.Member {
	v, ok := c.Get(ContextMember)
	if !ok {
		return nil
	}
	m, _ := v.(*models.Member)
	return m
}

// CurrentClub returns the authenticated member's club, or nil.
func CurrentClub(c *gin.Context) *models.Club {
	v, ok := c.Get(ContextClub)
	if !ok {
		return nil
	}
	club, _ := v.(*models.Club)
	return club
}
