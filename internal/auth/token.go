package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded access-token payload.
type Claims struct {
	MemberID     uint
	ClubID       *uint
	Role         string
	IsAdmin      bool
	IsSuperAdmin bool
}

// IssueToken signs an HS256 access token for the member.
func IssueToken(m *models.Member, secret string, expireMinutes int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          strconv.FormatUint(uint64(m.ID), 10),
		"role":         NormalizeRole(m.Role),
		"isAdmin":      m.IsAdmin,
		"isSuperAdmin": m.IsSuperAdmin,
		"iat":          now.Unix(),
		"exp":          now.Add(time.Duration(expireMinutes) * time.Minute).Unix(),
	}
	if m.ClubID != nil {
		claims["clubId"] = float64(*m.ClubID)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and decodes the claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	c := &Claims{MemberID: uint(id)}
	if v, ok := mapClaims["clubId"].(float64); ok {
		clubID := uint(v)
		c.ClubID = &clubID
	}
	if v, ok := mapClaims["role"].(string); ok {
		c.Role = NormalizeRole(v)
	}
	if v, ok := mapClaims["isAdmin"].(bool); ok {
		c.IsAdmin = v
	}
	if v, ok := mapClaims["isSuperAdmin"].(bool); ok {
		c.IsSuperAdmin = v
	}
	return c, nil
}
