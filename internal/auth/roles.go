package auth

import (
	"strings"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

// NormalizeRole maps arbitrary stored role strings onto the three
// roles the app enforces. Unknown values fall back to MEMBER.
func NormalizeRole(role string) string {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case models.RoleOwner:
		return models.RoleOwner
	case models.RoleAdmin:
		return models.RoleAdmin
	default:
		return models.RoleMember
	}
}

// NormalizeLogin lowercases and trims an email used as a login key.
func NormalizeLogin(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsOwner(m *models.Member) bool {
	return m != nil && NormalizeRole(m.Role) == models.RoleOwner
}

// IsAdminRole reports whether the member holds club-admin powers:
// the OWNER role, the ADMIN role, or the legacy is_admin flag.
func IsAdminRole(m *models.Member) bool {
	if m == nil {
		return false
	}
	switch NormalizeRole(m.Role) {
	case models.RoleOwner, models.RoleAdmin:
		return true
	}
	return m.IsAdmin
}

// IsPrivileged reports whether the member bypasses subscription gating:
// club owners, club admins, and platform super admins.
func IsPrivileged(m *models.Member) bool {
	if m == nil {
		return false
	}
	return m.IsSuperAdmin || IsAdminRole(m)
}
