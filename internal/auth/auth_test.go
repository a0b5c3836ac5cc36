package auth

import (
	"testing"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, models.RoleOwner, NormalizeRole("owner"))
	assert.Equal(t, models.RoleOwner, NormalizeRole(" OWNER "))
	assert.Equal(t, models.RoleAdmin, NormalizeRole("Admin"))
	assert.Equal(t, models.RoleMember, NormalizeRole("MEMBER"))
	assert.Equal(t, models.RoleMember, NormalizeRole(""))
	assert.Equal(t, models.RoleMember, NormalizeRole("janitor"))
}

func TestIsAdminRole(t *testing.T) {
	assert.False(t, IsAdminRole(nil))
	assert.True(t, IsAdminRole(&models.Member{Role: models.RoleOwner}))
	assert.True(t, IsAdminRole(&models.Member{Role: models.RoleAdmin}))
	assert.True(t, IsAdminRole(&models.Member{Role: models.RoleMember, IsAdmin: true}))
	assert.False(t, IsAdminRole(&models.Member{Role: models.RoleMember}))
}

func TestIsPrivileged(t *testing.T) {
	assert.True(t, IsPrivileged(&models.Member{IsSuperAdmin: true}))
	assert.True(t, IsPrivileged(&models.Member{Role: models.RoleOwner}))
	assert.False(t, IsPrivileged(&models.Member{Role: models.RoleMember}))
	assert.False(t, IsPrivileged(nil))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTempPassword(t *testing.T) {
	a := TempPassword()
	b := TempPassword()
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestTokenRoundTrip(t *testing.T) {
	clubID := uint(7)
	m := &models.Member{
		ID:           42,
		ClubID:       &clubID,
		Role:         models.RoleAdmin,
		IsAdmin:      true,
		IsSuperAdmin: false,
	}

	tok, err := IssueToken(m, "test-secret", 60)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.MemberID)
	require.NotNil(t, claims.ClubID)
	assert.Equal(t, uint(7), *claims.ClubID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.IsSuperAdmin)
}

func TestTokenWrongSecret(t *testing.T) {
	m := &models.Member{ID: 1, Role: models.RoleMember}
	tok, err := IssueToken(m, "secret-a", 60)
	require.NoError(t, err)

	_, err = ParseToken(tok, "secret-b")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	m := &models.Member{ID: 1, Role: models.RoleMember}
	tok, err := IssueToken(m, "secret", -5)
	require.NoError(t, err)

	_, err = ParseToken(tok, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
