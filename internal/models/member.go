package models

import "time"

const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

type Member struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	ClubID *uint `gorm:"index" json:"club_id"`
	Club   *Club `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Email is globally unique, not unique per club. The trial ledger
	// depends on this.
	Email          string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"size:255;not null" json:"-"`

	FullName string `gorm:"size:255" json:"full_name"`
	Phone    string `gorm:"size:50" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`

	MemberSince *time.Time `gorm:"type:date" json:"member_since"`
	Birthday    *time.Time `gorm:"type:date" json:"birthday"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Legacy admin flag, kept in sync with Role by the owner/admin handlers.
	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	// Hard role: OWNER | ADMIN | MEMBER. This is what gets enforced.
	Role string `gorm:"size:20;not null;default:'MEMBER'" json:"role"`

	// Platform-level super admin, distinct from club admins.
	IsSuperAdmin bool `gorm:"default:false" json:"is_super_admin"`

	CreatedAt time.Time `json:"created_at"`
}
