package models

import "time"

type Event struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	ClubID *uint `gorm:"index" json:"club_id"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Location    string `gorm:"size:255" json:"location,omitempty"`

	StartAt time.Time  `gorm:"not null" json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	IsPublic bool `gorm:"default:true" json:"is_public"`

	CreatedByMemberID *uint     `json:"created_by_member_id"`
	CreatedAt         time.Time `json:"created_at"`
}
