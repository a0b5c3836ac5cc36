package models

import "time"

type ServiceHour struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	ClubID *uint `gorm:"index" json:"club_id"`

	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	ServiceDate time.Time `gorm:"type:date" json:"service_date"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Activity    string    `gorm:"size:255;not null" json:"activity"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
