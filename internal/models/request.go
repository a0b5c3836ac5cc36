package models

import "time"

// Request status values.
const (
	RequestPending    = "PENDING"
	RequestApproved   = "APPROVED"
	RequestDenied     = "DENIED"
	RequestInProgress = "IN_PROGRESS"
	RequestClosed     = "CLOSED"
)

type Request struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	ClubID *uint `gorm:"index" json:"club_id"`

	Category string `gorm:"size:40;not null" json:"category"`
	Status   string `gorm:"size:20;default:'PENDING'" json:"status"`
	Priority string `gorm:"size:20" json:"priority,omitempty"`

	RequesterName    string `gorm:"size:255;not null" json:"requester_name"`
	RequesterPhone   string `gorm:"size:50" json:"requester_phone,omitempty"`
	RequesterEmail   string `gorm:"size:255" json:"requester_email,omitempty"`
	RequesterAddress string `gorm:"size:255" json:"requester_address,omitempty"`

	Description string `gorm:"type:text;not null" json:"description"`

	ReviewedByMemberID *uint      `json:"reviewed_by_member_id"`
	ReviewedBy         *Member    `gorm:"foreignKey:ReviewedByMemberID" json:"-"`
	ReviewedAt         *time.Time `json:"reviewed_at"`
	DecisionNote       string     `gorm:"type:text" json:"decision_note,omitempty"`

	AssignedToMemberID *uint      `json:"assigned_to_member_id"`
	AssignedAt         *time.Time `json:"assigned_at"`
	ClosedAt           *time.Time `json:"closed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RequestNote struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RequestID uint `gorm:"index;not null" json:"request_id"`
	AuthorID  uint `gorm:"not null" json:"author_id"`

	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// RequestLog is the per-request activity trail, written asynchronously
// by the audit dispatcher.
type RequestLog struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RequestID uint `gorm:"index;not null" json:"request_id"`
	ActorID   uint `gorm:"not null" json:"actor_id"`

	Action    string    `gorm:"size:50;not null" json:"action"`
	Detail    string    `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
