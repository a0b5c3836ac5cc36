package models

import "time"

// TrialClaim is the append-only ledger of emails that have ever consumed
// their one free trial, regardless of club. The unique index on the
// normalized email is what keeps the rule correct across server instances.
type TrialClaim struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EmailNormalized string    `gorm:"size:255;uniqueIndex;not null" json:"email_normalized"`
	ClaimedAt       time.Time `gorm:"not null" json:"claimed_at"`
}
