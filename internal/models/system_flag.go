package models

import "time"

// SystemFlag holds one-shot operational flags, e.g. the permanent
// "bootstrap_used" lock.
type SystemFlag struct {
	Key       string    `gorm:"primaryKey;size:80" json:"key"`
	Value     string    `gorm:"size:255" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
