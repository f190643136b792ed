package models

import (
	"time"
)

// UsageCounter is one row per (user, UTC calendar day), created implicitly on
// first increment and never deleted. The ceiling is enforced at increment
// time with a conditional upsert, not here.
type UsageCounter struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:ux_usage_user_day,priority:1;not null" json:"user_id"`
	Day    string `gorm:"uniqueIndex:ux_usage_user_day,priority:2;not null" json:"day"` // "2006-01-02", UTC
	Count  int    `gorm:"not null;default:0" json:"count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UsageCounter) TableName() string {
	return "usage_counters"
}
