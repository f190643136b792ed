package models

import (
	"time"
)

// QRCode links a printed code to a menu. At most one active code is expected
// per menu; rotation deactivates the previous one in the same transaction.
type QRCode struct {
	ID       string `gorm:"primaryKey" json:"id"`
	MenuID   string `gorm:"index;not null" json:"menu_id"`
	Label    string `json:"label"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScanEvent records a single QR scan. Append-only: rows are never updated or
// deleted, and duplicate scans are duplicate rows.
type ScanEvent struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	QRCodeID     string    `gorm:"index;not null" json:"qr_code_id"`
	MenuID       string    `gorm:"index;not null" json:"menu_id"`
	UserAgent    string    `json:"user_agent"`
	IP           string    `json:"ip"`
	Referrer     string    `json:"referrer"`
	SessionToken string    `json:"session_token"`
	ScannedAt    time.Time `json:"scanned_at"`
}
