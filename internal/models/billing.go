package models

import (
	"time"
)

// CustomerRecord mirrors a payment-provider customer. Rows are created and
// updated opportunistically from webhook events; the provider remains the
// source of truth and the mirror is never treated as authoritative.
type CustomerRecord struct {
	ID     string `gorm:"primaryKey" json:"id"` // provider customer id
	Email  string `gorm:"index" json:"email"`
	UserID *uint  `gorm:"index" json:"user_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriptionRecord mirrors a payment-provider subscription, keyed by the
// provider's own identifier. There is no deletion path and no reconciliation;
// a cancelled subscription keeps its row with status "canceled".
type SubscriptionRecord struct {
	ID                string    `gorm:"primaryKey" json:"id"` // provider subscription id
	CustomerID        string    `gorm:"index;not null" json:"customer_id"`
	PriceID           string    `json:"price_id"`
	Status            string    `json:"status"`
	CurrentPeriodEnd  time.Time `json:"current_period_end"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
