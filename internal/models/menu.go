package models

import (
	"time"
)

// Menu is the root aggregate a restaurant owner manages. Sections and items
// are exclusively owned by the menu; deletion cascades at the storage layer.
type Menu struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	OwnerID        uint       `gorm:"index;not null" json:"owner_id"`
	Name           string     `gorm:"not null" json:"name"`
	RestaurantName string     `json:"restaurant_name"`
	Description    string     `json:"description"`
	Slug           string     `gorm:"uniqueIndex;not null" json:"slug"`
	IsPublished    bool       `gorm:"default:false" json:"is_published"`
	DeletedOn      *time.Time `json:"deleted_on,omitempty"`

	Sections []MenuSection `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Visible reports whether the menu may be served to an anonymous visitor.
// Every public read goes through this rule so publish/unpublish and
// delete/restore cannot desynchronize visibility.
func (m *Menu) Visible() bool {
	return m.IsPublished && m.DeletedOn == nil
}

// MenuSection groups items under a heading ("Starters", "Mains", ...).
type MenuSection struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	MenuID    string `gorm:"index;not null" json:"menu_id"`
	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `json:"sort_order"`

	Items []MenuItem `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuItem is a single dish or drink. Prices are stored in minor units
// (cents); DisplayPrice is filled in when shaping a public response.
type MenuItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SectionID   uint   `gorm:"index;not null" json:"section_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `gorm:"default:'usd'" json:"currency"`
	ImageURL    string `json:"image_url"`
	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	SortOrder   int    `json:"sort_order"`

	DisplayPrice string `gorm:"-" json:"display_price,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
