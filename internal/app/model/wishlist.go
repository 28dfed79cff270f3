package model

import (
	"time"

	"gorm.io/gorm"
)

// WishlistItem is keyed by (product, size, color) within a customer or
// session scope. Adding an existing key removes it (toggle semantics).
type WishlistItem struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CustomerID *uint          `gorm:"index" json:"customer_id,omitempty"`
	SessionID  string         `gorm:"index" json:"session_id,omitempty"`
	ProductID  uint           `gorm:"not null;index" json:"product_id"`
	Size       string         `gorm:"not null" json:"size"`
	Color      string         `gorm:"not null" json:"color"`
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`
	AddedAt    time.Time      `gorm:"not null" json:"added_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Associations (loaded with Preload)
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
