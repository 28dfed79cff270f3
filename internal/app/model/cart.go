package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one cart line. Rows belong either to a customer (CustomerID
// set) or to a guest browser session (SessionID set). Uniqueness within a
// scope is the (product, size, color) composite key; quantity is always >= 1,
// a quantity of zero deletes the row instead.
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CustomerID *uint          `gorm:"index" json:"customer_id,omitempty"`
	SessionID  string         `gorm:"index" json:"session_id,omitempty"`
	ProductID  uint           `gorm:"not null;index" json:"product_id"`
	Size       string         `gorm:"not null" json:"size"`
	Color      string         `gorm:"not null" json:"color"`
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`
	AddedAt    time.Time      `gorm:"not null" json:"added_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Product  Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
