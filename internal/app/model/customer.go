package model

import (
	"time"

	"gorm.io/gorm"
)

// ContactPreference selects the notification channel for a customer
type ContactPreference string

const (
	ContactEmail    ContactPreference = "email"
	ContactWhatsApp ContactPreference = "whatsapp"
)

type Customer struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	// Phone is the dedupe key when backfilling customers from order history
	Phone             string            `gorm:"not null;uniqueIndex:idx_customers_phone" json:"phone"`
	Email             string            `json:"email"`
	Address           string            `gorm:"type:text" json:"address"`
	City              string            `json:"city"`
	ContactPreference ContactPreference `gorm:"type:varchar(20);default:'email'" json:"contact_preference"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Orders    []Order    `gorm:"foreignKey:CustomerID" json:"-"`
	CartItems []CartItem `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
