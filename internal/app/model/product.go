package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductGender string

const (
	GenderBoy    ProductGender = "boy"
	GenderGirl   ProductGender = "girl"
	GenderUnisex ProductGender = "unisex"
)

type Product struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Price       float64       `gorm:"not null" json:"price"`
	SalePrice   *float64      `json:"sale_price,omitempty"`
	OnSale      bool          `gorm:"default:false" json:"on_sale"`
	Gender      ProductGender `gorm:"type:varchar(10);default:'unisex'" json:"gender"`
	// Code is the 6-digit storefront code. Assigned lazily on first request,
	// immutable once set. NULL until assigned so the unique index only
	// applies to assigned codes.
	Code          *string        `gorm:"type:varchar(6);uniqueIndex:idx_products_code" json:"code,omitempty"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string         `json:"image_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants   []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CartItems  []CartItem       `gorm:"foreignKey:ProductID" json:"-"`
	OrderItems []OrderItem      `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the price the storefront charges right now
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
