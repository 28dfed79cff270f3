package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductVariant struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	// SizeOrAge holds either a clothing size ("M") or an age range ("2-3y").
	// Both occupy the same semantic axis.
	SizeOrAge string `gorm:"not null" json:"size_or_age"`
	Color     string `gorm:"not null" json:"color"`
	// Code is the shared 3-digit code for this (size-or-age, color)
	// combination, copied from the variant_codes mapping on assignment.
	Code            string         `gorm:"type:varchar(3)" json:"code,omitempty"`
	PriceAdjustment float64        `gorm:"default:0" json:"price_adjustment"`
	StockQuantity   int            `gorm:"default:0" json:"stock_quantity"`
	ImageURL        string         `json:"image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// VariantCode maps a (size-or-age, color) combination to its 3-digit code.
// The code is a function of the combination, not of any single variant row,
// so identical combinations share one code across products. Unique indexes
// backstop the generator's check-then-insert against concurrent assignment.
type VariantCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SizeOrAge string    `gorm:"not null;uniqueIndex:idx_variant_codes_combination" json:"size_or_age"`
	Color     string    `gorm:"not null;uniqueIndex:idx_variant_codes_combination" json:"color"`
	Code      string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_variant_codes_code" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

func (VariantCode) TableName() string {
	return "variant_codes"
}
