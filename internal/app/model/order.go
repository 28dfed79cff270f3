package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	CustomerID  uint        `gorm:"not null;index" json:"customer_id"`
	Status      OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	// Shipping snapshot, copied from the customer at order time so later
	// customer edits do not rewrite order history
	ShippingName    string         `gorm:"not null" json:"shipping_name"`
	ShippingPhone   string         `gorm:"not null" json:"shipping_phone"`
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`
	ShippingCity    string         `json:"shipping_city"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Customer   Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`
	// Variant snapshot at order time
	ProductName string         `gorm:"not null" json:"product_name"`
	Size        string         `gorm:"not null" json:"size"`
	Color       string         `gorm:"not null" json:"color"`
	UnitPrice   float64        `gorm:"not null" json:"unit_price"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
