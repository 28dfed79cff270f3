package model

import (
	"time"
)

type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationRecord is one dispatch attempt for an order status message
type NotificationRecord struct {
	ID           uint                `gorm:"primarykey" json:"id"`
	OrderID      uint                `gorm:"not null;index" json:"order_id"`
	Channel      NotificationChannel `gorm:"type:varchar(20);not null" json:"channel"`
	Recipient    string              `gorm:"not null" json:"recipient"`
	TargetStatus OrderStatus         `gorm:"type:varchar(20);not null" json:"target_status"`
	Status       NotificationStatus  `gorm:"type:varchar(20);not null" json:"status"`
	ErrorMessage string              `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (NotificationRecord) TableName() string {
	return "notification_records"
}
