package repository

import (
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(record *model.NotificationRecord) error
	FindByOrderID(orderID uint) ([]model.NotificationRecord, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(record *model.NotificationRecord) error {
	return r.db.Create(record).Error
}

func (r *notificationRepository) FindByOrderID(orderID uint) ([]model.NotificationRecord, error) {
	var records []model.NotificationRecord
	err := r.db.Where("order_id = ?", orderID).Order("created_at desc").Find(&records).Error
	return records, err
}
