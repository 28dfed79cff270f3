package repository

import (
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"gorm.io/gorm"
)

// CartScope binds cart rows either to a customer or to a guest session.
// Exactly one of the two identifies the scope.
type CartScope struct {
	CustomerID *uint
	SessionID  string
}

func (s CartScope) apply(query *gorm.DB) *gorm.DB {
	if s.CustomerID != nil {
		return query.Where("customer_id = ?", *s.CustomerID)
	}
	return query.Where("session_id = ? AND customer_id IS NULL", s.SessionID)
}

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByScope(scope CartScope) ([]model.CartItem, error)
	FindByID(id uint) (*model.CartItem, error)
	FindByScopeAndKey(scope CartScope, productID uint, size, color string) (*model.CartItem, error)
	Update(cartItem *model.CartItem) error
	Delete(id uint) error
	DeleteByScope(scope CartScope) error
	DeleteExpiredGuestItems(cutoff time.Time) (int64, error)
	ReassignSession(sessionID string, customerID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"customer_id": cartItem.CustomerID,
		"session_id":  cartItem.SessionID,
		"product_id":  cartItem.ProductID,
		"size":        cartItem.Size,
		"color":       cartItem.Color,
		"quantity":    cartItem.Quantity,
	})

	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"product_id": cartItem.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindByScope(scope CartScope) ([]model.CartItem, error) {
	var cartItems []model.CartItem
	err := scope.apply(r.db).
		Preload("Product").
		Preload("Product.Variants").
		Order("added_at asc").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by scope in database", err, map[string]interface{}{
			"customer_id": scope.CustomerID,
			"session_id":  scope.SessionID,
		})
		return nil, err
	}
	return cartItems, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	var cartItem model.CartItem
	err := r.db.Preload("Product").First(&cartItem, id).Error
	if err != nil {
		return nil, err
	}
	return &cartItem, nil
}

func (r *cartRepository) FindByScopeAndKey(scope CartScope, productID uint, size, color string) (*model.CartItem, error) {
	var cartItem model.CartItem
	err := scope.apply(r.db).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&cartItem).Error
	if err != nil {
		return nil, err
	}
	return &cartItem, nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	if err := r.db.Save(cartItem).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByScope(scope CartScope) error {
	if err := scope.apply(r.db).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by scope from database", err, map[string]interface{}{
			"customer_id": scope.CustomerID,
			"session_id":  scope.SessionID,
		})
		return err
	}
	return nil
}

// DeleteExpiredGuestItems removes guest cart rows whose added_at predates the
// cutoff. Customer carts never expire.
func (r *cartRepository) DeleteExpiredGuestItems(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("customer_id IS NULL AND added_at < ?", cutoff).
		Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete expired guest cart items", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReassignSession moves all rows of a guest session into a customer scope.
// Key collisions are resolved by the service before calling this.
func (r *cartRepository) ReassignSession(sessionID string, customerID uint) error {
	return r.db.Model(&model.CartItem{}).
		Where("session_id = ? AND customer_id IS NULL", sessionID).
		Updates(map[string]interface{}{
			"customer_id": customerID,
			"session_id":  "",
		}).Error
}
