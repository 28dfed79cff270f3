package repository

import (
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindByScope(scope CartScope) ([]model.WishlistItem, error)
	FindByScopeAndKey(scope CartScope, productID uint, size, color string) (*model.WishlistItem, error)
	Delete(id uint) error
	DeleteByScope(scope CartScope) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	return r.db.Create(item).Error
}

func (r *wishlistRepository) FindByScope(scope CartScope) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := scope.apply(r.db).
		Preload("Product").
		Order("added_at asc").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) FindByScopeAndKey(scope CartScope, productID uint, size, color string) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := scope.apply(r.db).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Delete(id uint) error {
	return r.db.Delete(&model.WishlistItem{}, id).Error
}

func (r *wishlistRepository) DeleteByScope(scope CartScope) error {
	return scope.apply(r.db).Delete(&model.WishlistItem{}).Error
}
