package service

import (
	"errors"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"gorm.io/gorm"
)

type WishlistService interface {
	ListItems(scope repository.CartScope) ([]model.WishlistItem, error)
	// ToggleItem adds the (product, size, color) key when absent and removes
	// it when present. Returns true when the item ended up in the list.
	ToggleItem(scope repository.CartScope, productID uint, size, color string, quantity int) (bool, error)
	ClearWishlist(scope repository.CartScope) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) ListItems(scope repository.CartScope) ([]model.WishlistItem, error) {
	return s.wishlistRepo.FindByScope(scope)
}

func (s *wishlistService) ToggleItem(scope repository.CartScope, productID uint, size, color string, quantity int) (bool, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, err
	}

	existing, err := s.wishlistRepo.FindByScopeAndKey(scope, productID, size, color)
	if err == nil {
		if err := s.wishlistRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if quantity <= 0 {
		quantity = 1
	}
	item := &model.WishlistItem{
		CustomerID: scope.CustomerID,
		SessionID:  scope.SessionID,
		ProductID:  productID,
		Size:       size,
		Color:      color,
		Quantity:   quantity,
		AddedAt:    time.Now(),
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return false, err
	}
	return true, nil
}

func (s *wishlistService) ClearWishlist(scope repository.CartScope) error {
	return s.wishlistRepo.DeleteByScope(scope)
}
