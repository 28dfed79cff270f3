package service

import (
	"errors"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type CartSummary struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice float64          `json:"total_price"`
}

type CartService interface {
	GetCart(scope repository.CartScope) (*CartSummary, error)
	AddItem(scope repository.CartScope, productID uint, size, color string, quantity int) (*model.CartItem, error)
	UpdateQuantity(scope repository.CartScope, itemID uint, quantity int) error
	RemoveItem(scope repository.CartScope, itemID uint) error
	ClearCart(scope repository.CartScope) error
	MergeSessionCart(sessionID string, customerID uint) error
	PruneExpiredGuestItems() (int64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	guestTTL    time.Duration
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	guestTTL time.Duration,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		guestTTL:    guestTTL,
	}
}

// GetCart prunes expired guest rows before loading, so a returning browser
// never sees a cart older than the TTL
func (s *cartService) GetCart(scope repository.CartScope) (*CartSummary, error) {
	if scope.CustomerID == nil {
		if _, err := s.cartRepo.DeleteExpiredGuestItems(time.Now().Add(-s.guestTTL)); err != nil {
			logger.Warn("Failed to prune expired cart items on read", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	items, err := s.cartRepo.FindByScope(scope)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: items}
	for _, item := range items {
		unit, err := s.unitPrice(&item.Product, item.Size, item.Color)
		if err != nil {
			return nil, err
		}
		summary.TotalItems += item.Quantity
		summary.TotalPrice += unit * float64(item.Quantity)
	}
	return summary, nil
}

// unitPrice is the product's effective price plus the variant's price
// adjustment when a variant row exists for the (size, color) key
func (s *cartService) unitPrice(product *model.Product, size, color string) (float64, error) {
	price := product.EffectivePrice()
	variant, err := s.variantRepo.FindByProductAndKey(product.ID, size, color)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return price, nil
		}
		return 0, err
	}
	return price + variant.PriceAdjustment, nil
}

// AddItem upserts on the (product, size, color) key: an existing row has the
// quantity added to it, a new row starts the TTL clock
func (s *cartService) AddItem(scope repository.CartScope, productID uint, size, color string, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.checkStock(product, size, color, quantity); err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindByScopeAndKey(scope, productID, size, color)
	if err == nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.CartItem{
		CustomerID: scope.CustomerID,
		SessionID:  scope.SessionID,
		ProductID:  productID,
		Size:       size,
		Color:      color,
		Quantity:   quantity,
		AddedAt:    time.Now(),
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the absolute quantity; zero or less removes the row
func (s *cartService) UpdateQuantity(scope repository.CartScope, itemID uint, quantity int) error {
	item, err := s.findScopedItem(scope, itemID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		return s.cartRepo.Delete(item.ID)
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err == nil {
		if err := s.checkStock(product, item.Size, item.Color, quantity); err != nil {
			return err
		}
	}

	item.Quantity = quantity
	return s.cartRepo.Update(item)
}

func (s *cartService) RemoveItem(scope repository.CartScope, itemID uint) error {
	item, err := s.findScopedItem(scope, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) ClearCart(scope repository.CartScope) error {
	return s.cartRepo.DeleteByScope(scope)
}

// MergeSessionCart folds a guest session's cart into a customer's cart.
// Colliding (product, size, color) keys have their quantities summed.
func (s *cartService) MergeSessionCart(sessionID string, customerID uint) error {
	if sessionID == "" {
		return nil
	}

	sessionItems, err := s.cartRepo.FindByScope(repository.CartScope{SessionID: sessionID})
	if err != nil {
		return err
	}

	// Fold colliding keys into the customer's existing rows first
	customerScope := repository.CartScope{CustomerID: &customerID}
	for i := range sessionItems {
		item := &sessionItems[i]

		existing, err := s.cartRepo.FindByScopeAndKey(customerScope, item.ProductID, item.Size, item.Color)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}

		existing.Quantity += item.Quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return err
		}
		if err := s.cartRepo.Delete(item.ID); err != nil {
			return err
		}
	}

	// Whatever survived the folding moves over in one statement
	if err := s.cartRepo.ReassignSession(sessionID, customerID); err != nil {
		return err
	}

	logger.Info("Merged guest cart into customer cart", map[string]interface{}{
		"session_id":  sessionID,
		"customer_id": customerID,
		"items":       len(sessionItems),
	})
	return nil
}

// PruneExpiredGuestItems is the scheduled sweep counterpart to the
// prune-on-read in GetCart
func (s *cartService) PruneExpiredGuestItems() (int64, error) {
	return s.cartRepo.DeleteExpiredGuestItems(time.Now().Add(-s.guestTTL))
}

func (s *cartService) findScopedItem(scope repository.CartScope, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	// Items are only reachable through their own scope
	if scope.CustomerID != nil {
		if item.CustomerID == nil || *item.CustomerID != *scope.CustomerID {
			return nil, ErrCartItemNotFound
		}
	} else if item.CustomerID != nil || item.SessionID != scope.SessionID {
		return nil, ErrCartItemNotFound
	}

	return item, nil
}

func (s *cartService) checkStock(product *model.Product, size, color string, quantity int) error {
	variant, err := s.variantRepo.FindByProductAndKey(product.ID, size, color)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No variant row means the product-level stock applies
			if product.StockQuantity > 0 && quantity > product.StockQuantity {
				return ErrInsufficientStock
			}
			return nil
		}
		return err
	}

	if variant.StockQuantity > 0 && quantity > variant.StockQuantity {
		return ErrInsufficientStock
	}
	return nil
}
