package service

import (
	"errors"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrOrderAlreadyFinalized = errors.New("order already finalized")
)

// validTransitions is the order lifecycle. Delivered and cancelled are
// terminal.
var validTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:   {model.OrderStatusDelivered},
}

type CheckoutInput struct {
	Name              string
	Phone             string
	Email             string
	Address           string
	City              string
	Notes             string
	ContactPreference model.ContactPreference
}

type OrderService interface {
	CreateOrder(scope repository.CartScope, input CheckoutInput) (*model.Order, error)
	ListOrders(filter repository.OrderFilter) ([]model.Order, int64, error)
	GetOrderByID(id uint) (*model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error)
	UpdateShipping(id uint, input CheckoutInput) (*model.Order, error)
	DeleteOrder(id uint) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	variantRepo  repository.VariantRepository
	notification NotificationService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	customerRepo repository.CustomerRepository,
	variantRepo repository.VariantRepository,
	notification NotificationService,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		variantRepo:  variantRepo,
		notification: notification,
	}
}

// CreateOrder turns the scoped cart into an order. Item rows snapshot the
// product name and effective price at checkout time, then the cart clears.
func (s *orderService) CreateOrder(scope repository.CartScope, input CheckoutInput) (*model.Order, error) {
	cartItems, err := s.cartRepo.FindByScope(scope)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	customer, err := s.resolveCustomer(input)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		CustomerID:      customer.ID,
		Status:          model.OrderStatusPending,
		ShippingName:    input.Name,
		ShippingPhone:   input.Phone,
		ShippingAddress: input.Address,
		ShippingCity:    input.City,
		Notes:           input.Notes,
	}

	for _, item := range cartItems {
		unitPrice, err := s.unitPrice(&item.Product, item.Size, item.Color)
		if err != nil {
			return nil, err
		}
		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Size:        item.Size,
			Color:       item.Color,
			UnitPrice:   unitPrice,
			Quantity:    item.Quantity,
		})
		order.TotalAmount += unitPrice * float64(item.Quantity)
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteByScope(scope); err != nil {
		logger.Warn("Failed to clear cart after checkout", map[string]interface{}{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": customer.ID,
		"total":       order.TotalAmount,
		"items":       len(order.OrderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

// unitPrice snapshots the line price at checkout: the product's effective
// price plus the variant's adjustment when a variant row matches the key
func (s *orderService) unitPrice(product *model.Product, size, color string) (float64, error) {
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

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.orderRepo.FindWithFilter(filter)
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus validates the transition and dispatches the customer
// notification. A failed notification never rolls the status back.
func (s *orderService) UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		return order, nil
	}
	if !transitionAllowed(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if s.notification != nil {
		if err := s.notification.NotifyStatusChange(order, status); err != nil {
			logger.Error("Failed to notify customer of status change", err, map[string]interface{}{
				"order_id": order.ID,
				"status":   status,
			})
		}
	}

	return order, nil
}

// UpdateShipping edits the shipping snapshot of a pending order
func (s *orderService) UpdateShipping(id uint, input CheckoutInput) (*model.Order, error) {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderAlreadyFinalized
	}

	if input.Name != "" {
		order.ShippingName = input.Name
	}
	if input.Phone != "" {
		order.ShippingPhone = input.Phone
	}
	if input.Address != "" {
		order.ShippingAddress = input.Address
	}
	if input.City != "" {
		order.ShippingCity = input.City
	}
	if input.Notes != "" {
		order.Notes = input.Notes
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) DeleteOrder(id uint) error {
	if _, err := s.GetOrderByID(id); err != nil {
		return err
	}
	return s.orderRepo.Delete(id)
}

// resolveCustomer reuses the record carrying the checkout phone number and
// creates one otherwise. Contact details refresh on every order.
func (s *orderService) resolveCustomer(input CheckoutInput) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByPhone(input.Phone)
	if err != nil {
		return nil, err
	}

	if customer == nil {
		customer = &model.Customer{
			Name:              input.Name,
			Phone:             input.Phone,
			Email:             input.Email,
			Address:           input.Address,
			City:              input.City,
			ContactPreference: input.ContactPreference,
		}
		if customer.ContactPreference == "" {
			customer.ContactPreference = model.ContactEmail
		}
		if err := s.customerRepo.Create(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Address = input.Address
	customer.City = input.City
	if input.ContactPreference != "" {
		customer.ContactPreference = input.ContactPreference
	}
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func transitionAllowed(from, to model.OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
