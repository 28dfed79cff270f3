package service

import (
	"errors"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
)

type SyncResult struct {
	OrdersScanned int `json:"orders_scanned"`
	Created       int `json:"created"`
	Skipped       int `json:"skipped"`
}

type CustomerService interface {
	ListCustomers() ([]model.Customer, error)
	GetCustomerByID(id uint) (*model.Customer, error)
	UpdateCustomer(customer *model.Customer) error
	DeleteCustomer(id uint) error
	SyncFromOrders() (*SyncResult, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

func (s *customerService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) GetCustomerByID(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(customer *model.Customer) error {
	if _, err := s.GetCustomerByID(customer.ID); err != nil {
		return err
	}
	return s.customerRepo.Update(customer)
}

func (s *customerService) DeleteCustomer(id uint) error {
	if _, err := s.GetCustomerByID(id); err != nil {
		return err
	}
	return s.customerRepo.Delete(id)
}

// SyncFromOrders backfills customer records from order shipping snapshots.
// Orders are scanned oldest-first and deduplicated by phone number, so the
// earliest snapshot wins and reruns are no-ops.
func (s *customerService) SyncFromOrders() (*SyncResult, error) {
	orders, err := s.orderRepo.FindAllForSync()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{OrdersScanned: len(orders)}

	for _, order := range orders {
		if order.ShippingPhone == "" {
			result.Skipped++
			continue
		}

		existing, err := s.customerRepo.FindByPhone(order.ShippingPhone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		customer := &model.Customer{
			Name:              order.ShippingName,
			Phone:             order.ShippingPhone,
			Address:           order.ShippingAddress,
			City:              order.ShippingCity,
			ContactPreference: model.ContactEmail,
		}
		if err := s.customerRepo.Create(customer); err != nil {
			return nil, err
		}
		result.Created++
	}

	logger.Info("Customer sync from orders completed", map[string]interface{}{
		"orders_scanned": result.OrdersScanned,
		"created":        result.Created,
		"skipped":        result.Skipped,
	})
	return result, nil
}
