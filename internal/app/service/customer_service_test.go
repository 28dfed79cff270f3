package service

import (
	"testing"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCustomerTest(t *testing.T) (*gorm.DB, CustomerService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customerRepo := repository.NewCustomerRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	return testDB, NewCustomerService(customerRepo, orderRepo)
}

func seedOrder(testDB *gorm.DB, customerID uint, name, phone string) {
	testDB.Create(&model.Order{
		CustomerID:    customerID,
		Status:        model.OrderStatusDelivered,
		TotalAmount:   10,
		ShippingName:  name,
		ShippingPhone: phone,
	})
}

func TestCustomerService_SyncFromOrders_CreatesMissing(t *testing.T) {
	testDB, svc := setupCustomerTest(t)
	defer db.CleanupTestDB(testDB)

	// Existing customer with an order
	existing := &model.Customer{Name: "Rana", Phone: "+96170000030", ContactPreference: model.ContactEmail}
	testDB.Create(existing)
	seedOrder(testDB, existing.ID, "Rana", "+96170000030")

	// Order whose shipping phone has no customer record
	seedOrder(testDB, existing.ID, "Omar", "+96170000031")

	result, err := svc.SyncFromOrders()
	require.NoError(t, err)

	assert.Equal(t, 2, result.OrdersScanned)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)

	created, err := repository.NewCustomerRepository(testDB).FindByPhone("+96170000031")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Omar", created.Name)
	assert.Equal(t, model.ContactEmail, created.ContactPreference)
}

func TestCustomerService_SyncFromOrders_Idempotent(t *testing.T) {
	testDB, svc := setupCustomerTest(t)
	defer db.CleanupTestDB(testDB)

	anchor := &model.Customer{Name: "Rana", Phone: "+96170000032", ContactPreference: model.ContactEmail}
	testDB.Create(anchor)
	seedOrder(testDB, anchor.ID, "Omar", "+96170000033")
	seedOrder(testDB, anchor.ID, "Omar Again", "+96170000033")

	first, err := svc.SyncFromOrders()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	// Rerun creates nothing
	second, err := svc.SyncFromOrders()
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)

	var count int64
	testDB.Model(&model.Customer{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCustomerService_GetCustomerByID_NotFound(t *testing.T) {
	testDB, svc := setupCustomerTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.GetCustomerByID(9999)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
