package service

import (
	"testing"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderService, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	customerRepo := repository.NewCustomerRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)

	svc := NewOrderService(orderRepo, cartRepo, customerRepo, variantRepo, nil)

	category := &model.Category{Name: "Pajamas", Slug: "pajamas"}
	testDB.Create(category)

	sale := 11.99
	product := &model.Product{
		Name:          "Star Pajamas",
		Price:         19.99,
		SalePrice:     &sale,
		OnSale:        true,
		CategoryID:    category.ID,
		StockQuantity: 20,
	}
	testDB.Create(product)

	return testDB, svc, product
}

func fillCart(t *testing.T, testDB *gorm.DB, product *model.Product, sessionID string) {
	t.Helper()
	testDB.Create(&model.CartItem{
		SessionID: sessionID,
		ProductID: product.ID,
		Size:      "4-5",
		Color:     "navy",
		Quantity:  2,
		AddedAt:   time.Now(),
	})
}

func TestOrderService_CreateOrder_SnapshotsCart(t *testing.T) {
	testDB, svc, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	fillCart(t, testDB, product, "session-1")
	scope := repository.CartScope{SessionID: "session-1"}

	order, err := svc.CreateOrder(scope, CheckoutInput{
		Name:              "Rana",
		Phone:             "+96170000020",
		Email:             "rana@example.com",
		Address:           "Main St 1",
		City:              "Beirut",
		ContactPreference: model.ContactWhatsApp,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.OrderItems, 1)
	// Sale price at checkout time is the snapshot
	assert.Equal(t, 11.99, order.OrderItems[0].UnitPrice)
	assert.Equal(t, "Star Pajamas", order.OrderItems[0].ProductName)
	assert.InDelta(t, 23.98, order.TotalAmount, 0.001)

	// Cart cleared after checkout
	var remaining []model.CartItem
	testDB.Where("session_id = ?", "session-1").Find(&remaining)
	assert.Len(t, remaining, 0)

	// Customer created from checkout details
	assert.Equal(t, "Rana", order.Customer.Name)
	assert.Equal(t, model.ContactWhatsApp, order.Customer.ContactPreference)
}

func TestOrderService_CreateOrder_SnapshotsVariantAdjustedPrice(t *testing.T) {
	testDB, svc, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	variant := &model.ProductVariant{
		ProductID:       product.ID,
		SizeOrAge:       "4-5",
		Color:           "navy",
		PriceAdjustment: 3.00,
		StockQuantity:   20,
	}
	require.NoError(t, testDB.Create(variant).Error)

	fillCart(t, testDB, product, "session-1")
	scope := repository.CartScope{SessionID: "session-1"}

	order, err := svc.CreateOrder(scope, CheckoutInput{
		Name:    "Rana",
		Phone:   "+96170000021",
		Address: "Main St 1",
	})
	require.NoError(t, err)

	// Sale price plus the variant adjustment, frozen into the line
	require.Len(t, order.OrderItems, 1)
	assert.InDelta(t, 14.99, order.OrderItems[0].UnitPrice, 0.001)
	assert.InDelta(t, 29.98, order.TotalAmount, 0.001)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	testDB, svc, _ := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.CreateOrder(repository.CartScope{SessionID: "empty"}, CheckoutInput{
		Name:  "Rana",
		Phone: "+96170000021",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrder_ReusesCustomerByPhone(t *testing.T) {
	testDB, svc, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	fillCart(t, testDB, product, "session-1")
	first, err := svc.CreateOrder(repository.CartScope{SessionID: "session-1"}, CheckoutInput{
		Name: "Rana", Phone: "+96170000022",
	})
	require.NoError(t, err)

	fillCart(t, testDB, product, "session-2")
	second, err := svc.CreateOrder(repository.CartScope{SessionID: "session-2"}, CheckoutInput{
		Name: "Rana K", Phone: "+96170000022",
	})
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)

	var count int64
	testDB.Model(&model.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrderService_UpdateStatus_ValidTransition(t *testing.T) {
	testDB, svc, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	fillCart(t, testDB, product, "session-1")
	order, err := svc.CreateOrder(repository.CartScope{SessionID: "session-1"}, CheckoutInput{
		Name: "Rana", Phone: "+96170000023",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	testDB, svc, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	fillCart(t, testDB, product, "session-1")
	order, err := svc.CreateOrder(repository.CartScope{SessionID: "session-1"}, CheckoutInput{
		Name: "Rana", Phone: "+96170000024",
	})
	require.NoError(t, err)

	// Pending cannot jump straight to delivered
	_, err = svc.UpdateStatus(order.ID, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Terminal states reject further transitions
	_, err = svc.UpdateStatus(order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(order.ID, model.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_GetOrderByID_NotFound(t *testing.T) {
	testDB, svc, _ := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.GetOrderByID(9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	testDB, svc, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	fillCart(t, testDB, product, "session-1")
	order, err := svc.CreateOrder(repository.CartScope{SessionID: "session-1"}, CheckoutInput{
		Name: "Rana", Phone: "+96170000025",
	})
	require.NoError(t, err)

	err = svc.DeleteOrder(order.ID)
	assert.NoError(t, err)

	_, err = svc.GetOrderByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
