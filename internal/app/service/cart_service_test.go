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

func setupCartServiceTest(t *testing.T) (*gorm.DB, CartService, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)

	svc := NewCartService(cartRepo, productRepo, variantRepo, 7*24*time.Hour)

	category := &model.Category{Name: "T-Shirts", Slug: "t-shirts"}
	testDB.Create(category)

	product := &model.Product{
		Name:          "Dino Tee",
		Price:         14.99,
		CategoryID:    category.ID,
		StockQuantity: 10,
	}
	testDB.Create(product)

	return testDB, svc, product
}

func TestCartService_AddItem_CreatesRow(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	scope := repository.CartScope{SessionID: "session-1"}

	item, err := svc.AddItem(scope, product.ID, "4-5", "green", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.False(t, item.AddedAt.IsZero())
}

func TestCartService_GetCart_AppliesVariantPriceAdjustment(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	variant := &model.ProductVariant{
		ProductID:       product.ID,
		SizeOrAge:       "M",
		Color:           "red",
		PriceAdjustment: 5.00,
		StockQuantity:   10,
	}
	require.NoError(t, testDB.Create(variant).Error)

	scope := repository.CartScope{SessionID: "session-1"}

	_, err := svc.AddItem(scope, product.ID, "M", "red", 1)
	require.NoError(t, err)

	cart, err := svc.GetCart(scope)
	require.NoError(t, err)
	assert.InDelta(t, 19.99, cart.TotalPrice, 0.001)

	// A line without a variant row stays at the product's effective price
	_, err = svc.AddItem(scope, product.ID, "4-5", "green", 1)
	require.NoError(t, err)

	cart, err = svc.GetCart(scope)
	require.NoError(t, err)
	assert.InDelta(t, 19.99+14.99, cart.TotalPrice, 0.001)
}

func TestCartService_AddItem_UpsertSumsQuantity(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	scope := repository.CartScope{SessionID: "session-1"}

	first, err := svc.AddItem(scope, product.ID, "4-5", "green", 2)
	require.NoError(t, err)

	second, err := svc.AddItem(scope, product.ID, "4-5", "green", 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	// Different color is a separate line
	third, err := svc.AddItem(scope, product.ID, "4-5", "blue", 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	cart, err := svc.GetCart(scope)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 6, cart.TotalItems)
}

func TestCartService_AddItem_InsufficientStock(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	scope := repository.CartScope{SessionID: "session-1"}

	_, err := svc.AddItem(scope, product.ID, "4-5", "green", 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	scope := repository.CartScope{SessionID: "session-1"}

	_, err := svc.AddItem(scope, 9999, "4-5", "green", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateQuantity_ZeroRemoves(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	scope := repository.CartScope{SessionID: "session-1"}
	item, err := svc.AddItem(scope, product.ID, "4-5", "green", 2)
	require.NoError(t, err)

	err = svc.UpdateQuantity(scope, item.ID, 0)
	assert.NoError(t, err)

	cart, err := svc.GetCart(scope)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}

func TestCartService_UpdateQuantity_SetsAbsolute(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	scope := repository.CartScope{SessionID: "session-1"}
	item, err := svc.AddItem(scope, product.ID, "4-5", "green", 2)
	require.NoError(t, err)

	err = svc.UpdateQuantity(scope, item.ID, 7)
	require.NoError(t, err)

	cart, err := svc.GetCart(scope)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_WrongScope(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	item, err := svc.AddItem(repository.CartScope{SessionID: "session-1"}, product.ID, "4-5", "green", 2)
	require.NoError(t, err)

	err = svc.UpdateQuantity(repository.CartScope{SessionID: "session-2"}, item.ID, 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_GetCart_PrunesExpiredGuestItems(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	// Insert a row directly with a stale timestamp
	stale := &model.CartItem{
		SessionID: "session-1",
		ProductID: product.ID,
		Size:      "4-5",
		Color:     "green",
		Quantity:  1,
		AddedAt:   time.Now().Add(-8 * 24 * time.Hour),
	}
	testDB.Create(stale)

	fresh, err := svc.AddItem(repository.CartScope{SessionID: "session-1"}, product.ID, "6-7", "blue", 1)
	require.NoError(t, err)

	cart, err := svc.GetCart(repository.CartScope{SessionID: "session-1"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, fresh.ID, cart.Items[0].ID)
}

func TestCartService_MergeSessionCart_SumsOnCollision(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	customer := &model.Customer{Name: "Rana", Phone: "+96170000010", ContactPreference: model.ContactEmail}
	testDB.Create(customer)

	customerScope := repository.CartScope{CustomerID: &customer.ID}
	sessionScope := repository.CartScope{SessionID: "session-1"}

	_, err := svc.AddItem(customerScope, product.ID, "4-5", "green", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(sessionScope, product.ID, "4-5", "green", 3)
	require.NoError(t, err)
	_, err = svc.AddItem(sessionScope, product.ID, "6-7", "blue", 1)
	require.NoError(t, err)

	err = svc.MergeSessionCart("session-1", customer.ID)
	require.NoError(t, err)

	cart, err := svc.GetCart(customerScope)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 6, cart.TotalItems)

	// Session cart is gone
	sessionCart, err := svc.GetCart(sessionScope)
	require.NoError(t, err)
	assert.Len(t, sessionCart.Items, 0)
}

func TestCartService_ClearCart(t *testing.T) {
	testDB, svc, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	scope := repository.CartScope{SessionID: "session-1"}
	_, err := svc.AddItem(scope, product.ID, "4-5", "green", 2)
	require.NoError(t, err)

	err = svc.ClearCart(scope)
	assert.NoError(t, err)

	cart, err := svc.GetCart(scope)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}
