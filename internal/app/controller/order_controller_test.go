package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/service"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	customerRepo := repository.NewCustomerRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)
	notificationService := service.NewNotificationService(notificationRepo, nil, nil)
	variantRepo := repository.NewVariantRepository(testDB)
	orderService := service.NewOrderService(orderRepo, cartRepo, customerRepo, variantRepo, notificationService)
	orderController := NewOrderController(orderService, notificationService)

	category := &model.Category{Name: "Pajamas", Slug: "pajamas"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		Name:          "Star Pajama Set",
		Price:         24.99,
		CategoryID:    category.ID,
		StockQuantity: 20,
	}
	require.NoError(t, testDB.Create(product).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionIDKey, "test-session")
		c.Next()
	})

	return orderController, router, testDB, product
}

func addCartItem(t *testing.T, testDB *gorm.DB, productID uint, quantity int) {
	t.Helper()
	item := &model.CartItem{
		SessionID: "test-session",
		ProductID: productID,
		Size:      "2-3",
		Color:     "blue",
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	require.NoError(t, testDB.Create(item).Error)
}

func TestOrderController_CreateOrder_Success(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)
	addCartItem(t, testDB, product.ID, 2)

	router.POST("/orders", controller.CreateOrder)

	body := `{"name": "Rana K", "phone": "+96170123456", "address": "Main St 4", "city": "Beirut"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", newJSONBody(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	order := response["order"].(map[string]interface{})
	assert.Equal(t, "pending", order["status"])
	assert.InDelta(t, 49.98, order["total_amount"], 0.001)

	// Checkout clears the cart
	var remaining int64
	testDB.Model(&model.CartItem{}).Where("session_id = ?", "test-session").Count(&remaining)
	assert.Equal(t, int64(0), remaining)
}

func TestOrderController_CreateOrder_EmptyCart(t *testing.T) {
	controller, router, _, _ := setupOrderControllerTest(t)

	router.POST("/orders", controller.CreateOrder)

	body := `{"name": "Rana K", "phone": "+96170123456", "address": "Main St 4"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", newJSONBody(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_EMPTY_CART")
}

func TestOrderController_CreateOrder_MissingPhone(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)
	addCartItem(t, testDB, product.ID, 1)

	router.POST("/orders", controller.CreateOrder)

	body := `{"name": "Rana K", "address": "Main St 4"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", newJSONBody(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_GetOrder_NotFound(t *testing.T) {
	controller, router, _, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", controller.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_UpdateOrderStatus_Success(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)
	addCartItem(t, testDB, product.ID, 1)

	router.POST("/orders", controller.CreateOrder)
	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	body := `{"name": "Rana K", "phone": "+96170123456", "address": "Main St 4"}`
	createReq := httptest.NewRequest(http.MethodPost, "/orders", newJSONBody(body))
	createReq.Header.Set("Content-Type", "application/json")
	createW := httptest.NewRecorder()
	router.ServeHTTP(createW, createReq)
	require.Equal(t, http.StatusCreated, createW.Code)

	var createResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(createW.Body.Bytes(), &createResponse))
	orderID := uint(createResponse["order"].(map[string]interface{})["id"].(float64))

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/orders/%d/status", orderID), newJSONBody(`{"status": "confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "confirmed", response["order"].(map[string]interface{})["status"])
}

func TestOrderController_UpdateOrderStatus_InvalidTransition(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)
	addCartItem(t, testDB, product.ID, 1)

	router.POST("/orders", controller.CreateOrder)
	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	body := `{"name": "Rana K", "phone": "+96170123456", "address": "Main St 4"}`
	createReq := httptest.NewRequest(http.MethodPost, "/orders", newJSONBody(body))
	createReq.Header.Set("Content-Type", "application/json")
	createW := httptest.NewRecorder()
	router.ServeHTTP(createW, createReq)
	require.Equal(t, http.StatusCreated, createW.Code)

	var createResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(createW.Body.Bytes(), &createResponse))
	orderID := uint(createResponse["order"].(map[string]interface{})["id"].(float64))

	// Pending orders cannot jump straight to delivered
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/orders/%d/status", orderID), newJSONBody(`{"status": "delivered"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_INVALID_TRANSITION")
}

func TestOrderController_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	controller, router, _, _ := setupOrderControllerTest(t)

	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	req := httptest.NewRequest(http.MethodPut, "/orders/1/status", newJSONBody(`{"status": "teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
