package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/service"
	apperrors "github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/errors"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/sanitize"
)

type OrderController struct {
	orderService        service.OrderService
	notificationService service.NotificationService
}

func NewOrderController(orderService service.OrderService, notificationService service.NotificationService) *OrderController {
	return &OrderController{
		orderService:        orderService,
		notificationService: notificationService,
	}
}

type CheckoutRequest struct {
	Name              string                  `json:"name" binding:"required"`
	Phone             string                  `json:"phone" binding:"required"`
	Email             string                  `json:"email" binding:"omitempty,email"`
	Address           string                  `json:"address" binding:"required"`
	City              string                  `json:"city"`
	Notes             string                  `json:"notes"`
	ContactPreference model.ContactPreference `json:"contact_preference" binding:"omitempty,oneof=email whatsapp"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// CreateOrder checks out the session's cart
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	scope := repository.CartScope{SessionID: middleware.GetSessionID(c)}
	order, err := ctrl.orderService.CreateOrder(scope, service.CheckoutInput{
		Name:              sanitize.Input(req.Name),
		Phone:             sanitize.Input(req.Phone),
		Email:             req.Email,
		Address:           sanitize.Input(req.Address),
		City:              sanitize.Input(req.City),
		Notes:             sanitize.Input(req.Notes),
		ContactPreference: req.ContactPreference,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			apperrors.BadRequest(c, apperrors.OrderEmptyCart, "Cart is empty")
			return
		}
		log.Error("Failed to create order", err, map[string]interface{}{
			"session_id": scope.SessionID,
		})
		apperrors.InternalError(c, "Failed to create order")
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"order":   order,
	})
}

// ListOrders returns orders for the back office (admin)
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.OrderFilter{}

	if statusStr := c.Query("status"); statusStr != "" {
		status := model.OrderStatus(statusStr)
		filter.Status = &status
	}
	if customerStr := c.Query("customer_id"); customerStr != "" {
		id, err := strconv.ParseUint(customerStr, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid customer ID")
			return
		}
		customerID := uint(id)
		filter.CustomerID = &customerID
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	orders, total, err := ctrl.orderService.ListOrders(filter)
	if err != nil {
		log.Error("Failed to list orders", err)
		apperrors.InternalError(c, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// GetOrder returns one order with its items
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateOrder edits the shipping details of a pending order
// PUT /api/v1/orders/:id
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.UpdateShipping(uint(id), service.CheckoutInput{
		Name:    sanitize.Input(req.Name),
		Phone:   sanitize.Input(req.Phone),
		Email:   req.Email,
		Address: sanitize.Input(req.Address),
		City:    sanitize.Input(req.City),
		Notes:   sanitize.Input(req.Notes),
	})
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		if errors.Is(err, service.ErrOrderAlreadyFinalized) {
			apperrors.Conflict(c, apperrors.OrderInvalidStatus, "Only pending orders can be edited")
			return
		}
		log.Error("Failed to update order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated",
		"order":   order,
	})
}

// UpdateOrderStatus transitions the order and notifies the customer (admin)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		if errors.Is(err, service.ErrInvalidTransition) {
			apperrors.Conflict(c, apperrors.OrderInvalidTransition, "Order cannot move to that status")
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   req.Status,
		})
		apperrors.InternalError(c, "Failed to update order status")
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// GetOrderNotifications lists the notification attempts for an order (admin)
// GET /api/v1/admin/orders/:id/notifications
func (ctrl *OrderController) GetOrderNotifications(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	if _, err := ctrl.orderService.GetOrderByID(uint(id)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	records, err := ctrl.notificationService.GetHistory(uint(id))
	if err != nil {
		log.Error("Failed to fetch notification history", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch notification history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": records,
		"count":         len(records),
	})
}

// DeleteOrder removes an order (admin)
// DELETE /api/v1/orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	if err := ctrl.orderService.DeleteOrder(uint(id)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted",
	})
}
