package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/service"
	apperrors "github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/errors"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/sanitize"
)

type CustomerController struct {
	customerService service.CustomerService
}

func NewCustomerController(customerService service.CustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

// ListCustomers returns all customers (admin)
// GET /api/v1/admin/customers
func (ctrl *CustomerController) ListCustomers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customers, err := ctrl.customerService.ListCustomers()
	if err != nil {
		log.Error("Failed to list customers", err)
		apperrors.InternalError(c, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

// GetCustomer returns one customer (admin)
// GET /api/v1/admin/customers/:id
func (ctrl *CustomerController) GetCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid customer ID")
		return
	}

	customer, err := ctrl.customerService.GetCustomerByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to fetch customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
	})
}

type UpdateCustomerRequest struct {
	Name              string                  `json:"name" binding:"required"`
	Phone             string                  `json:"phone" binding:"required"`
	Email             string                  `json:"email" binding:"omitempty,email"`
	Address           string                  `json:"address"`
	City              string                  `json:"city"`
	ContactPreference model.ContactPreference `json:"contact_preference" binding:"omitempty,oneof=email whatsapp"`
}

// UpdateCustomer edits a customer's contact details (admin)
// PUT /api/v1/admin/customers/:id
func (ctrl *CustomerController) UpdateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	customer := &model.Customer{
		ID:                uint(id),
		Name:              sanitize.Input(req.Name),
		Phone:             sanitize.Input(req.Phone),
		Email:             req.Email,
		Address:           sanitize.Input(req.Address),
		City:              sanitize.Input(req.City),
		ContactPreference: req.ContactPreference,
	}
	if customer.ContactPreference == "" {
		customer.ContactPreference = model.ContactEmail
	}

	if err := ctrl.customerService.UpdateCustomer(customer); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to update customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer updated",
		"customer": customer,
	})
}

// DeleteCustomer removes a customer (admin)
// DELETE /api/v1/admin/customers/:id
func (ctrl *CustomerController) DeleteCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid customer ID")
		return
	}

	if err := ctrl.customerService.DeleteCustomer(uint(id)); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted",
	})
}

// SyncFromOrders backfills customers from order history (admin)
// POST /api/v1/admin/customers/sync-from-orders
func (ctrl *CustomerController) SyncFromOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	result, err := ctrl.customerService.SyncFromOrders()
	if err != nil {
		log.Error("Customer sync from orders failed", err)
		apperrors.InternalError(c, "Customer sync failed")
		return
	}

	log.Info("Customer sync from orders finished", map[string]interface{}{
		"orders_scanned": result.OrdersScanned,
		"created":        result.Created,
		"skipped":        result.Skipped,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer sync completed",
		"result":  result,
	})
}
