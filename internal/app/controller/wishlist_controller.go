package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/service"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type ToggleWishlistRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// GetWishlist returns the session's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	scope := cartScope(c)
	items, err := ctrl.wishlistService.ListItems(scope)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"session_id": scope.SessionID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist_items": items,
		"count":          len(items),
	})
}

// ToggleWishlistItem adds the item when absent and removes it when present
// POST /api/v1/wishlist/toggle
func (ctrl *WishlistController) ToggleWishlistItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	scope := cartScope(c)
	added, err := ctrl.wishlistService.ToggleItem(scope, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to toggle wishlist item", err, map[string]interface{}{
			"session_id": scope.SessionID,
			"product_id": req.ProductID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to toggle wishlist item",
		})
		return
	}

	message := "Item removed from wishlist"
	if added {
		message = "Item added to wishlist"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"added":   added,
	})
}

// ClearWishlist empties the session's wishlist
// DELETE /api/v1/wishlist
func (ctrl *WishlistController) ClearWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	scope := cartScope(c)
	if err := ctrl.wishlistService.ClearWishlist(scope); err != nil {
		log.Error("Failed to clear wishlist", err, map[string]interface{}{
			"session_id": scope.SessionID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist cleared",
	})
}
