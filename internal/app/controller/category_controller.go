package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
)

type CategoryController struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryController(categoryRepo repository.CategoryRepository) *CategoryController {
	return &CategoryController{
		categoryRepo: categoryRepo,
	}
}

// ListCategories returns all categories
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryRepo.FindAll()
	if err != nil {
		log.Error("Failed to list categories", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}
