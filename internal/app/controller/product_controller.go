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

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name          string               `json:"name" binding:"required"`
	Description   string               `json:"description"`
	Price         float64              `json:"price" binding:"required,gt=0"`
	SalePrice     *float64             `json:"sale_price"`
	OnSale        bool                 `json:"on_sale"`
	Gender        model.ProductGender  `json:"gender"`
	CategoryID    uint                 `json:"category_id" binding:"required"`
	StockQuantity int                  `json:"stock_quantity"`
	ImageURL      string               `json:"image_url"`
	Variants      []CreateVariantInput `json:"variants"`
}

type CreateVariantInput struct {
	SizeOrAge       string  `json:"size_or_age" binding:"required"`
	Color           string  `json:"color" binding:"required"`
	PriceAdjustment float64 `json:"price_adjustment"`
	StockQuantity   int     `json:"stock_quantity"`
}

type ProductImagesRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required,min=1"`
}

// ListProducts returns the catalog with filtering, search and sorting
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductListOptions{
		Search:          c.Query("search"),
		Sort:            service.ProductSort(c.Query("sort")),
		SortAscending:   c.Query("order") != "desc",
		IncludeVariants: c.Query("include_variants") == "true",
	}

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		id, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
			return
		}
		categoryID := uint(id)
		opts.CategoryID = &categoryID
	}

	if genderStr := c.Query("gender"); genderStr != "" {
		gender := model.ProductGender(genderStr)
		if gender != model.GenderBoy && gender != model.GenderGirl && gender != model.GenderUnisex {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid gender filter")
			return
		}
		opts.Gender = &gender
	}

	if onSaleStr := c.Query("on_sale"); onSaleStr != "" {
		onSale := onSaleStr == "true"
		opts.OnSale = &onSale
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			opts.Offset = offset
		}
	}

	products, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		if sanitize.IsSearchError(err) {
			log.Warn("Rejected search input", map[string]interface{}{
				"search": opts.Search,
				"error":  err.Error(),
			})
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidSearch, err.Error())
			return
		}
		log.Error("Failed to list products", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with its variants
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetSaleProducts returns products currently on sale. Failures degrade to an
// empty list so the storefront sale section never errors.
// GET /api/v1/products/sale
func (ctrl *ProductController) GetSaleProducts(c *gin.Context) {
	products := ctrl.productService.GetSaleProducts()

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductImages is the batch image lookup for product grids
// POST /api/v1/products/images
func (ctrl *ProductController) GetProductImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	products, err := ctrl.productService.GetProductsByIDs(req.ProductIDs)
	if err != nil {
		log.Error("Failed to fetch product images", err, map[string]interface{}{
			"count": len(req.ProductIDs),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product images",
		})
		return
	}

	images := make(map[uint]string, len(products))
	for _, p := range products {
		images[p.ID] = p.ImageURL
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
	})
}

// CreateProduct creates a product with its variants (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = model.GenderUnisex
	}

	product := &model.Product{
		Name:          sanitize.Input(req.Name),
		Description:   sanitize.Input(req.Description),
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		OnSale:        req.OnSale,
		Gender:        gender,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		if errors.Is(err, service.ErrCodeExhausted) {
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ProductCodeExhausted, "Could not assign a product code")
			return
		}
		log.Error("Failed to create product", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	for _, v := range req.Variants {
		variant := &model.ProductVariant{
			SizeOrAge:       v.SizeOrAge,
			Color:           v.Color,
			PriceAdjustment: v.PriceAdjustment,
			StockQuantity:   v.StockQuantity,
		}
		if err := ctrl.productService.AddVariant(product.ID, variant); err != nil {
			log.Error("Failed to create product variant", err, map[string]interface{}{
				"product_id":  product.ID,
				"size_or_age": v.SizeOrAge,
				"color":       v.Color,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create product variant",
			})
			return
		}
	}

	created, err := ctrl.productService.GetProductByID(product.ID)
	if err != nil {
		created = product
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"variants":   len(req.Variants),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"product": created,
	})
}

// UpdateProduct updates a product (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = model.GenderUnisex
	}

	product := &model.Product{
		ID:            uint(id),
		Name:          sanitize.Input(req.Name),
		Description:   sanitize.Input(req.Description),
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		OnSale:        req.OnSale,
		Gender:        gender,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
		"product": product,
	})
}

// DeleteProduct removes a product (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// AddProductVariant adds a size/color variant to a product (admin)
// POST /api/v1/admin/products/:id/variants
func (ctrl *ProductController) AddProductVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req CreateVariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	variant := &model.ProductVariant{
		SizeOrAge:       sanitize.Input(req.SizeOrAge),
		Color:           sanitize.Input(req.Color),
		PriceAdjustment: req.PriceAdjustment,
		StockQuantity:   req.StockQuantity,
	}

	if err := ctrl.productService.AddVariant(uint(productID), variant); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrCodeExhausted) {
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ProductCodeExhausted, "Variant code space exhausted")
			return
		}
		log.Error("Failed to add variant", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to add variant")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Variant added",
		"variant": variant,
	})
}

// UpdateProductVariant edits a variant; the shared code re-keys when the
// size/color combination changes (admin)
// PUT /api/v1/admin/products/:id/variants/:variantId
func (ctrl *ProductController) UpdateProductVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	variantID, err := strconv.ParseUint(c.Param("variantId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant ID")
		return
	}

	var req CreateVariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	variant := &model.ProductVariant{
		ID:              uint(variantID),
		SizeOrAge:       sanitize.Input(req.SizeOrAge),
		Color:           sanitize.Input(req.Color),
		PriceAdjustment: req.PriceAdjustment,
		StockQuantity:   req.StockQuantity,
	}

	if err := ctrl.productService.UpdateVariant(variant); err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
			return
		}
		log.Error("Failed to update variant", err, map[string]interface{}{
			"variant_id": variantID,
		})
		apperrors.InternalError(c, "Failed to update variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant updated",
		"variant": variant,
	})
}

// DeleteProductVariant removes a variant (admin)
// DELETE /api/v1/admin/products/:id/variants/:variantId
func (ctrl *ProductController) DeleteProductVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	variantID, err := strconv.ParseUint(c.Param("variantId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid variant ID")
		return
	}

	if err := ctrl.productService.DeleteVariant(uint(variantID)); err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
			return
		}
		log.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": variantID,
		})
		apperrors.InternalError(c, "Failed to delete variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant deleted",
	})
}
