package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/config"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/controller"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	categoryController *controller.CategoryController
	cartController     *controller.CartController
	wishlistController *controller.WishlistController
	orderController    *controller.OrderController
	customerController *controller.CustomerController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	orderController *controller.OrderController,
	customerController *controller.CustomerController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		categoryController: categoryController,
		cartController:     cartController,
		wishlistController: wishlistController,
		orderController:    orderController,
		customerController: customerController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SessionMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "healthy",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth/admin")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/session", r.authController.Session)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/sale", r.productController.GetSaleProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.POST("/images", r.productController.GetProductImages)
		}

		v1.GET("/categories", r.categoryController.ListCategories)

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist")
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("/toggle", r.wishlistController.ToggleWishlistItem)
			wishlist.DELETE("", r.wishlistController.ClearWishlist)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.PUT("/:id", r.orderController.UpdateOrder)
			orders.DELETE("/:id", r.authMiddleware.RequireAdmin(), r.orderController.DeleteOrder)
		}

		admin := v1.Group("/admin", r.authMiddleware.RequireAdmin())
		{
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
			admin.POST("/products/:id/variants", r.productController.AddProductVariant)
			admin.PUT("/products/:id/variants/:variantId", r.productController.UpdateProductVariant)
			admin.DELETE("/products/:id/variants/:variantId", r.productController.DeleteProductVariant)
			admin.POST("/products/images", r.uploadController.UploadProductImage)

			admin.GET("/orders", r.orderController.ListOrders)
			admin.PUT("/orders/:id/status", r.orderController.UpdateOrderStatus)
			admin.GET("/orders/:id/notifications", r.orderController.GetOrderNotifications)

			admin.GET("/customers", r.customerController.ListCustomers)
			admin.GET("/customers/:id", r.customerController.GetCustomer)
			admin.PUT("/customers/:id", r.customerController.UpdateCustomer)
			admin.DELETE("/customers/:id", r.customerController.DeleteCustomer)
			admin.POST("/customers/sync-from-orders", r.customerController.SyncFromOrders)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
