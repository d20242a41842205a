package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewhaven/coffee-shop-api/controllers"
	"github.com/brewhaven/coffee-shop-api/middlewares"
	"github.com/brewhaven/coffee-shop-api/services"
)

// SetupRouter wires every route of the API. Middleware is registered
// before any route so it applies across the board.
func SetupRouter(db *gorm.DB, simulator *services.PaymentSimulator, tracker services.PaymentTracker, carts services.SessionCartStore, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authController := controllers.NewAuthController(db)
	productController := controllers.NewProductController(db)
	cartController := controllers.NewCartController(db, carts)
	orderController := controllers.NewOrderController(db, simulator)
	khqrController := controllers.NewKHQRController(db, simulator, tracker)
	adminController := controllers.NewAdminController(db)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "BrewHaven Coffee API",
			"version": "1.0.0",
			"docs":    "/api/v1",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middlewares.NewRateLimiter(100, 60).RateLimit())
	{
		v1.GET("/products", productController.GetProducts)
		v1.GET("/products/categories", productController.GetCategories)
		v1.GET("/products/category/:category", productController.GetProductsByCategory)
		v1.GET("/products/:product_id", productController.GetProduct)

		v1.GET("/cart", cartController.GetCartItems)
		v1.POST("/cart", cartController.AddCartItem)
		v1.DELETE("/cart/:cart_item_id", cartController.DeleteCartItem)
		v1.DELETE("/cart", cartController.ClearCart)

		v1.GET("/session-cart/:session_id", cartController.GetSessionCart)
		v1.POST("/session-cart/:session_id", cartController.AddSessionCartItem)
		v1.DELETE("/session-cart/:session_id/items/:item_id", cartController.RemoveSessionCartItem)
		v1.DELETE("/session-cart/:session_id", cartController.ClearSessionCart)

		v1.POST("/orders", orderController.CreateOrder)
		v1.GET("/orders/:order_number", orderController.GetOrderByNumber)

		v1.POST("/khqr/generate", khqrController.GenerateKHQR)
		v1.GET("/khqr/status/:order_number", khqrController.PaymentStatus)
		v1.POST("/payments/:order_number/simulate-paid", khqrController.SimulatePaid)
		v1.GET("/payments/active", khqrController.ActivePayments)
	}

	admin := v1.Group("/admin")
	{
		admin.POST("/login", middlewares.NewLoginRateLimiter(), authController.Login)

		authed := admin.Group("")
		authed.Use(middlewares.AdminAuth(db))
		{
			authed.GET("/me", authController.Me)

			authed.GET("/dashboard/stats", adminController.GetDashboardStats)
			authed.GET("/dashboard/order-stats", adminController.GetOrderStats)

			authed.GET("/products", productController.AdminGetProducts)
			authed.POST("/products", productController.CreateProduct)
			authed.POST("/products/bulk", productController.BulkImportProducts)
			authed.PUT("/products/:product_id", productController.UpdateProduct)
			authed.DELETE("/products/:product_id", productController.DeleteProduct)

			authed.GET("/orders", orderController.GetAllOrders)
			authed.GET("/orders/search", orderController.SearchOrders)
			authed.GET("/orders/by-date-range", orderController.GetOrdersByDateRange)
			authed.GET("/orders/:order_id", orderController.GetOrderByID)
			authed.PUT("/orders/:order_id", orderController.UpdateOrder)
			authed.PUT("/orders/:order_id/status", orderController.UpdateOrderStatus)

			authed.POST("/payments/:order_number/mark-paid", orderController.MarkOrderPaid)
			authed.POST("/payments/:order_number/mark-refunded", orderController.MarkOrderRefunded)

			authed.GET("/cart", cartController.GetCartItems)

			users := authed.Group("/users")
			users.Use(middlewares.SuperAdminOnly())
			{
				users.POST("", adminController.CreateAdminUser)
				users.GET("", adminController.GetAdminUsers)
				users.GET("/:admin_id", adminController.GetAdminUser)
				users.PUT("/:admin_id", adminController.UpdateAdminUser)
				users.DELETE("/:admin_id", adminController.DeleteAdminUser)
			}
		}
	}

	return r
}
