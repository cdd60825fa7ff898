package router

import (
	"github.com/gin-gonic/gin"
	"github.com/greenharvest/greenharvest-backend/config"
	"github.com/greenharvest/greenharvest-backend/internal/app/controller"
	"github.com/greenharvest/greenharvest-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	farmerController   *controller.FarmerController
	productController  *controller.ProductController
	cartController     *controller.CartController
	bookingController  *controller.BookingController
	orderController    *controller.OrderController
	wishlistController *controller.WishlistController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	farmerController *controller.FarmerController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	bookingController *controller.BookingController,
	orderController *controller.OrderController,
	wishlistController *controller.WishlistController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		farmerController:   farmerController,
		productController:  productController,
		cartController:     cartController,
		bookingController:  bookingController,
		orderController:    orderController,
		wishlistController: wishlistController,
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

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GreenHarvest API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.OptionalAuthenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		farmers := v1.Group("/farmers")
		{
			farmers.GET("", r.farmerController.ListFarmers)

			// Authenticated farmer endpoints come before the public
			// :id route so "me" is not captured as an id.
			me := farmers.Group("/me")
			me.Use(r.authMiddleware.Authenticate())
			{
				me.GET("/products", r.productController.MyProducts)
				me.GET("/bookings", r.bookingController.ListFarmBookings)
				me.POST("/bookings/:id/confirm", r.bookingController.ConfirmBooking)
				me.POST("/bookings/:id/reject", r.bookingController.RejectBooking)
				me.POST("/bookings/:id/complete", r.bookingController.CompleteBooking)
			}

			farmers.POST("/apply", r.authMiddleware.Authenticate(), r.farmerController.Apply)
			farmers.GET("/:id", r.farmerController.GetFarmer)
		}

		v1.GET("/categories", r.productController.ListCategories)

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/:id/related", r.productController.GetRelatedProducts)

			// Creation requires an owning farm, so admins without one
			// cannot use this route.
			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("farmer"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("farmer", "admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("farmer", "admin"),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddItem)
			cart.PUT("/:id", r.cartController.UpdateItem)
			cart.DELETE("/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		bookings := v1.Group("/bookings")
		bookings.Use(r.authMiddleware.Authenticate())
		{
			bookings.GET("", r.bookingController.ListMyBookings)
			bookings.POST("", r.bookingController.CreateBooking)
			bookings.POST("/:id/cancel", r.bookingController.CancelBooking)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.ListMyOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("", r.orderController.CreateOrder)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.DELETE("/:product_id", r.wishlistController.RemoveFromWishlist)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/farmers", r.farmerController.ListApplications)
			admin.POST("/farmers/:id/review", r.farmerController.ReviewApplication)
			admin.PUT("/orders/:id/status", r.orderController.UpdateOrderStatus)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
