package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/config"
	"github.com/soumya813/SwaadGharKa/internal/database"
	"github.com/soumya813/SwaadGharKa/internal/handlers"
	"github.com/soumya813/SwaadGharKa/internal/middleware"
	"github.com/soumya813/SwaadGharKa/internal/pricing"
	"github.com/soumya813/SwaadGharKa/internal/redis"
	"github.com/soumya813/SwaadGharKa/internal/repository"
	"github.com/soumya813/SwaadGharKa/internal/services"
	"github.com/soumya813/SwaadGharKa/pkg/gateway"
	"github.com/soumya813/SwaadGharKa/pkg/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	gatewayTimeout := time.Duration(cfg.GatewayTimeoutSec) * time.Second

	// Payment gateway adapters. The simulated UPI adapter is for demo and
	// development only and is never registered in production.
	gateways := gateway.NewRegistry()
	gateways.Register(gateway.NewRazorpayClient(cfg.RazorpayAPIURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, gatewayTimeout))
	gateways.Register(gateway.NewStripeClient(cfg.StripeAPIURL, cfg.StripeSecretKey, gatewayTimeout))
	if !cfg.IsProduction() {
		gateways.Register(gateway.NewSimulatedUPIClient(0.9))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	menuService := services.NewMenuService(menuRepo)
	pricingEngine := pricing.NewEngine(pricing.Config{
		TaxRateBps:        cfg.TaxRateBps,
		DeliveryFee:       cfg.DeliveryFee,
		FreeDeliveryAbove: cfg.FreeDeliveryAbove,
		PackagingFee:      cfg.PackagingFee,
	})
	orderService := services.NewOrderService(orderRepo, menuService, pricingEngine, redisClient, cfg.OrderNumberPrefix)
	paymentService := services.NewPaymentService(orderRepo, gateways, redisClient, cfg.RazorpayKeySecret, gatewayTimeout)

	tokenMaker := token.NewMaker(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// Daily order counters reset at midnight
	resetJob := services.NewDailyResetJob(menuRepo)
	resetJob.Start()
	defer resetJob.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokenMaker)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	protect := middleware.Protect(tokenMaker, userService)
	optionalAuth := middleware.OptionalAuth(tokenMaker, userService)
	adminOnly := middleware.AdminOnly()

	limitWindow := time.Duration(cfg.RateLimitWindowMin) * time.Minute
	loginLimit := middleware.RateLimit(redisClient, "login", cfg.RateLimitMax, limitWindow)
	orderLimit := middleware.RateLimit(redisClient, "order_create", cfg.RateLimitMax, limitWindow)
	paymentLimit := middleware.RateLimit(redisClient, "payment", cfg.RateLimitMax, limitWindow)

	// Setup routes
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "status": "ok"})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", loginLimit, authHandler.Register)
			auth.POST("/login", loginLimit, authHandler.Login)
			auth.GET("/me", protect, authHandler.Me)
			auth.PUT("/me", protect, authHandler.UpdateProfile)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", optionalAuth, menuHandler.List)
			menu.GET("/featured/items", menuHandler.Featured)
			menu.GET("/special/items", menuHandler.Special)
			menu.GET("/category/:category", menuHandler.ByCategory)
			menu.GET("/:id", optionalAuth, menuHandler.Get)

			menu.POST("", protect, adminOnly, menuHandler.Create)
			menu.PUT("/:id", protect, adminOnly, menuHandler.Update)
			menu.DELETE("/:id", protect, adminOnly, menuHandler.Delete)
		}

		orders := api.Group("/orders", protect)
		{
			orders.POST("", orderLimit, orderHandler.Create)
			orders.GET("", orderHandler.ListMine)
			orders.GET("/admin/all", adminOnly, orderHandler.ListAll)
			orders.GET("/:id", orderHandler.Get)
			orders.PUT("/:id/cancel", orderHandler.Cancel)
			orders.PUT("/:id/review", orderHandler.Review)
			orders.PUT("/:id/status", adminOnly, orderHandler.UpdateStatus)
		}

		payments := api.Group("/payments", protect)
		{
			payments.POST("/:gateway/create-intent", paymentLimit, paymentHandler.CreateIntent)
			payments.POST("/:gateway/confirm", paymentHandler.Confirm)
			payments.POST("/razorpay/verify", paymentHandler.VerifyAndConfirm)
			payments.POST("/cod/confirm", paymentHandler.ConfirmCOD)
			payments.POST("/refund", paymentHandler.Refund)
			payments.GET("/status/:orderId", paymentHandler.Status)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
