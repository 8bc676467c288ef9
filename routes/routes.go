package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shop-service/config"
	"shop-service/controllers"
	"shop-service/middleware"
	"shop-service/notifications"
	"shop-service/repository"
	"shop-service/services"
)

// Register wires repositories, services and controllers onto the router
func Register(
	r *gin.Engine,
	cfg config.Config,
	db *gorm.DB,
	hub *notifications.Hub,
	broadcaster notifications.Broadcaster,
	tokens *services.TokenService,
	logger *zap.Logger,
) {
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	checkoutService := services.NewCheckoutService(
		db, cartRepo, orderRepo, itemRepo,
		services.NewNoopPaymentProcessor(), broadcaster, logger,
	)

	authController := controllers.NewAuthController(authService)
	shoppingController := controllers.NewShoppingController(checkoutService)
	notificationController := controllers.NewNotificationController(hub, tokens, userRepo, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	auth := r.Group("/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	shopping := r.Group("/shopping")
	shopping.Use(middleware.RequireAuth(tokens, userRepo))
	{
		shopping.GET("/items", shoppingController.ListItems)
		shopping.POST("/purchase", shoppingController.Purchase)
		shopping.GET("/cart/confirm", shoppingController.CartConfirm)
		shopping.POST("/cart/confirm", shoppingController.ConfirmCheckout)
		shopping.POST("/cart/items/:item_id/remove",
			middleware.RequireSuperuser(), shoppingController.RemoveCartItem)
		shopping.GET("/orders", shoppingController.ListOrders)
	}

	// Authentication is checked inside the handler so anonymous connections
	// can be closed at the WebSocket level instead of failing the upgrade.
	r.GET("/ws/notifications", notificationController.Stream)
}
