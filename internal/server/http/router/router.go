package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/thermopolio/thermopolio/internal/config"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/server/http/handlers"
	"github.com/thermopolio/thermopolio/internal/server/http/middleware"
)

// StreamPath is served over a websocket and bypasses response compression.
const StreamPath = "/api/notifications/stream"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.UseJSONFieldNames()
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.LimitRequestBody())
	engine.Use(middleware.Compression(StreamPath))

	cookie := middleware.SessionCookie{MaxAge: cfg.SessionTTL, Secure: cfg.CookieSecure}
	authRequired := middleware.AuthRequired(facade)
	customerOnly := middleware.RequireRole(model.UserTypeCustomer)
	restaurantOnly := middleware.RequireRole(model.UserTypeRestaurant)
	onlusOnly := middleware.RequireRole(model.UserTypeOnlus)
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	botLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	authHandler := handlers.NewAuthHandler(facade, cookie)
	restaurantHandler := handlers.NewRestaurantHandler(facade)
	planHandler := handlers.NewPlanHandler(facade)
	pointHandler := handlers.NewPickupPointHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	donationHandler := handlers.NewDonationHandler(facade)
	reviewHandler := handlers.NewReviewHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)
	botHandler := handlers.NewBotHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", loginLimiter.Handler(), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authRequired, authHandler.Me)

	api.GET("/restaurants", restaurantHandler.List)
	api.GET("/restaurants/nearby", restaurantHandler.Nearby)
	api.GET("/restaurants/:id", restaurantHandler.Get)
	api.GET("/onlus", restaurantHandler.Charities)
	api.GET("/subscription-plans", planHandler.List)
	api.GET("/subscription-plans/:id", planHandler.Get)
	api.GET("/pickup-points", pointHandler.List)
	api.GET("/pickup-points/nearby", pointHandler.Nearby)
	api.GET("/reviews", reviewHandler.List)

	bot := api.Group("/bot")
	bot.POST("", botLimiter.Handler(), botHandler.Ask)
	bot.GET("/stats", botHandler.Stats)

	private := api.Group("")
	private.Use(authRequired)

	private.POST("/favorites/:restaurantId", customerOnly, restaurantHandler.AddFavorite)
	private.DELETE("/favorites/:restaurantId", customerOnly, restaurantHandler.RemoveFavorite)

	private.POST("/subscription-plans", restaurantOnly, planHandler.Create)
	private.PUT("/subscription-plans/:id", restaurantOnly, planHandler.Update)
	private.DELETE("/subscription-plans/:id", restaurantOnly, planHandler.Delete)
	private.POST("/pickup-points", restaurantOnly, pointHandler.Create)

	private.POST("/orders", customerOnly, orderHandler.Create)
	private.GET("/orders", orderHandler.List)
	private.GET("/orders/:id", orderHandler.Get)
	private.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	private.GET("/orders/:id/qrcode", orderHandler.QRCode)

	private.POST("/donations", customerOnly, donationHandler.Create)
	private.GET("/donations", donationHandler.List)
	private.PATCH("/donations/:id/status", onlusOnly, donationHandler.UpdateStatus)

	private.POST("/reviews", customerOnly, reviewHandler.Create)

	private.GET("/notifications", notificationHandler.List)
	private.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
	private.GET("/notifications/stream", notificationHandler.Stream)

	return engine
}
