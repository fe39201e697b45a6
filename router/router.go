package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/food-ordering/config"
	"github.com/yeremiapane/food-ordering/controllers"
	"github.com/yeremiapane/food-ordering/kds"
	"github.com/yeremiapane/food-ordering/middlewares"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
	"gorm.io/gorm"
)

// Dependencies are the long-lived resources the HTTP layer is built on.
// Redis, Hub and Notifiers are optional.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Hub       *kds.Hub
	Notifiers services.Notifiers
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	users := repository.NewUserRepository(deps.DB)
	menus := repository.NewMenuRepository(deps.DB)
	orders := repository.NewOrderRepository(deps.DB)

	notifier := append(services.Notifiers{}, deps.Notifiers...)
	if deps.Hub != nil {
		notifier = append(notifier, deps.Hub)
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	authService := services.NewAuthService(users, tokens, services.NewSessionStore(deps.Redis, deps.DB), cfg.AllowAdminSignup)
	menuService := services.NewMenuService(deps.DB, menus, services.NewMenuCache(deps.Redis, cfg.MenuCacheTTL), notifier)
	orderService := services.NewOrderService(deps.DB, menus, orders, notifier)

	cookie := controllers.SessionCookie{Name: cfg.SessionCookieName, TTL: cfg.SessionTTL, Secure: cfg.IsProd}
	userCtrl := controllers.NewUserController(authService, cookie)
	menuCtrl := controllers.NewMenuController(menuService)
	orderCtrl := controllers.NewOrderController(orderService)
	adminCtrl := controllers.NewAdminController(orderService)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("panic: %v", recovered))
		c.Abort()
	}))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(cfg.IsProd))
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())
	r.Use(middlewares.SessionMiddleware(authService, cfg.SessionCookieName))

	r.GET("/ping", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "pong", nil)
	})

	api := r.Group("/api")

	authLimit := middlewares.NewStrictRateLimiter(cfg.AuthRateLimitPerMin).RateLimit()
	auth := api.Group("/auth")
	{
		auth.POST("/register", authLimit, userCtrl.Register)
		auth.POST("/login", authLimit, userCtrl.Login)
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/me", userCtrl.Me)
	}

	menu := api.Group("/menu/items")
	{
		menu.GET("", menuCtrl.GetMenuItems)
		menu.GET("/:id", menuCtrl.GetMenuItemByID)
		menu.POST("", menuCtrl.CreateMenuItem)
		menu.PUT("/:id", menuCtrl.UpdateMenuItem)
		menu.DELETE("/:id", menuCtrl.DeleteMenuItem)
		menu.PATCH("/:id/availability", menuCtrl.ToggleAvailability)
	}

	order := api.Group("/orders")
	{
		order.POST("", orderCtrl.CreateOrder)
		order.GET("", orderCtrl.GetMyOrders)
		order.GET("/admin/all", orderCtrl.GetAllOrders)
		order.GET("/admin/stats", adminCtrl.GetDashboardStats)
		order.GET("/:id", orderCtrl.GetOrderByID)
		order.PUT("/:id/status", orderCtrl.UpdateOrderStatus)
	}

	if deps.Hub != nil {
		kdsCtrl := controllers.NewKDSController(deps.Hub, cfg.CORSOrigin)
		api.GET("/kds/ws", kdsCtrl.KDSHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, utils.NewNotFound("Route not found: %s", c.Request.URL.Path))
	})

	return r
}
