package router

import (
	"fmt"
	"strings"

	"github.com/littlelemon-next/internal/cache"
	"github.com/littlelemon-next/internal/config"
	apihandlers "github.com/littlelemon-next/internal/http/handlers/api"
	"github.com/littlelemon-next/internal/logger"
	"github.com/littlelemon-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ll"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 认证接口（无需登录）
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", handler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), handler.Login)
		}

		apiV1.GET("/captcha/image", handler.GetImageCaptcha)

		// 分类浏览无需登录
		apiV1.GET("/categories", handler.ListCategories)
		apiV1.GET("/categories/:id", handler.GetCategory)

		// 登录态接口：JWT 解析出用户与角色，RBAC 按角色放行
		authorized := apiV1.Group("")
		authorized.Use(
			UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RoleRBACMiddleware(c.AuthzService),
		)
		{
			// 个人资料
			authorized.GET("/me", handler.GetCurrentUser)
			authorized.PUT("/me", handler.UpdateProfile)
			authorized.PUT("/me/password", handler.ChangePassword)

			// 分类管理
			authorized.POST("/categories", handler.CreateCategory)
			authorized.PUT("/categories/:id", handler.UpdateCategory)
			authorized.DELETE("/categories/:id", handler.DeleteCategory)
			authorized.POST("/add-category", handler.CreateCategory)

			// 菜单
			authorized.GET("/menu-items", handler.ListMenuItems)
			authorized.GET("/menu-items/:id", handler.GetMenuItem)
			authorized.POST("/menu-items", handler.CreateMenuItem)
			authorized.PUT("/menu-items/:id", handler.UpdateMenuItem)
			authorized.PATCH("/menu-items/:id", handler.UpdateMenuItem)
			authorized.DELETE("/menu-items/:id", handler.DeleteMenuItem)
			authorized.GET("/item-of-the-day", handler.GetItemOfTheDay)
			authorized.POST("/update-item-of-the-day/:menu_item_id", handler.SetItemOfTheDay)
			authorized.PATCH("/update-item-of-the-day/:menu_item_id", handler.SetItemOfTheDay)

			// 购物车
			authorized.GET("/cart/menu-items", handler.GetCart)
			authorized.POST("/cart/menu-items", handler.AddToCart)
			authorized.PUT("/cart/menu-items", handler.SetCartItem)
			authorized.DELETE("/cart/menu-items", handler.ClearCart)
			authorized.DELETE("/cart/menu-items/:menu_item_id", handler.RemoveCartItem)

			// 订单
			authorized.GET("/orders", handler.ListOrders)
			authorized.POST("/orders", handler.PlaceOrder)
			authorized.GET("/orders/:order_id", handler.GetOrder)
			authorized.PUT("/orders/:order_id", handler.UpdateOrder)
			authorized.PATCH("/orders/:order_id", handler.PatchOrder)
			authorized.DELETE("/orders/:order_id", handler.DeleteOrder)

			// 配送
			authorized.GET("/delivery-crew/orders", handler.ListDeliveryOrders)
			authorized.PUT("/delivery-crew/orders/:order_id", handler.UpdateOrderStatus)
			authorized.PATCH("/delivery-crew/orders/:order_id", handler.UpdateOrderStatus)
			authorized.POST("/update-order-status/:order_id", handler.UpdateOrderStatus)
			authorized.PATCH("/update-order-status/:order_id", handler.UpdateOrderStatus)
			authorized.POST("/assign-order/:order_id/:user_id", handler.AssignOrder)

			// 用户组管理
			authorized.GET("/groups/:group/users", handler.ListGroupUsers)
			authorized.POST("/groups/:group/users", handler.AddGroupUser)
			authorized.DELETE("/groups/:group/users/:user_id", handler.RemoveGroupUser)

			// 登录审计
			authorized.GET("/user-login-logs", handler.ListUserLoginLogs)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
