package router

import (
	"fmt"
	"strings"

	"github.com/shopease-next/internal/cache"
	"github.com/shopease-next/internal/config"
	adminhandlers "github.com/shopease-next/internal/http/handlers/admin"
	publichandlers "github.com/shopease-next/internal/http/handlers/public"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/i18n"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "se"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.too_many_requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.route_not_found"))
	})
	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/reviews", publicHandler.ListReviews)
			public.GET("/reviews/:id", publicHandler.GetReview)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/federated/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIP), publicHandler.FederatedLogin)
		}

		userAuth := UserJWTAuthMiddleware(c.UserAuthService, c.UserRepo)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(userAuth)
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.POST("/me/logout", publicHandler.Logout)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:item_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:item_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/orders", publicHandler.CreateOrder)
			user.POST("/orders/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/:id/history", publicHandler.GetOrderHistory)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)

			user.POST("/reviews", publicHandler.CreateReview)
			user.PUT("/reviews/:id", publicHandler.UpdateReview)
			user.DELETE("/reviews/:id", publicHandler.DeleteReview)
		}

		// 管理端接口（JWT + RBAC）
		admin := apiV1.Group("/admin")
		admin.Use(userAuth, AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
			admin.DELETE("/reviews/:id", adminHandler.AdminDeleteReview)
		}
	}

	return r
}
