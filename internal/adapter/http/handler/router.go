package handler

import (
	"ameen-storefront/internal/adapter/http/middleware"
	redisStore "ameen-storefront/internal/adapter/storage/redis"
	"ameen-storefront/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CatalogSvc      ports.CatalogService
	LedgerSvc       ports.LedgerService
	AssistantSvc    ports.AssistantService
	NotificationSvc ports.NotificationService
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	catalogHandler := NewCatalogHandler(deps.CatalogSvc)
	products := v1.Group("/products")
	{
		products.POST("", rl("products"), catalogHandler.CreateProduct)
		products.GET("", rl("products"), catalogHandler.ListProducts)
		products.GET("/:id", rl("products"), catalogHandler.GetProduct)
	}
	v1.POST("/purchases", rl("purchases"), catalogHandler.Purchase)
	v1.GET("/downloads/:link", rl("downloads"), catalogHandler.TrackDownload)

	walletHandler := NewWalletHandler(deps.LedgerSvc)
	wallet := v1.Group("/wallet")
	{
		wallet.GET("", rl("wallet"), walletHandler.GetSummary)
		wallet.POST("/withdrawals", rl("withdrawals"), walletHandler.Withdraw)
		wallet.GET("/withdrawals", rl("wallet"), walletHandler.ListWithdrawals)
	}
	v1.GET("/reports/sales", rl("reports"), walletHandler.GetSalesReport)

	assistantHandler := NewAssistantHandler(deps.AssistantSvc, deps.NotificationSvc)
	v1.POST("/assistant/messages", rl("assistant"), assistantHandler.Message)
	v1.GET("/notifications", rl("notifications"), assistantHandler.ListNotifications)

	return r
}
