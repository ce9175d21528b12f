package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sectorchat/internal/middleware"
)

// agentRouteTimeout bounds one chat turn end to end. Agent turns chain
// several upstream calls (model plus tools), so this is much longer than a
// plain proxy route would get.
const agentRouteTimeout = 120 * time.Second

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimiter).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.RateLimiter(),
	)

	// Per-request deadline; chat turns get a longer one.
	router.Use(func(c *gin.Context) {
		timeout := 15 * time.Second
		if c.FullPath() == "/api/v1/chat" {
			timeout = agentRouteTimeout
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/chat", handler.Chat)
		v1.GET("/volume/top", handler.TopVolume)
		v1.GET("/daily", handler.DailyComparison)
		v1.GET("/company/:ticker/overview", handler.CompanyOverview)
		v1.GET("/company/:ticker/ipo", handler.ListingPerformance)
		v1.GET("/company/:ticker/segments", handler.CompanySegments)
	}

	return router
}
