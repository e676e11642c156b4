package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/api/handlers"
	"github.com/jafarshop/shopadmin/internal/api/middleware"
	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, auth middleware.Authenticator, svc *service.AdminService, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Shopify Admin Listings",
			"endpoints": []string{
				"GET /health",
				"GET /app/orders",
				"GET /app/customers",
				"GET /app/inventory",
				"GET /app/collections",
				"GET /app/reports",
				"GET /app/customer-accounts",
				"POST /app/discounts",
				"GET /api/products",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Embedded admin views (require a shop session)
	app := router.Group("/app")
	app.Use(middleware.AuthMiddleware(auth, logger))
	{
		app.GET("/orders", handlers.HandleListOrders(svc, logger))
		app.GET("/customers", handlers.HandleListCustomers(svc, logger))
		app.GET("/inventory", handlers.HandleListInventory(svc, logger))
		app.GET("/collections", handlers.HandleListCollections(svc, logger))
		app.GET("/reports", handlers.HandleCollectionReport(svc, logger))
		app.GET("/customer-accounts", handlers.HandleListCustomerAccounts(svc, logger))
		app.POST("/discounts", handlers.HandleCreateDiscount(svc, logger))
	}

	apiRoutes := router.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(auth, logger))
	{
		apiRoutes.GET("/products", handlers.HandleListProducts(svc, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   handlers.CodeInternal,
			"message": "internal server error",
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
