package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/config"
	"github.com/mamadbah2/fuelshare/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.Handler, cfg config.ServerConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/connectivity", handler.GetConnectivity)
		api.POST("/connectivity/retry", handler.RetryConnectivity)
		api.GET("/stations", handler.ListStations)

		api.GET("/tanks", handler.ListTanks)
		api.POST("/tanks", handler.CreateTank)
		api.PUT("/tanks/:id", handler.UpdateTank)
		api.DELETE("/tanks/:id", handler.DeleteTank)
		api.POST("/tanks/:id/refill", handler.RefillTank)

		api.GET("/allocations", handler.ListAllocations)
		api.POST("/allocations", handler.CreateAllocation)
		api.POST("/allocations/preview", handler.PreviewAllocation)
		api.PUT("/allocations/:id", handler.UpdateAllocation)
		api.DELETE("/allocations/:id", handler.DeleteAllocation)

		api.POST("/price-updates/preview", handler.PreviewPriceChange)
		api.POST("/price-updates", handler.ApplyPriceChange)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Operator"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
