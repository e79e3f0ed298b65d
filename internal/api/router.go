package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/elevation-backend-go/internal/config"
	"github.com/jengzang/elevation-backend-go/internal/handler"
	"github.com/jengzang/elevation-backend-go/internal/middleware"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, analysisHandler *handler.AnalysisHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Elevation Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		analysis := api.Group("/analysis")
		{
			analysis.POST("", analysisHandler.AnalyzeTrace)
			analysis.POST("/gpx", analysisHandler.AnalyzeGPX)
			analysis.POST("/upload", analysisHandler.UploadGPX)
			analysis.GET("", analysisHandler.ListAnalyses)
			analysis.GET("/:id", analysisHandler.GetAnalysis)
		}

		benchmarks := api.Group("/benchmarks")
		{
			benchmarks.GET("", analysisHandler.ListBenchmarks)
			benchmarks.POST("/reload", middleware.Auth(cfg.JWTSecret), analysisHandler.ReloadBenchmarks)
		}
	}

	return r
}
