package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/crosswell-viewer/internal/config"
	"github.com/jengzang/crosswell-viewer/internal/handler"
	"github.com/jengzang/crosswell-viewer/internal/middleware"
	"github.com/jengzang/crosswell-viewer/pkg/response"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Heatmap *handler.HeatmapHandler
	Diagram *handler.DiagramHandler
	// Limiter guards the generation endpoint; nil disables limiting
	Limiter *middleware.RateLimiter
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Crosswell viewer is running",
		})
	})

	// page shell
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.StaticDir, cfg.PageShell))
	})

	r.POST("/generate-heatmap", middleware.Limit(h.Limiter), h.Heatmap.Generate)

	api := r.Group("/api/v1")
	{
		diagram := api.Group("/diagram")
		{
			diagram.GET("", h.Diagram.GetGeometry)
			diagram.GET("/depths", h.Diagram.GetDepths)
		}
		api.GET("/diagram.svg", h.Diagram.GetSVG)

		heatmap := api.Group("/heatmap")
		{
			heatmap.GET("/default", h.Heatmap.DefaultImage)
			heatmap.GET("/runs", h.Heatmap.ListRuns)
			heatmap.GET("/runs/:id", h.Heatmap.GetRun)
		}
	}

	// generated images and the rest of the static area
	files := http.FileServer(http.Dir(cfg.StaticDir))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.NotFound(c, "Not found")
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})

	return r
}
