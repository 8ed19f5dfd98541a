package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/crosswell-viewer/internal/api"
	"github.com/jengzang/crosswell-viewer/internal/config"
	"github.com/jengzang/crosswell-viewer/internal/database"
	"github.com/jengzang/crosswell-viewer/internal/diagram"
	"github.com/jengzang/crosswell-viewer/internal/generator"
	"github.com/jengzang/crosswell-viewer/internal/handler"
	"github.com/jengzang/crosswell-viewer/internal/log"
	"github.com/jengzang/crosswell-viewer/internal/middleware"
	"github.com/jengzang/crosswell-viewer/internal/repository"
	"github.com/jengzang/crosswell-viewer/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	if err := log.Init(cfg.Debug); err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据库
	if err := database.Init(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer database.Close()

	script, err := filepath.Abs(cfg.HeatmapScript)
	if err != nil {
		log.Fatalf("failed to resolve heatmap script: %v", err)
	}
	runner := generator.NewPythonRunner(cfg.PythonBin, script, cfg.StaticDir)

	heatmaps := service.NewHeatmapService(
		runner,
		repository.NewGenerationRunRepository(database.GetDB()),
		cfg.GenerateTimeout,
		cfg.HeatmapImagePattern,
		cfg.DefaultHeatmapImage,
	)
	catalog := diagram.NewCatalog(diagram.Range{Min: cfg.DepthMin, Max: cfg.DepthMax, Step: cfg.DepthStep}, true)
	diagrams := service.NewDiagramService(catalog)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		defer limiter.Stop()
	}

	// 初始化路由
	router := api.SetupRouter(cfg, api.Handlers{
		Heatmap: handler.NewHeatmapHandler(heatmaps),
		Diagram: handler.NewDiagramHandler(diagrams),
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("server starting", "addr", cfg.Port, "static_dir", cfg.StaticDir, "depth_points", catalog.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown", "error", err)
	}
}
