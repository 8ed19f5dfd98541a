package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/crosswell-viewer/internal/config"
	"github.com/jengzang/crosswell-viewer/internal/diagram"
	"github.com/jengzang/crosswell-viewer/internal/generator"
	"github.com/jengzang/crosswell-viewer/internal/handler"
	"github.com/jengzang/crosswell-viewer/internal/log"
	"github.com/jengzang/crosswell-viewer/internal/middleware"
	"github.com/jengzang/crosswell-viewer/internal/service"
)

type writingRunner struct {
	dir string
}

func (w writingRunner) Run(ctx context.Context, ks []int) (generator.Result, error) {
	for _, k := range ks {
		name := filepath.Join(w.dir, "heatmaps_resmodel_rank_"+strconv.Itoa(k)+".png")
		if err := os.WriteFile(name, []byte("png"), 0o644); err != nil {
			return generator.Result{}, err
		}
	}
	return generator.Result{}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	return newLimitedTestRouter(t, nil)
}

func newLimitedTestRouter(t *testing.T, limiter *middleware.RateLimiter) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log.SetLogger(zap.NewNop())

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "template.html"), []byte("<html>shell</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Load()
	cfg.StaticDir = dir

	heatmaps := service.NewHeatmapService(writingRunner{dir: dir}, nil, 0, cfg.HeatmapImagePattern, cfg.DefaultHeatmapImage)
	diagrams := service.NewDiagramService(diagram.NewCatalog(diagram.Range{Min: 0, Max: 640, Step: 40}, true))
	r := SetupRouter(cfg, Handlers{
		Heatmap: handler.NewHeatmapHandler(heatmaps),
		Diagram: handler.NewDiagramHandler(diagrams),
		Limiter: limiter,
	})
	return r, dir
}

func TestRouterServesPageShell(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "shell") {
		t.Errorf("GET / = %d %q", w.Code, w.Body)
	}
}

func TestRouterGenerateThenFetchImage(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-heatmap", strings.NewReader(`{"ks":[4,8]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("generate = %d %s", w.Code, w.Body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/heatmaps_resmodel_rank_8.png?t=1", nil))
	if w.Code != http.StatusOK || w.Body.String() != "png" {
		t.Errorf("static image = %d %q", w.Code, w.Body)
	}
}

func TestRouterHealthAndCORS(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/generate-heatmap", nil))
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight = %d %v", w.Code, w.Header())
	}
}

func TestRouterUnknownPost(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("POST /nope = %d", w.Code)
	}
}

func TestRouterRateLimitsGeneration(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	r, _ := newLimitedTestRouter(t, limiter)

	codes := []int{}
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/generate-heatmap", strings.NewReader(`{"ks":[4]}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v", codes)
	}

	// other routes are not limited
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /health = %d", w.Code)
	}
}
