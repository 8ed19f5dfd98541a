package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/crosswell-viewer/internal/heatmap"
	"github.com/jengzang/crosswell-viewer/internal/repository"
	"github.com/jengzang/crosswell-viewer/internal/service"
	"github.com/jengzang/crosswell-viewer/pkg/response"
)

// Client-facing error messages. Generator diagnostics never reach them.
const (
	msgKsNotArray       = "ks must be an array of integers"
	msgKsEmpty          = "Provide at least 1 integer K value, max 8"
	msgGenerationFailed = "Heatmap generation failed"
)

// HeatmapHandler handles HTTP requests for heatmap generation
type HeatmapHandler struct {
	service *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{service: service}
}

// GenerateRequest is the body of a generation request. Ks stays raw so
// that a non-array value can be told apart from bad elements.
type GenerateRequest struct {
	Ks json.RawMessage `json:"ks"`
}

// Generate runs the generator for the requested Ks
// POST /generate-heatmap
func (h *HeatmapHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgKsNotArray)
		return
	}

	var raw []any
	if len(req.Ks) == 0 || json.Unmarshal(req.Ks, &raw) != nil || raw == nil {
		response.BadRequest(c, msgKsNotArray)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), raw)
	if err != nil {
		if heatmap.IsValidation(err) {
			response.BadRequest(c, msgKsEmpty)
			return
		}
		_ = c.Error(err)
		response.InternalError(c, msgGenerationFailed)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListRuns lists recorded generator invocations
// GET /api/v1/heatmap/runs
func (h *HeatmapHandler) ListRuns(c *gin.Context) {
	status := c.Query("status")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	runs, err := h.service.ListRuns(status, limit, offset)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c, "Failed to list generation runs")
		return
	}

	stats, err := h.service.RunStats()
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c, "Failed to count generation runs")
		return
	}

	response.Success(c, gin.H{
		"runs":  runs,
		"count": len(runs),
		"stats": stats,
	})
}

// GetRun returns one recorded invocation
// GET /api/v1/heatmap/runs/:id
func (h *HeatmapHandler) GetRun(c *gin.Context) {
	run, err := h.service.GetRun(c.Param("id"))
	if errors.Is(err, repository.ErrRunNotFound) {
		response.NotFound(c, "Generation run not found")
		return
	}
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c, "Failed to get generation run")
		return
	}
	response.Success(c, run)
}

// DefaultImage reports the precomputed combined image
// GET /api/v1/heatmap/default
func (h *HeatmapHandler) DefaultImage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"imageUrl": h.service.DefaultImagePath()})
}
