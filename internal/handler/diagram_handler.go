package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/crosswell-viewer/internal/diagram"
	"github.com/jengzang/crosswell-viewer/internal/service"
	"github.com/jengzang/crosswell-viewer/pkg/response"
)

// DiagramHandler serves the source selector and the rendered diagram
type DiagramHandler struct {
	service *service.DiagramService
}

// NewDiagramHandler creates a new diagram handler
func NewDiagramHandler(service *service.DiagramService) *DiagramHandler {
	return &DiagramHandler{service: service}
}

// GetDepths lists the selector options and both wells
// GET /api/v1/diagram/depths
func (h *DiagramHandler) GetDepths(c *gin.Context) {
	catalog := h.service.Catalog()
	response.Success(c, gin.H{
		"options":   h.service.Options(),
		"sources":   catalog.Sources,
		"receivers": catalog.Receivers,
	})
}

// GetSVG renders the diagram for ?source=<index|all>&pattern=<fan|single|crossing>
// GET /api/v1/diagram.svg
func (h *DiagramHandler) GetSVG(c *gin.Context) {
	sel, err := h.service.Selection(c.Query("source"), c.Query("pattern"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := diagram.EncodeSVG(&buf, h.service.Render(sel)); err != nil {
		_ = c.Error(err)
		response.InternalError(c, "Failed to render diagram")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", buf.Bytes())
}

// GetGeometry returns the rendered diagram as JSON
// GET /api/v1/diagram
func (h *DiagramHandler) GetGeometry(c *gin.Context) {
	sel, err := h.service.Selection(c.Query("source"), c.Query("pattern"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	d := h.service.Render(sel)
	response.Success(c, gin.H{
		"selection":   sel,
		"pattern":     d.Pattern,
		"sources":     d.Sources,
		"receivers":   d.Receivers,
		"rays":        d.Rays,
		"highlighted": d.HighlightedRays(),
		"coverage":    h.service.Coverage(d),
	})
}
