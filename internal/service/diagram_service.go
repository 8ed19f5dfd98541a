package service

import (
	"github.com/jengzang/crosswell-viewer/internal/diagram"
	"github.com/jengzang/crosswell-viewer/internal/models"
	"github.com/jengzang/crosswell-viewer/internal/spatial"
)

// DiagramService renders the well diagram for a requested selection
type DiagramService struct {
	catalog *diagram.Catalog
}

// NewDiagramService creates a new diagram service
func NewDiagramService(catalog *diagram.Catalog) *DiagramService {
	return &DiagramService{catalog: catalog}
}

// Catalog returns the depth catalog shared by every render
func (s *DiagramService) Catalog() *diagram.Catalog {
	return s.catalog
}

// Options lists the source selector entries
func (s *DiagramService) Options() []models.DepthOption {
	return s.catalog.Options()
}

// Selection builds a selection from selector and pattern values.
// Empty values fall back to the defaults.
func (s *DiagramService) Selection(source, pattern string) (models.SelectionState, error) {
	sel := models.DefaultSelection()
	if pattern != "" {
		p, err := models.ParsePattern(pattern)
		if err != nil {
			return sel, err
		}
		sel.Pattern = p
	}
	if source != "" {
		i, all, err := s.catalog.ParseSelectorValue(source)
		if err != nil {
			return sel, err
		}
		sel.Index = i
		sel.All = all
	}
	return sel, nil
}

// Render draws the diagram for sel
func (s *DiagramService) Render(sel models.SelectionState) diagram.Diagram {
	return diagram.Render(s.catalog, sel)
}

// Coverage measures the angular coverage of the rays that carry the
// selection: the highlighted fan in crossing mode, otherwise every ray.
func (s *DiagramService) Coverage(d diagram.Diagram) spatial.Coverage {
	highlighted := d.HighlightedRays() > 0
	segs := make([]spatial.Segment, 0, len(d.Rays))
	for _, r := range d.Rays {
		if highlighted && !r.Highlight {
			continue
		}
		segs = append(segs, spatial.Segment{From: r.From, To: r.To})
	}
	return spatial.Measure(segs)
}
