package diagram

import (
	"github.com/golang/geo/r2"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

// Surface layout in SVG user units
const (
	Width        = 900.0
	Height       = 700.0
	GridSpacing  = 50.0
	SourceWellX  = 100.0
	ReceiverWell = 750.0
	TopMargin    = 30.0
	BottomMargin = 630.0
)

// Marker and ray styling
const (
	PointRadius       = 4.0
	SelectedRadius    = 8.0
	SourceFill        = "#FFB6B9"
	SelectedFill      = "#FF7F50"
	ReceiverFill      = "#90EE90"
	RayStroke         = "green"
	BackgroundOpacity = 0.15
	BackgroundWidth   = 1.0
	FanOpacity        = 0.7
	FanWidth          = 2.0
	HighlightOpacity  = 0.9
	HighlightWidth    = 2.5
	WellStroke        = "black"
	WellWidth         = 3.0
	GridStroke        = "#eee"
)

// Segment is a straight line on the surface
type Segment struct {
	From   r2.Point
	To     r2.Point
	Stroke string
	Width  float64
}

// Marker is a depth point drawn on a well
type Marker struct {
	Point    models.DepthPoint
	Center   r2.Point
	Radius   float64
	Fill     string
	Selected bool
}

// Ray connects a source marker to a receiver marker
type Ray struct {
	Source    int
	Receiver  int
	From      r2.Point
	To        r2.Point
	Stroke    string
	Width     float64
	Opacity   float64
	Highlight bool
}

// Diagram is the complete surface produced by one render
type Diagram struct {
	Bounds    r2.Rect
	Grid      []Segment
	Wells     []Segment
	Sources   []Marker
	Receivers []Marker
	Rays      []Ray
	Pattern   models.Pattern
}

// HighlightedRays counts the rays drawn as the selected fan overlay
func (d Diagram) HighlightedRays() int {
	n := 0
	for _, r := range d.Rays {
		if r.Highlight {
			n++
		}
	}
	return n
}

// DepthY places a depth on the vertical axis. The shallowest and deepest
// generated depths sit on the margins, so N points land at
// top + k*(bottom-top)/(N-1).
func DepthY(r Range, depth float64) float64 {
	last := r.Last()
	if last <= r.Min {
		return TopMargin
	}
	return TopMargin + (depth-r.Min)/(last-r.Min)*(BottomMargin-TopMargin)
}

// Render draws the full diagram for the catalog and selection.
// It never fails: an index outside the catalog draws no selection.
func Render(c *Catalog, sel models.SelectionState) Diagram {
	d := Diagram{
		Bounds:  r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: Width, Y: Height}),
		Pattern: sel.EffectivePattern(),
	}
	d.Grid = grid()
	d.Wells = []Segment{
		{From: r2.Point{X: SourceWellX, Y: 0}, To: r2.Point{X: SourceWellX, Y: Height}, Stroke: WellStroke, Width: WellWidth},
		{From: r2.Point{X: ReceiverWell, Y: 0}, To: r2.Point{X: ReceiverWell, Y: Height}, Stroke: WellStroke, Width: WellWidth},
	}

	selected := -1
	if !sel.All && c.Contains(sel.Index) {
		selected = sel.Index
	}

	for _, p := range c.Sources {
		m := Marker{
			Point:  p,
			Center: r2.Point{X: SourceWellX, Y: DepthY(c.Range, p.Depth)},
			Radius: PointRadius,
			Fill:   SourceFill,
		}
		if p.Index == selected {
			m.Radius = SelectedRadius
			m.Fill = SelectedFill
			m.Selected = true
		}
		d.Sources = append(d.Sources, m)
	}
	for _, p := range c.Receivers {
		d.Receivers = append(d.Receivers, Marker{
			Point:  p,
			Center: r2.Point{X: ReceiverWell, Y: DepthY(c.Range, p.Depth)},
			Radius: PointRadius,
			Fill:   ReceiverFill,
		})
	}

	switch d.Pattern {
	case models.PatternSingle:
		if selected >= 0 && len(d.Receivers) > 0 {
			d.Rays = append(d.Rays, ray(d.Sources[selected], d.Receivers[len(d.Receivers)/2], FanWidth, FanOpacity, false))
		}
	case models.PatternCrossing:
		for _, s := range d.Sources {
			for _, r := range d.Receivers {
				d.Rays = append(d.Rays, ray(s, r, BackgroundWidth, BackgroundOpacity, false))
			}
		}
		if selected >= 0 {
			d.Rays = append(d.Rays, fan(d.Sources[selected], d.Receivers, HighlightWidth, HighlightOpacity, true)...)
		}
	default:
		if selected >= 0 {
			d.Rays = append(d.Rays, fan(d.Sources[selected], d.Receivers, FanWidth, FanOpacity, false)...)
		}
	}
	return d
}

func fan(src Marker, receivers []Marker, width, opacity float64, highlight bool) []Ray {
	rays := make([]Ray, 0, len(receivers))
	for _, r := range receivers {
		rays = append(rays, ray(src, r, width, opacity, highlight))
	}
	return rays
}

func ray(src, rcv Marker, width, opacity float64, highlight bool) Ray {
	return Ray{
		Source:    src.Point.Index,
		Receiver:  rcv.Point.Index,
		From:      src.Center,
		To:        rcv.Center,
		Stroke:    RayStroke,
		Width:     width,
		Opacity:   opacity,
		Highlight: highlight,
	}
}

func grid() []Segment {
	var g []Segment
	for x := 0.0; x <= Width; x += GridSpacing {
		g = append(g, Segment{From: r2.Point{X: x, Y: 0}, To: r2.Point{X: x, Y: Height}, Stroke: GridStroke, Width: 1})
	}
	for y := 0.0; y <= Height; y += GridSpacing {
		g = append(g, Segment{From: r2.Point{X: 0, Y: y}, To: r2.Point{X: Width, Y: y}, Stroke: GridStroke, Width: 1})
	}
	return g
}
