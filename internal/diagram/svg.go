package diagram

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

type svgDoc struct {
	XMLName xml.Name   `xml:"svg"`
	Xmlns   string     `xml:"xmlns,attr"`
	Width   string     `xml:"width,attr"`
	Height  string     `xml:"height,attr"`
	ViewBox string     `xml:"viewBox,attr"`
	Style   string     `xml:"style,attr"`
	Groups  []svgGroup `xml:"g"`
}

type svgGroup struct {
	ID      string      `xml:"id,attr"`
	Lines   []svgLine   `xml:"line"`
	Circles []svgCircle `xml:"circle"`
}

type svgLine struct {
	X1          string `xml:"x1,attr"`
	Y1          string `xml:"y1,attr"`
	X2          string `xml:"x2,attr"`
	Y2          string `xml:"y2,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
	Opacity     string `xml:"opacity,attr,omitempty"`
	Source      string `xml:"data-source,attr,omitempty"`
	Receiver    string `xml:"data-receiver,attr,omitempty"`
	Class       string `xml:"class,attr,omitempty"`
}

type svgCircle struct {
	Cx     string `xml:"cx,attr"`
	Cy     string `xml:"cy,attr"`
	R      string `xml:"r,attr"`
	Fill   string `xml:"fill,attr"`
	Stroke string `xml:"stroke,attr"`
	Index  string `xml:"data-index,attr"`
	Role   string `xml:"data-role,attr"`
	Depth  string `xml:"data-depth,attr"`
	Class  string `xml:"class,attr,omitempty"`
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EncodeSVG writes d as a standalone SVG document. Source circles carry
// data-index so a click can be mapped back to a catalog index.
func EncodeSVG(w io.Writer, d Diagram) error {
	doc := svgDoc{
		Xmlns:   "http://www.w3.org/2000/svg",
		Width:   num(d.Bounds.X.Hi),
		Height:  num(d.Bounds.Y.Hi),
		ViewBox: fmt.Sprintf("0 0 %s %s", num(d.Bounds.X.Hi), num(d.Bounds.Y.Hi)),
		Style:   "background-color: white",
	}

	grid := svgGroup{ID: "grid"}
	for _, s := range d.Grid {
		grid.Lines = append(grid.Lines, segmentLine(s))
	}
	wells := svgGroup{ID: "wells"}
	for _, s := range d.Wells {
		wells.Lines = append(wells.Lines, segmentLine(s))
	}
	rays := svgGroup{ID: "rays"}
	for _, r := range d.Rays {
		l := svgLine{
			X1: num(r.From.X), Y1: num(r.From.Y),
			X2: num(r.To.X), Y2: num(r.To.Y),
			Stroke:      r.Stroke,
			StrokeWidth: num(r.Width),
			Opacity:     num(r.Opacity),
			Source:      strconv.Itoa(r.Source),
			Receiver:    strconv.Itoa(r.Receiver),
		}
		if r.Highlight {
			l.Class = "highlight"
		}
		rays.Lines = append(rays.Lines, l)
	}
	points := svgGroup{ID: "points"}
	for _, m := range append(append([]Marker{}, d.Sources...), d.Receivers...) {
		c := svgCircle{
			Cx:     num(m.Center.X),
			Cy:     num(m.Center.Y),
			R:      num(m.Radius),
			Fill:   m.Fill,
			Stroke: "black",
			Index:  strconv.Itoa(m.Point.Index),
			Role:   string(m.Point.Role),
			Depth:  num(m.Point.Depth),
		}
		if m.Selected {
			c.Class = "selected"
		}
		points.Circles = append(points.Circles, c)
	}
	// rays under points so markers stay clickable
	doc.Groups = []svgGroup{grid, wells, rays, points}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	return enc.Flush()
}

func segmentLine(s Segment) svgLine {
	return svgLine{
		X1: num(s.From.X), Y1: num(s.From.Y),
		X2: num(s.To.X), Y2: num(s.To.Y),
		Stroke:      s.Stroke,
		StrokeWidth: num(s.Width),
	}
}
