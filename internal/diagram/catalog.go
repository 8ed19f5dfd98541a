// Package diagram builds the crosswell geometry: the depth catalog, the
// selection controller and the ray diagram rendered from both.
package diagram

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

// Range is the configured depth span of both wells
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Catalog holds the source and receiver depth points. Both sides are
// generated from the same Range, so they always share cardinality.
type Catalog struct {
	Range     Range
	Sources   []models.DepthPoint
	Receivers []models.DepthPoint
	AllowAll  bool
}

// Count is the number of depths the range generates per well
func (r Range) Count() int {
	if r.Step <= 0 || r.Min > r.Max {
		return 0
	}
	// tolerate float noise such as (0.3-0.1)/0.1 = 1.9999999999999998
	return int(math.Floor((r.Max-r.Min)/r.Step+1e-9)) + 1
}

// Last is the deepest generated depth. It falls short of Max when the
// span is not a multiple of Step.
func (r Range) Last() float64 {
	if n := r.Count(); n > 0 {
		return r.Min + float64(n-1)*r.Step
	}
	return r.Min
}

// Depths returns min, min+step, ... up to and including max, reversed so
// that index 0 is the deepest value. An invalid range yields nil.
func Depths(min, max, step float64) []float64 {
	n := Range{Min: min, Max: max, Step: step}.Count()
	if n == 0 {
		return nil
	}
	zs := make([]float64, n)
	for i := range zs {
		zs[i] = min + float64(i)*step
	}
	return Reverse(zs)
}

// Reverse returns a reversed copy of zs
func Reverse(zs []float64) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[len(zs)-1-i] = z
	}
	return out
}

// NewCatalog builds both wells from r. allowAll exposes the aggregate
// "all sources" option on the selector.
func NewCatalog(r Range, allowAll bool) *Catalog {
	return &Catalog{
		Range:     r,
		Sources:   points(Depths(r.Min, r.Max, r.Step), models.RoleSource),
		Receivers: points(Depths(r.Min, r.Max, r.Step), models.RoleReceiver),
		AllowAll:  allowAll,
	}
}

func points(zs []float64, role models.Role) []models.DepthPoint {
	pts := make([]models.DepthPoint, len(zs))
	for i, z := range zs {
		pts[i] = models.DepthPoint{Index: i, Depth: z, Role: role}
	}
	return pts
}

// Len is the number of points per well
func (c *Catalog) Len() int {
	return len(c.Sources)
}

// Contains reports whether i addresses a source point
func (c *Catalog) Contains(i int) bool {
	return i >= 0 && i < len(c.Sources)
}

// Options lists the selector entries: one per source depth, then ALL
func (c *Catalog) Options() []models.DepthOption {
	opts := make([]models.DepthOption, 0, len(c.Sources)+1)
	for _, p := range c.Sources {
		opts = append(opts, models.DepthOption{
			Value: strconv.Itoa(p.Index),
			Label: fmt.Sprintf("Depth %s", strconv.FormatFloat(p.Depth, 'f', -1, 64)),
		})
	}
	if c.AllowAll {
		opts = append(opts, models.DepthOption{Value: models.SelectionValueAll, Label: "All sources"})
	}
	return opts
}

// ParseSelectorValue maps a selector value back onto the catalog.
// It returns all=true for the ALL entry.
func (c *Catalog) ParseSelectorValue(v string) (index int, all bool, err error) {
	if v == models.SelectionValueAll {
		if !c.AllowAll {
			return 0, false, ErrAllUnsupported
		}
		return 0, true, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("invalid source selector value %q: %w", v, err)
	}
	if !c.Contains(i) {
		return 0, false, fmt.Errorf("source %d: %w", i, ErrIndexOutOfRange)
	}
	return i, false, nil
}
