// Package spatial measures the angular coverage of straight ray paths.
package spatial

import (
	"math"

	"github.com/golang/geo/r2"
)

// Angle returns the dip of the segment from -> to in degrees, measured
// from horizontal with downward (increasing y) positive.
func Angle(from, to r2.Point) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// Length is the Euclidean length of the segment
func Length(from, to r2.Point) float64 {
	return to.Sub(from).Norm()
}

// CircularMean returns the mean direction of angles given in degrees
func CircularMean(degrees []float64) float64 {
	if len(degrees) == 0 {
		return 0
	}
	var sumSin, sumCos float64
	for _, a := range degrees {
		r := a * math.Pi / 180
		sumSin += math.Sin(r)
		sumCos += math.Cos(r)
	}
	return math.Atan2(sumSin, sumCos) * 180 / math.Pi
}

// MeanResultantLength ranges from 0 (directions spread evenly) to 1 (all
// directions identical).
func MeanResultantLength(degrees []float64) float64 {
	if len(degrees) == 0 {
		return 0
	}
	var sumSin, sumCos float64
	for _, a := range degrees {
		r := a * math.Pi / 180
		sumSin += math.Sin(r)
		sumCos += math.Cos(r)
	}
	n := float64(len(degrees))
	return math.Sqrt(sumSin*sumSin+sumCos*sumCos) / n
}

// Segment is one straight path
type Segment struct {
	From r2.Point
	To   r2.Point
}

// Coverage summarizes the directions sampled by a set of rays
type Coverage struct {
	Rays          int     `json:"rays"`
	MinAngle      float64 `json:"min_angle_deg"`
	MaxAngle      float64 `json:"max_angle_deg"`
	Aperture      float64 `json:"aperture_deg"`
	MeanAngle     float64 `json:"mean_angle_deg"`
	Concentration float64 `json:"concentration"`
	MeanLength    float64 `json:"mean_length"`
}

// Measure computes the coverage of segs. No segments yields a zero value.
func Measure(segs []Segment) Coverage {
	if len(segs) == 0 {
		return Coverage{}
	}
	angles := make([]float64, len(segs))
	var total float64
	c := Coverage{Rays: len(segs), MinAngle: math.Inf(1), MaxAngle: math.Inf(-1)}
	for i, s := range segs {
		a := Angle(s.From, s.To)
		angles[i] = a
		c.MinAngle = math.Min(c.MinAngle, a)
		c.MaxAngle = math.Max(c.MaxAngle, a)
		total += Length(s.From, s.To)
	}
	c.Aperture = c.MaxAngle - c.MinAngle
	c.MeanAngle = CircularMean(angles)
	c.Concentration = MeanResultantLength(angles)
	c.MeanLength = total / float64(len(segs))
	return c
}
