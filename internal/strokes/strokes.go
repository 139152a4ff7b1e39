// Package strokes defines the freehand-input data model consumed from the
// pen-capture layer, plus the pure geometry the validation evaluators are
// built on. Everything here is a value type with no I/O.
package strokes

import "math"

// Point is a single sampled pen position. Pressure is normalized to [0,1]
// and is 0 when the input device doesn't report it.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure,omitempty"`
}

// Stroke is one continuous pen-down-to-pen-up point sequence.
type Stroke struct {
	Points []Point `json:"points"`
	Color  string  `json:"color,omitempty"`
	Width  float64 `json:"width,omitempty"`
}

// Drawing is everything the learner drew for one practice step or
// assessment: an ordered list of strokes.
type Drawing struct {
	Strokes []Stroke `json:"strokes"`
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PathLength returns the cumulative length of the stroke's polyline.
func (s Stroke) PathLength() float64 {
	var total float64
	for i := 1; i < len(s.Points); i++ {
		total += Dist(s.Points[i-1], s.Points[i])
	}
	return total
}

// EndpointGap returns the distance between the stroke's first and last
// point. Zero for strokes with fewer than two points.
func (s Stroke) EndpointGap() float64 {
	if len(s.Points) < 2 {
		return 0
	}
	return Dist(s.Points[0], s.Points[len(s.Points)-1])
}

// Straightness is the ratio of the first-to-last chord over the cumulative
// path length, clamped to [0,1]. A perfect line scores 1; a stroke that
// doubles back scores near 0. Degenerate strokes (fewer than two points or
// zero path length) score 0.
func (s Stroke) Straightness() float64 {
	if len(s.Points) < 2 {
		return 0
	}
	path := s.PathLength()
	if path == 0 {
		return 0
	}
	return Clamp(s.EndpointGap()/path, 0, 1)
}

// Centroid returns the arithmetic mean of the stroke's points.
func (s Stroke) Centroid() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	var cx, cy float64
	for _, p := range s.Points {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(s.Points))
	return Point{X: cx / n, Y: cy / n}
}

// RadiusStats returns the mean and variance of point distances from the
// stroke's centroid. Used by circularity scoring.
func (s Stroke) RadiusStats() (mean, variance float64) {
	if len(s.Points) == 0 {
		return 0, 0
	}
	c := s.Centroid()
	n := float64(len(s.Points))
	for _, p := range s.Points {
		mean += Dist(c, p)
	}
	mean /= n
	for _, p := range s.Points {
		d := Dist(c, p) - mean
		variance += d * d
	}
	variance /= n
	return mean, variance
}

// MeanPressure returns the average pressure over the stroke's points.
func (s Stroke) MeanPressure() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range s.Points {
		sum += p.Pressure
	}
	return sum / float64(len(s.Points))
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Diagonal returns the length of the box diagonal, a convenient
// size-relative scale for tolerances.
func (r Rect) Diagonal() float64 {
	return math.Hypot(r.Width(), r.Height())
}

// Bounds returns the bounding box of all strokes in the drawing.
// The zero Rect is returned for an empty drawing.
func (d Drawing) Bounds() Rect {
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	any := false
	for _, s := range d.Strokes {
		for _, p := range s.Points {
			any = true
			r.MinX = math.Min(r.MinX, p.X)
			r.MinY = math.Min(r.MinY, p.Y)
			r.MaxX = math.Max(r.MaxX, p.X)
			r.MaxY = math.Max(r.MaxY, p.Y)
		}
	}
	if !any {
		return Rect{}
	}
	return r
}

// PointCount returns the total number of sampled points in the drawing.
func (d Drawing) PointCount() int {
	n := 0
	for _, s := range d.Strokes {
		n += len(s.Points)
	}
	return n
}

// TotalPathLength returns the summed path length of all strokes.
func (d Drawing) TotalPathLength() float64 {
	var total float64
	for _, s := range d.Strokes {
		total += s.PathLength()
	}
	return total
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
