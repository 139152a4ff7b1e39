package strokes

import "math"

// Line is an infinite line through two anchor points, used when a stroke is
// treated as a straight construction line (perspective guides, hatching).
type Line struct {
	A, B Point
}

// ChordLine returns the infinite line through the stroke's endpoints.
// ok is false for degenerate strokes whose endpoints coincide.
func (s Stroke) ChordLine() (Line, bool) {
	if len(s.Points) < 2 {
		return Line{}, false
	}
	a, b := s.Points[0], s.Points[len(s.Points)-1]
	if Dist(a, b) == 0 {
		return Line{}, false
	}
	return Line{A: a, B: b}, true
}

// Intersect returns the intersection point of two lines.
// ok is false when the lines are parallel (or near-parallel).
func Intersect(l1, l2 Line) (Point, bool) {
	x1, y1 := l1.A.X, l1.A.Y
	x2, y2 := l1.B.X, l1.B.Y
	x3, y3 := l2.A.X, l2.A.Y
	x4, y4 := l2.B.X, l2.B.Y

	den := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(den) < 1e-9 {
		return Point{}, false
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / den
	return Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)}, true
}

// MeanPoint returns the arithmetic mean of a point set.
func MeanPoint(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(pts))
	return Point{X: cx / n, Y: cy / n}
}

// Dispersion returns the mean distance of a point set from its own mean.
func Dispersion(pts []Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	c := MeanPoint(pts)
	var sum float64
	for _, p := range pts {
		sum += Dist(c, p)
	}
	return sum / float64(len(pts))
}
