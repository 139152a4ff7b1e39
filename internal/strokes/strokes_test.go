package strokes

import (
	"math"
	"testing"
)

func line(x1, y1, x2, y2 float64, mid int) Stroke {
	pts := []Point{{X: x1, Y: y1}}
	for i := 1; i <= mid; i++ {
		t := float64(i) / float64(mid+1)
		pts = append(pts, Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)})
	}
	pts = append(pts, Point{X: x2, Y: y2})
	return Stroke{Points: pts}
}

func circle(cx, cy, r float64, n int) Stroke {
	var pts []Point
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return Stroke{Points: pts}
}

func TestStraightness_PerfectLine(t *testing.T) {
	s := line(0, 0, 100, 0, 8)
	if got := s.Straightness(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Straightness = %f, want 1.0", got)
	}
}

func TestStraightness_Wobble(t *testing.T) {
	s := Stroke{Points: []Point{{X: 0, Y: 0}, {X: 50, Y: 40}, {X: 100, Y: 0}}}
	got := s.Straightness()
	if got >= 0.9 {
		t.Errorf("wobbly stroke Straightness = %f, want < 0.9", got)
	}
	if got <= 0 {
		t.Errorf("wobbly stroke Straightness = %f, want > 0", got)
	}
}

func TestStraightness_Degenerate(t *testing.T) {
	cases := []struct {
		name string
		s    Stroke
	}{
		{"empty", Stroke{}},
		{"single point", Stroke{Points: []Point{{X: 1, Y: 1}}}},
		{"coincident points", Stroke{Points: []Point{{X: 1, Y: 1}, {X: 1, Y: 1}}}},
	}
	for _, tc := range cases {
		if got := tc.s.Straightness(); got != 0 {
			t.Errorf("%s: Straightness = %f, want 0", tc.name, got)
		}
	}
}

func TestRadiusStats_Circle(t *testing.T) {
	s := circle(50, 50, 20, 32)
	mean, variance := s.RadiusStats()
	if math.Abs(mean-20) > 0.1 {
		t.Errorf("mean radius = %f, want ~20", mean)
	}
	if variance > 0.01 {
		t.Errorf("radius variance = %f, want ~0 for a perfect circle", variance)
	}
}

func TestEndpointGap(t *testing.T) {
	s := Stroke{Points: []Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 3, Y: 4}}}
	if got := s.EndpointGap(); math.Abs(got-5) > 1e-9 {
		t.Errorf("EndpointGap = %f, want 5", got)
	}
}

func TestBounds(t *testing.T) {
	d := Drawing{Strokes: []Stroke{
		{Points: []Point{{X: -1, Y: 2}, {X: 3, Y: 7}}},
		{Points: []Point{{X: 0, Y: 10}}},
	}}
	r := d.Bounds()
	if r.MinX != -1 || r.MinY != 2 || r.MaxX != 3 || r.MaxY != 10 {
		t.Errorf("Bounds = %+v", r)
	}
	if math.Abs(r.Diagonal()-math.Hypot(4, 8)) > 1e-9 {
		t.Errorf("Diagonal = %f", r.Diagonal())
	}
}

func TestBounds_Empty(t *testing.T) {
	if r := (Drawing{}).Bounds(); r != (Rect{}) {
		t.Errorf("empty drawing Bounds = %+v, want zero Rect", r)
	}
}

func TestIntersect(t *testing.T) {
	l1 := Line{A: Point{X: 0, Y: 0}, B: Point{X: 10, Y: 10}}
	l2 := Line{A: Point{X: 0, Y: 10}, B: Point{X: 10, Y: 0}}
	p, ok := Intersect(l1, l2)
	if !ok {
		t.Fatal("expected intersection")
	}
	if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Errorf("Intersect = %+v, want (5,5)", p)
	}
}

func TestIntersect_Parallel(t *testing.T) {
	l1 := Line{A: Point{X: 0, Y: 0}, B: Point{X: 10, Y: 0}}
	l2 := Line{A: Point{X: 0, Y: 5}, B: Point{X: 10, Y: 5}}
	if _, ok := Intersect(l1, l2); ok {
		t.Error("parallel lines should not intersect")
	}
}
