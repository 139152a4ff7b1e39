package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/halftone/sketchpath/internal/strokes"
)

func straightStroke(x1, y1, x2, y2 float64) strokes.Stroke {
	return strokes.Stroke{Points: []strokes.Point{
		{X: x1, Y: y1},
		{X: (x1 + x2) / 2, Y: (y1 + y2) / 2},
		{X: x2, Y: y2},
	}}
}

func circleStroke(cx, cy, r float64, n int, wobble float64) strokes.Stroke {
	var pts []strokes.Point
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		rr := r
		if i%2 == 0 {
			rr += wobble
		}
		pts = append(pts, strokes.Point{X: cx + rr*math.Cos(a), Y: cy + rr*math.Sin(a)})
	}
	return strokes.Stroke{Points: pts}
}

func TestEvaluate_UnknownRuleType(t *testing.T) {
	e := NewEngine()
	_, err := e.Evaluate(Rule{Type: "holographic_depth"}, strokes.Drawing{})
	if err == nil {
		t.Fatal("expected error for unknown rule type")
	}
	var unknown *UnknownRuleTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownRuleTypeError, got %T", err)
	}
	if unknown.Type != "holographic_depth" {
		t.Errorf("error carries type %q", unknown.Type)
	}
}

func TestEvaluatorFor_CoversAllTypes(t *testing.T) {
	for _, rt := range AllRuleTypes() {
		if _, ok := evaluatorFor(rt); !ok {
			t.Errorf("no evaluator registered for %q", rt)
		}
	}
}

// Five straight lines required: four strokes fail with proportional
// accuracy, five pass.
func TestLineCount_FiveLinesRequired(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeLineCount, Params: map[string]any{"min": 5}, Threshold: 1.0}

	var d strokes.Drawing
	for i := 0; i < 4; i++ {
		d.Strokes = append(d.Strokes, straightStroke(0, float64(i)*10, 100, float64(i)*10))
	}
	res, err := e.Evaluate(rule, d)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Error("4 of 5 lines should fail")
	}
	if math.Abs(res.Accuracy-0.8) > 1e-9 {
		t.Errorf("accuracy = %f, want 0.8", res.Accuracy)
	}

	d.Strokes = append(d.Strokes, straightStroke(0, 40, 100, 40))
	res, err = e.Evaluate(rule, d)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass || res.Accuracy != 1.0 {
		t.Errorf("5 straight lines: pass=%v accuracy=%f, want pass with 1.0", res.Pass, res.Accuracy)
	}
}

func TestLineCount_IgnoresWobblyStrokes(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeLineCount, Params: map[string]any{"min": 1}, Threshold: 1.0}
	scribble := strokes.Stroke{Points: []strokes.Point{
		{X: 0, Y: 0}, {X: 10, Y: 30}, {X: 0, Y: 60}, {X: 10, Y: 90}, {X: 0, Y: 0},
	}}
	res, err := e.Evaluate(rule, strokes.Drawing{Strokes: []strokes.Stroke{scribble}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Error("a scribble should not count as a line")
	}
}

func TestStrokeCount_Bounds(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeStrokeCount, Params: map[string]any{"min": 2, "max": 3}, Threshold: 1.0}

	cases := []struct {
		strokes int
		pass    bool
	}{
		{1, false},
		{2, true},
		{3, true},
		{4, false},
	}
	for _, tc := range cases {
		var d strokes.Drawing
		for i := 0; i < tc.strokes; i++ {
			d.Strokes = append(d.Strokes, straightStroke(0, 0, 10, 10))
		}
		res, err := e.Evaluate(rule, d)
		if err != nil {
			t.Fatal(err)
		}
		if res.Pass != tc.pass {
			t.Errorf("%d strokes: pass=%v, want %v", tc.strokes, res.Pass, tc.pass)
		}
	}
}

func TestShapeAccuracy_Circle(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeShapeAccuracy, Params: map[string]any{"shape": "circle"}, Threshold: 0.9}

	clean := circleStroke(50, 50, 20, 48, 0)
	res, err := e.Evaluate(rule, strokes.Drawing{Strokes: []strokes.Stroke{clean}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass || res.Accuracy < 0.95 {
		t.Errorf("clean circle: pass=%v accuracy=%f", res.Pass, res.Accuracy)
	}

	rough := circleStroke(50, 50, 20, 48, 9)
	res, err = e.Evaluate(rule, strokes.Drawing{Strokes: []strokes.Stroke{rough}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Errorf("rough circle should fail, accuracy=%f", res.Accuracy)
	}
}

func TestShapeAccuracy_OpenCircleFailsClosure(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeShapeAccuracy, Params: map[string]any{"shape": "circle"}, Threshold: 0.8}

	// Three-quarter arc: good radius consistency but nowhere near closed.
	var pts []strokes.Point
	for i := 0; i <= 36; i++ {
		a := 1.5 * math.Pi * float64(i) / 36
		pts = append(pts, strokes.Point{X: 50 + 20*math.Cos(a), Y: 50 + 20*math.Sin(a)})
	}
	res, err := e.Evaluate(rule, strokes.Drawing{Strokes: []strokes.Stroke{{Points: pts}}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Error("open arc should fail the closure requirement")
	}
}

func TestClosure(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeClosure, Params: map[string]any{"tolerance": 0.1}}

	closed := circleStroke(0, 0, 30, 24, 0)
	res, err := e.Evaluate(rule, strokes.Drawing{Strokes: []strokes.Stroke{closed}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass {
		t.Error("closed loop should pass")
	}

	open := strokes.Stroke{Points: []strokes.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}}}
	res, err = e.Evaluate(rule, strokes.Drawing{Strokes: []strokes.Stroke{open}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Error("open polyline should fail")
	}
}

func TestPointPlacement(t *testing.T) {
	e := NewEngine()
	rule := Rule{
		Type:      TypePointPlacement,
		Params:    map[string]any{"x": 100.0, "y": 100.0, "tolerance": 10.0},
		Threshold: 0.5,
	}

	near := strokes.Drawing{Strokes: []strokes.Stroke{{Points: []strokes.Point{{X: 104, Y: 103}}}}}
	res, err := e.Evaluate(rule, near)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass {
		t.Errorf("mark 5 units from target within tolerance 10 should pass, accuracy=%f", res.Accuracy)
	}

	far := strokes.Drawing{Strokes: []strokes.Stroke{{Points: []strokes.Point{{X: 130, Y: 100}}}}}
	res, err = e.Evaluate(rule, far)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Error("mark 30 units from target should fail")
	}
}

func TestColorMatch(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeColorMatch, Params: map[string]any{"color": "#FF8800"}, Threshold: 0.5}

	d := strokes.Drawing{Strokes: []strokes.Stroke{
		{Color: "#ff8800", Points: []strokes.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{Color: "ff8800", Points: []strokes.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{Color: "#0000ff", Points: []strokes.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
	}}
	res, err := e.Evaluate(rule, d)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass {
		t.Error("2 of 3 matching strokes should pass at threshold 0.5")
	}
	if math.Abs(res.Accuracy-2.0/3.0) > 1e-9 {
		t.Errorf("accuracy = %f, want 2/3", res.Accuracy)
	}
}

func TestPerspectiveLines_Convergent(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypePerspectiveLines, Params: map[string]any{"min": 3}, Threshold: 0.7}

	// Three lines radiating from a common vanishing point at (200, 100).
	d := strokes.Drawing{Strokes: []strokes.Stroke{
		straightStroke(0, 0, 200, 100),
		straightStroke(0, 100, 200, 100),
		straightStroke(0, 200, 200, 100),
	}}
	res, err := e.Evaluate(rule, d)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass || res.Accuracy < 0.95 {
		t.Errorf("convergent lines: pass=%v accuracy=%f", res.Pass, res.Accuracy)
	}
}

func TestPerspectiveLines_Scattered(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypePerspectiveLines, Params: map[string]any{"min": 3}, Threshold: 0.7}

	d := strokes.Drawing{Strokes: []strokes.Stroke{
		straightStroke(0, 0, 100, 100),
		straightStroke(0, 100, 100, 0),
		straightStroke(0, 50, 100, 80),
	}}
	res, err := e.Evaluate(rule, d)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Errorf("scattered lines should fail, accuracy=%f", res.Accuracy)
	}
}

func TestShadingGradation(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeShadingGradation, Params: map[string]any{"min": 4}, Threshold: 0.9}

	graded := strokes.Drawing{}
	for i := 0; i < 5; i++ {
		p := 0.2 + 0.15*float64(i)
		graded.Strokes = append(graded.Strokes, strokes.Stroke{Points: []strokes.Point{
			{X: float64(i) * 10, Y: 0, Pressure: p},
			{X: float64(i) * 10, Y: 50, Pressure: p},
		}})
	}
	res, err := e.Evaluate(rule, graded)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass {
		t.Errorf("monotonic pressure ramp should pass, accuracy=%f", res.Accuracy)
	}

	jumbled := strokes.Drawing{}
	for i, p := range []float64{0.8, 0.2, 0.9, 0.1, 0.7} {
		jumbled.Strokes = append(jumbled.Strokes, strokes.Stroke{Points: []strokes.Point{
			{X: float64(i) * 10, Y: 0, Pressure: p},
			{X: float64(i) * 10, Y: 50, Pressure: p},
		}})
	}
	res, err = e.Evaluate(rule, jumbled)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Errorf("alternating pressure should fail, accuracy=%f", res.Accuracy)
	}
}

func TestCompletion(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeCompletion, Params: map[string]any{"min_strokes": 2, "min_path": 100.0}, Threshold: 1.0}

	res, err := e.Evaluate(rule, strokes.Drawing{Strokes: []strokes.Stroke{straightStroke(0, 0, 30, 0)}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pass {
		t.Error("one short stroke should not satisfy completion")
	}

	d := strokes.Drawing{Strokes: []strokes.Stroke{
		straightStroke(0, 0, 60, 0),
		straightStroke(0, 10, 60, 10),
	}}
	res, err = e.Evaluate(rule, d)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass {
		t.Errorf("two 60-unit strokes should satisfy completion, accuracy=%f", res.Accuracy)
	}
}

// Evaluators are pure: identical failing input yields an identical result on
// every call.
func TestEvaluate_DeterministicOnRepeat(t *testing.T) {
	e := NewEngine()
	rule := Rule{Type: TypeLineCount, Params: map[string]any{"min": 3}, Threshold: 1.0}
	d := strokes.Drawing{Strokes: []strokes.Stroke{straightStroke(0, 0, 10, 0)}}

	first, err := e.Evaluate(rule, d)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Evaluate(rule, d)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("evaluation %d = %+v, first = %+v", i, again, first)
		}
	}
}
