package validation

import "github.com/halftone/sketchpath/internal/strokes"

// circularityPenalty scales normalized radius variance into an accuracy
// deduction. A freehand circle with ~10% radius wobble lands around 0.95.
const circularityPenalty = 5.0

// defaultClosureTolerance is the endpoint-gap tolerance as a fraction of the
// stroke's bounding-box diagonal.
const defaultClosureTolerance = 0.1

// evalShapeAccuracy scores how well the dominant stroke matches a target
// shape. Params: shape ("line" or "circle", default "circle"), and for
// circles closure_tolerance (default 0.1) plus open=true to skip the
// closure requirement.
func evalShapeAccuracy(rule Rule, d strokes.Drawing) Result {
	s, ok := dominantStroke(d)
	if !ok {
		return Result{}
	}

	switch rule.paramString("shape", "circle") {
	case "line":
		acc := s.Straightness()
		return Result{Pass: acc >= rule.Threshold, Accuracy: acc}
	default:
		acc := circularity(s)
		res := Result{Pass: acc >= rule.Threshold, Accuracy: acc}
		if rule.Params["open"] != true && !closed(s, rule.paramFloat("closure_tolerance", defaultClosureTolerance)) {
			res.Pass = false
		}
		return res
	}
}

// evalClosure passes iff the dominant stroke's endpoint gap is below a
// size-relative tolerance. Params: tolerance (default 0.1, relative to the
// stroke bounding-box diagonal).
func evalClosure(rule Rule, d strokes.Drawing) Result {
	s, ok := dominantStroke(d)
	if !ok {
		return Result{}
	}
	diag := strokes.Drawing{Strokes: []strokes.Stroke{s}}.Bounds().Diagonal()
	if diag == 0 {
		return Result{}
	}
	gap := s.EndpointGap()
	tol := rule.paramFloat("tolerance", defaultClosureTolerance)
	return Result{
		Pass:     gap <= tol*diag,
		Accuracy: strokes.Clamp(1-gap/diag, 0, 1),
	}
}

// circularity fits a centroid, normalizes radius variance by the squared
// mean radius, and maps the result to [0,1].
func circularity(s strokes.Stroke) float64 {
	mean, variance := s.RadiusStats()
	if mean == 0 {
		return 0
	}
	normalized := variance / (mean * mean)
	return strokes.Clamp(1-circularityPenalty*normalized, 0, 1)
}

func closed(s strokes.Stroke, tol float64) bool {
	diag := strokes.Drawing{Strokes: []strokes.Stroke{s}}.Bounds().Diagonal()
	if diag == 0 {
		return false
	}
	return s.EndpointGap() <= tol*diag
}

// dominantStroke returns the stroke with the longest path, the one the
// learner most plausibly meant as the shape.
func dominantStroke(d strokes.Drawing) (strokes.Stroke, bool) {
	best := -1
	bestLen := -1.0
	for i, s := range d.Strokes {
		if l := s.PathLength(); l > bestLen {
			best, bestLen = i, l
		}
	}
	if best < 0 || bestLen == 0 {
		return strokes.Stroke{}, false
	}
	return d.Strokes[best], true
}
