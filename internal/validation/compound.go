package validation

import "github.com/halftone/sketchpath/internal/strokes"

// evalPerspectiveLines checks that the drawn guide lines converge toward a
// common vanishing point. Each sufficiently straight stroke is extended to
// an infinite line; accuracy falls off with the dispersion of the pairwise
// intersection points relative to the drawing size.
//
// Params: min (default 2, minimum qualifying lines), straightness
// (default 0.7).
func evalPerspectiveLines(rule Rule, d strokes.Drawing) Result {
	floor := rule.paramFloat("straightness", 0.7)
	min := rule.paramInt("min", 2)

	var lines []strokes.Line
	for _, s := range d.Strokes {
		if s.Straightness() < floor {
			continue
		}
		if l, ok := s.ChordLine(); ok {
			lines = append(lines, l)
		}
	}
	if len(lines) < min {
		acc := 0.0
		if min > 0 {
			acc = strokes.Clamp(float64(len(lines))/float64(min), 0, 1)
		}
		return Result{Accuracy: acc}
	}

	var crossings []strokes.Point
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			if p, ok := strokes.Intersect(lines[i], lines[j]); ok {
				crossings = append(crossings, p)
			}
		}
	}
	diag := d.Bounds().Diagonal()
	if len(crossings) == 0 || diag == 0 {
		return Result{}
	}

	// Tight convergence means the crossings cluster well inside a quarter
	// of the drawing's own extent.
	spread := strokes.Dispersion(crossings)
	accuracy := strokes.Clamp(1-4*spread/diag, 0, 1)
	return Result{Pass: accuracy >= rule.Threshold, Accuracy: accuracy}
}

// evalShadingGradation checks for a monotonic pressure trend across stroke
// order, the signature of a value-gradation exercise. Accuracy is the
// fraction of adjacent stroke pairs moving in the dominant direction.
//
// Params: min (default 3, minimum strokes for a meaningful gradient).
func evalShadingGradation(rule Rule, d strokes.Drawing) Result {
	min := rule.paramInt("min", 3)
	if len(d.Strokes) < min || len(d.Strokes) < 2 {
		return Result{}
	}

	pressures := make([]float64, len(d.Strokes))
	flat := true
	for i, s := range d.Strokes {
		pressures[i] = s.MeanPressure()
		if i > 0 && pressures[i] != pressures[0] {
			flat = false
		}
	}
	if flat {
		return Result{}
	}

	inc, dec := 0, 0
	for i := 1; i < len(pressures); i++ {
		switch {
		case pressures[i] > pressures[i-1]:
			inc++
		case pressures[i] < pressures[i-1]:
			dec++
		}
	}
	dominant := inc
	if dec > dominant {
		dominant = dec
	}
	accuracy := float64(dominant) / float64(len(pressures)-1)
	return Result{Pass: accuracy >= rule.Threshold, Accuracy: accuracy}
}
