package validation

import (
	"math"
	"strings"

	"github.com/halftone/sketchpath/internal/strokes"
)

// evalPointPlacement measures how close the learner's mark landed to a
// target position. Params: x, y (target, required), tolerance (required,
// canvas units). Accuracy is 1 at the target and 0.5 exactly at the
// tolerance radius, so a threshold of 0.5 means "inside the tolerance".
func evalPointPlacement(rule Rule, d strokes.Drawing) Result {
	tol := rule.paramFloat("tolerance", 0)
	if tol <= 0 || d.PointCount() == 0 {
		return Result{}
	}
	target := strokes.Point{
		X: rule.paramFloat("x", 0),
		Y: rule.paramFloat("y", 0),
	}

	nearest := math.Inf(1)
	for _, s := range d.Strokes {
		for _, p := range s.Points {
			if dist := strokes.Dist(p, target); dist < nearest {
				nearest = dist
			}
		}
	}

	accuracy := strokes.Clamp(1-nearest/(2*tol), 0, 1)
	return Result{Pass: nearest <= tol && accuracy >= rule.Threshold, Accuracy: accuracy}
}

// evalColorMatch scores the fraction of strokes drawn in the target color.
// Params: color (required, e.g. "#ff8800"; compared case-insensitively with
// or without the leading "#").
func evalColorMatch(rule Rule, d strokes.Drawing) Result {
	target := normalizeColor(rule.paramString("color", ""))
	if target == "" || len(d.Strokes) == 0 {
		return Result{}
	}
	matched := 0
	for _, s := range d.Strokes {
		if normalizeColor(s.Color) == target {
			matched++
		}
	}
	accuracy := float64(matched) / float64(len(d.Strokes))
	return Result{Pass: accuracy >= rule.Threshold, Accuracy: accuracy}
}

func normalizeColor(c string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c)), "#")
}
