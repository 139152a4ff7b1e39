package validation

import "github.com/halftone/sketchpath/internal/strokes"

// defaultStraightness is the floor above which a stroke counts as a "line"
// for counting rules.
const defaultStraightness = 0.8

// evalLineCount counts strokes straight enough to qualify as lines and
// checks the count against min/max bounds.
//
// Params: min (default 1), max (0 = unbounded), straightness (default 0.8).
// Accuracy is observed/min clamped to [0,1], so a short count scores
// proportionally below threshold rather than zero.
func evalLineCount(rule Rule, d strokes.Drawing) Result {
	floor := rule.paramFloat("straightness", defaultStraightness)
	count := 0
	for _, s := range d.Strokes {
		if s.Straightness() >= floor {
			count++
		}
	}
	return countResult(rule, count)
}

// evalStrokeCount checks the raw stroke count against min/max bounds.
// Params: min (default 1), max (0 = unbounded).
func evalStrokeCount(rule Rule, d strokes.Drawing) Result {
	return countResult(rule, len(d.Strokes))
}

func countResult(rule Rule, count int) Result {
	min := rule.paramInt("min", 1)
	max := rule.paramInt("max", 0)

	accuracy := 1.0
	if min > 0 {
		accuracy = strokes.Clamp(float64(count)/float64(min), 0, 1)
	}
	inBounds := count >= min && (max == 0 || count <= max)
	return Result{
		Pass:     inBounds && accuracy >= rule.Threshold,
		Accuracy: accuracy,
	}
}

// evalCompletion is a coarse "did the learner draw enough" gate: at least
// min_strokes strokes and at least min_path total path length.
// Params: min_strokes (default 1), min_path (default 0 = ignored).
func evalCompletion(rule Rule, d strokes.Drawing) Result {
	minStrokes := rule.paramInt("min_strokes", 1)
	minPath := rule.paramFloat("min_path", 0)

	strokeRatio := 1.0
	if minStrokes > 0 {
		strokeRatio = strokes.Clamp(float64(len(d.Strokes))/float64(minStrokes), 0, 1)
	}
	pathRatio := 1.0
	if minPath > 0 {
		pathRatio = strokes.Clamp(d.TotalPathLength()/minPath, 0, 1)
	}

	accuracy := strokeRatio
	if pathRatio < accuracy {
		accuracy = pathRatio
	}
	return Result{Pass: accuracy >= rule.Threshold, Accuracy: accuracy}
}
