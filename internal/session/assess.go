package session

import (
	"fmt"
	"math"

	"github.com/halftone/sketchpath/internal/curriculum"
	"github.com/halftone/sketchpath/internal/strokes"
)

// perfectScore is the final score at or above which the perfect bonus
// multiplier applies.
const perfectScore = 0.95

// perfectMultiplier scales reward XP for a perfect run. Multiplicative and
// exclusive: it never stacks with itself, and bonus-objective XP is added
// on top, not multiplied.
const perfectMultiplier = 1.5

// score computes the weighted assessment result. Automatic criteria replay
// the recorded per-instruction outcomes deterministically; they never
// re-evaluate fresh input. Manual criteria read the submitted scores.
func (m *Machine) score(input AssessmentInput) CompletionResult {
	a := m.lesson.Assessment

	var weightSum, weighted float64
	for _, c := range a.Criteria {
		weightSum += c.Weight
		weighted += c.Weight * m.criterionScore(c, input)
	}
	final := 0.0
	if weightSum > 0 {
		final = weighted / weightSum
	}

	passed := final >= a.PassingScore
	xp := m.lesson.RewardXP
	var achievements []string
	if final >= perfectScore {
		xp = int(math.Round(float64(m.lesson.RewardXP) * perfectMultiplier))
		achievements = append(achievements, fmt.Sprintf("perfect_%s", m.lesson.ID))
	}
	for _, b := range a.Bonuses {
		if input.Bonuses[b.ID] {
			xp += b.XPBonus
			achievements = append(achievements, fmt.Sprintf("bonus_%s_%s", m.lesson.ID, b.ID))
		}
	}
	return CompletionResult{
		LessonID:     m.lesson.ID,
		Score:        final,
		Passed:       passed,
		XPEarned:     xp,
		Duration:     m.state.elapsedAt(m.now()),
		Achievements: achievements,
	}
}

// criterionScore resolves one criterion to [0,1].
func (m *Machine) criterionScore(c curriculum.Criterion, input AssessmentInput) float64 {
	switch c.Kind {
	case curriculum.CriterionManual:
		return strokes.Clamp(input.Scores[c.ID], 0, 1)
	default:
		indices := c.Instructions
		if len(indices) == 0 {
			indices = make([]int, len(m.state.Steps))
			for i := range indices {
				indices[i] = i
			}
		}
		if len(indices) == 0 {
			return 0
		}
		var sum float64
		for _, idx := range indices {
			sum += m.state.Steps[idx].Accuracy
		}
		return sum / float64(len(indices))
	}
}
