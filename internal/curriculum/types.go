// Package curriculum holds the static lesson catalog: skill trees of
// prerequisite-gated lessons, plus the unlock and recommendation queries the
// rest of the engine runs against it. Definitions are immutable after
// registration.
package curriculum

import "github.com/halftone/sketchpath/internal/validation"

// UnlockKind discriminates unlock-requirement predicates.
type UnlockKind string

const (
	UnlockLesson      UnlockKind = "lesson"
	UnlockLevel       UnlockKind = "level"
	UnlockXP          UnlockKind = "xp"
	UnlockAchievement UnlockKind = "achievement"
)

// UnlockRequirement is a predicate over learner facts gating a lesson beyond
// its prerequisites. Exactly one value field is meaningful per Kind.
type UnlockRequirement struct {
	Kind        UnlockKind `json:"kind"`
	Lesson      string     `json:"lesson,omitempty"`
	Level       int        `json:"level,omitempty"`
	XP          int        `json:"xp,omitempty"`
	Achievement string     `json:"achievement,omitempty"`
}

// LearnerFacts is the snapshot of learner state unlock predicates are
// evaluated against.
type LearnerFacts struct {
	Level        int
	XP           int
	Achievements map[string]bool
}

// TheorySegment is one ordered piece of a lesson's theory phase.
type TheorySegment struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	DurationSecs int    `json:"duration_secs,omitempty"`
	AssetURL     string `json:"asset_url,omitempty"`
}

// Instruction is one guided practice step. Rule is nil for steps that
// auto-pass (pure demonstration steps). Hints maps trigger keys
// ("instruction_<i>_fail", "time_exceeded") to hint text.
type Instruction struct {
	Text          string            `json:"text"`
	Rule          *validation.Rule  `json:"rule,omitempty"`
	Hints         map[string]string `json:"hints,omitempty"`
	HintAfterSecs int               `json:"hint_after_secs,omitempty"`
}

// CriterionKind discriminates assessment criteria scoring.
type CriterionKind string

const (
	// CriterionAutomatic scores by replaying the recorded per-instruction
	// validation outcomes. Never re-evaluates fresh input.
	CriterionAutomatic CriterionKind = "automatic"
	// CriterionManual scores from the assessment submission itself
	// (self-evaluation or reviewer input).
	CriterionManual CriterionKind = "manual"
)

// Criterion is one weighted component of a lesson assessment.
// For automatic criteria, Instructions lists the practice-step indices whose
// recorded accuracies are averaged; empty means all steps.
type Criterion struct {
	ID           string        `json:"id"`
	Description  string        `json:"description,omitempty"`
	Kind         CriterionKind `json:"kind"`
	Weight       float64       `json:"weight"`
	Instructions []int         `json:"instructions,omitempty"`
}

// BonusObjective is an independently evaluated extra worth additive XP.
type BonusObjective struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	XPBonus     int    `json:"xp_bonus"`
}

// Assessment is the weighted scoring scheme closing a lesson.
type Assessment struct {
	Criteria     []Criterion      `json:"criteria"`
	PassingScore float64          `json:"passing_score"`
	Bonuses      []BonusObjective `json:"bonuses,omitempty"`
}

// Lesson is the atomic instructional unit.
type Lesson struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Order           int                 `json:"order"`
	Difficulty      int                 `json:"difficulty"`
	Prerequisites   []string            `json:"prerequisites,omitempty"`
	Unlocks         []UnlockRequirement `json:"unlocks,omitempty"`
	Theory          []TheorySegment     `json:"theory"`
	Practice        []Instruction       `json:"practice"`
	Assessment      Assessment          `json:"assessment"`
	RewardXP        int                 `json:"reward_xp"`
	PreviewAssetURL string              `json:"preview_asset_url,omitempty"`
}

// SkillTree is an ordered collection of lessons sharing a topic.
// Priority orders trees for recommendation (lower first).
type SkillTree struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Priority int      `json:"priority"`
	Lessons  []Lesson `json:"lessons"`
}

// TotalXP returns the aggregate reward XP of all lessons in the tree.
func (t SkillTree) TotalXP() int {
	total := 0
	for _, l := range t.Lessons {
		total += l.RewardXP
	}
	return total
}
