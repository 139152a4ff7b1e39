// Package progress owns the learner's persisted progression: per-tree
// completion, XP totals, streaks, and the daily goal. The lesson state
// machine never mutates these directly; it emits completion events that
// the Ledger applies and persists.
package progress

import (
	"fmt"
	"time"
)

// xpPerLevel converts aggregate XP to a learner level: level 1 at zero XP,
// one level per 250 XP after that.
const xpPerLevel = 250

// DefaultDailyGoalXP is the daily goal applied to fresh profiles.
const DefaultDailyGoalXP = 150

// LevelForXP returns the learner level implied by total XP.
func LevelForXP(xp int) int {
	return 1 + xp/xpPerLevel
}

// SkillTreeProgress is the persisted per-tree record.
type SkillTreeProgress struct {
	TreeID            string          `json:"tree_id"`
	CompletedLessons  map[string]bool `json:"completed_lessons"`
	XP                int             `json:"xp"`
	LastAccessedAt    time.Time       `json:"last_accessed_at"`
	CompletionPercent float64         `json:"completion_percent"`
}

// LearningProgress is the persisted per-learner aggregate record.
type LearningProgress struct {
	TotalXP        int             `json:"total_xp"`
	CurrentStreak  int             `json:"current_streak"`
	LongestStreak  int             `json:"longest_streak"`
	LastActivityAt time.Time       `json:"last_activity_at,omitzero"`
	DailyGoalXP    int             `json:"daily_goal_xp"`
	DailyXP        int             `json:"daily_xp"`
	Completed      map[string]bool `json:"completed"`
	Achievements   map[string]bool `json:"achievements"`
}

// Data is the full persisted progress snapshot, the unit the storage
// collaborator reads and writes.
type Data struct {
	Version  int                           `json:"version"`
	Learning LearningProgress              `json:"learning"`
	Trees    map[string]*SkillTreeProgress `json:"trees"`
}

// CurrentVersion is the snapshot format version.
const CurrentVersion = 1

// NewData returns an empty progress snapshot with the given daily goal.
func NewData(dailyGoalXP int) *Data {
	return &Data{
		Version: CurrentVersion,
		Learning: LearningProgress{
			DailyGoalXP:  dailyGoalXP,
			Completed:    make(map[string]bool),
			Achievements: make(map[string]bool),
		},
		Trees: make(map[string]*SkillTreeProgress),
	}
}

// CompletionEvent is emitted by the lesson state machine when a lesson
// finishes its assessment.
type CompletionEvent struct {
	LessonID     string        `json:"lesson_id"`
	Score        float64       `json:"score"`
	Passed       bool          `json:"passed"`
	XPEarned     int           `json:"xp_earned"`
	Duration     time.Duration `json:"duration"`
	Achievements []string      `json:"achievements,omitempty"`
	CompletedAt  time.Time     `json:"completed_at"`
}

// PersistenceError wraps a storage failure. It is fatal for the transition
// that triggered the write; the caller may retry the same operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("progress: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
