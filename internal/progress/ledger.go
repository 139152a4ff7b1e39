package progress

import (
	"context"
	"sync"
	"time"

	"github.com/halftone/sketchpath/internal/curriculum"
	"github.com/halftone/sketchpath/internal/events"
)

// Repo is the storage collaborator: last-write-wins snapshot persistence.
// Load returns (nil, nil) when no snapshot exists yet.
type Repo interface {
	Load(ctx context.Context) (*Data, error)
	Save(ctx context.Context, data *Data) error
}

// streakWindow is how recent the previous activity must be for a new
// activity day to extend the streak rather than reset it.
const streakWindow = 24 * time.Hour

// Ledger applies completion events to the learner's persisted progress.
// The mutex serializes the read-modify-write cycle: two completion events
// for the same learner never interleave.
type Ledger struct {
	mu    sync.Mutex
	graph *curriculum.Graph
	repo  Repo
	sink  events.Sink
	now   func() time.Time

	dailyGoalXP int
}

// LedgerConfig wires a Ledger. Graph and Repo are required.
type LedgerConfig struct {
	Graph       *curriculum.Graph
	Repo        Repo
	Sink        events.Sink
	Now         func() time.Time
	DailyGoalXP int
}

// NewLedger creates a progress ledger.
func NewLedger(cfg LedgerConfig) *Ledger {
	l := &Ledger{
		graph:       cfg.Graph,
		repo:        cfg.Repo,
		sink:        cfg.Sink,
		now:         cfg.Now,
		dailyGoalXP: cfg.DailyGoalXP,
	}
	if l.sink == nil {
		l.sink = events.NopSink{}
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// load fetches the snapshot or starts a fresh one.
func (l *Ledger) load(ctx context.Context) (*Data, error) {
	data, err := l.repo.Load(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "load progress", Err: err}
	}
	if data == nil {
		data = NewData(l.dailyGoalXP)
	}
	return data, nil
}

// RecordCompletion applies a lesson completion: marks the lesson,
// accumulates XP, refreshes the streak and daily goal, and persists the
// snapshot. A persistence failure returns a *PersistenceError and the event
// may be re-applied; marking is idempotent.
func (l *Ledger) RecordCompletion(ctx context.Context, ev CompletionEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load(ctx)
	if err != nil {
		return err
	}

	treeID := l.graph.TreeOf(ev.LessonID)
	tp := data.Trees[treeID]
	if tp == nil {
		tp = &SkillTreeProgress{
			TreeID:           treeID,
			CompletedLessons: make(map[string]bool),
		}
		data.Trees[treeID] = tp
	}

	firstCompletion := !tp.CompletedLessons[ev.LessonID]
	tp.CompletedLessons[ev.LessonID] = true
	data.Learning.Completed[ev.LessonID] = true

	tp.XP += ev.XPEarned
	data.Learning.TotalXP += ev.XPEarned
	tp.LastAccessedAt = ev.CompletedAt

	if tree, err := l.graph.Tree(treeID); err == nil && len(tree.Lessons) > 0 {
		tp.CompletionPercent = float64(len(tp.CompletedLessons)) / float64(len(tree.Lessons))
		if firstCompletion && tp.CompletionPercent >= 1 {
			data.Learning.Achievements["tree_"+treeID+"_complete"] = true
		}
	}

	for _, a := range ev.Achievements {
		data.Learning.Achievements[a] = true
	}

	l.updateStreak(&data.Learning, ev.CompletedAt)
	l.updateDailyGoal(&data.Learning, ev.XPEarned)

	if err := l.repo.Save(ctx, data); err != nil {
		return &PersistenceError{Op: "save progress", Err: err}
	}

	l.sink.Emit(events.ProgressChanged, map[string]any{
		"lesson_id": ev.LessonID,
		"tree_id":   treeID,
		"total_xp":  data.Learning.TotalXP,
	})
	return nil
}

// updateStreak runs once per calendar day of activity: an activity on a new
// day extends the streak when the previous activity fell within the prior
// 24h window, otherwise restarts it at 1.
func (l *Ledger) updateStreak(lp *LearningProgress, at time.Time) {
	if lp.LastActivityAt.IsZero() {
		lp.CurrentStreak = 1
	} else if !sameDay(lp.LastActivityAt, at) {
		if at.Sub(lp.LastActivityAt) <= streakWindow {
			lp.CurrentStreak++
		} else {
			lp.CurrentStreak = 1
		}
	}
	if lp.CurrentStreak > lp.LongestStreak {
		lp.LongestStreak = lp.CurrentStreak
	}
	lp.LastActivityAt = at
}

// updateDailyGoal accumulates XP toward the daily goal and fires the goal
// notice exactly once per crossing. The counter does not self-reset;
// ResetDaily is invoked by an external scheduler.
func (l *Ledger) updateDailyGoal(lp *LearningProgress, xp int) {
	if lp.DailyGoalXP <= 0 {
		return
	}
	before := lp.DailyXP
	lp.DailyXP += xp
	if before < lp.DailyGoalXP && lp.DailyXP >= lp.DailyGoalXP {
		l.sink.Emit(events.DailyGoalReached, map[string]any{
			"daily_xp": lp.DailyXP,
			"goal_xp":  lp.DailyGoalXP,
		})
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ResetDaily zeroes the daily-goal counter. Invoked by the external daily
// scheduler, never by completion handling.
func (l *Ledger) ResetDaily(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load(ctx)
	if err != nil {
		return err
	}
	data.Learning.DailyXP = 0
	if err := l.repo.Save(ctx, data); err != nil {
		return &PersistenceError{Op: "save progress", Err: err}
	}
	return nil
}

// Snapshot returns the current persisted progress (a fresh record when
// nothing is stored yet).
func (l *Ledger) Snapshot(ctx context.Context) (*Data, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Facts derives the learner facts unlock predicates evaluate against.
func Facts(data *Data) curriculum.LearnerFacts {
	return curriculum.LearnerFacts{
		Level:        LevelForXP(data.Learning.TotalXP),
		XP:           data.Learning.TotalXP,
		Achievements: data.Learning.Achievements,
	}
}

// Recommend returns the next lesson for the learner's current progress,
// delegating to the curriculum graph; nil when the curriculum is exhausted.
func (l *Ledger) Recommend(ctx context.Context) (*curriculum.Lesson, error) {
	data, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return l.graph.RecommendNext(data.Learning.Completed, Facts(data)), nil
}

// Available lists unlocked lessons for the learner's current progress.
// treeID restricts to one tree; "" spans the curriculum.
func (l *Ledger) Available(ctx context.Context, treeID string) ([]curriculum.Lesson, error) {
	data, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return l.graph.AvailableLessons(treeID, data.Learning.Completed, Facts(data)), nil
}
