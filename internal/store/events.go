package store

import (
	"context"
	"fmt"
	"time"

	"github.com/halftone/sketchpath/ent"
	"github.com/halftone/sketchpath/ent/completionevent"
)

// CompletionEventData is one finished lesson assessment as appended to the
// event log.
type CompletionEventData struct {
	SessionID    string
	LessonID     string
	Score        float64
	Passed       bool
	XPEarned     int
	Duration     time.Duration
	Achievements []string
}

// HintEventData is one hint surfaced during guided practice.
type HintEventData struct {
	SessionID   string
	LessonID    string
	Instruction int
	Hint        string
}

// EventRepo provides append and query access to the learning event log.
// Events are append-only and carry a global sequence across types.
type EventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *EventRepo) AppendCompletion(ctx context.Context, data CompletionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.CompletionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetLessonID(data.LessonID).
		SetScore(data.Score).
		SetPassed(data.Passed).
		SetXpEarned(data.XPEarned).
		SetDurationMs(data.Duration.Milliseconds()).
		SetAchievements(data.Achievements).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

func (r *EventRepo) AppendHint(ctx context.Context, data HintEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.HintEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetLessonID(data.LessonID).
		SetInstruction(data.Instruction).
		SetHint(data.Hint).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

// RecentCompletions returns the most recent completion events, newest
// first.
func (r *EventRepo) RecentCompletions(ctx context.Context, limit int) ([]CompletionEventData, error) {
	q := r.client.CompletionEvent.Query().
		Order(ent.Desc(completionevent.FieldSequence))
	if limit > 0 {
		q = q.Limit(limit)
	}
	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}

	out := make([]CompletionEventData, 0, len(rows))
	for _, row := range rows {
		out = append(out, CompletionEventData{
			SessionID:    row.SessionID,
			LessonID:     row.LessonID,
			Score:        row.Score,
			Passed:       row.Passed,
			XPEarned:     row.XpEarned,
			Duration:     time.Duration(row.DurationMs) * time.Millisecond,
			Achievements: row.Achievements,
		})
	}
	return out, nil
}

// CompletionsForLesson returns all completion events for one lesson,
// oldest first.
func (r *EventRepo) CompletionsForLesson(ctx context.Context, lessonID string) ([]CompletionEventData, error) {
	rows, err := r.client.CompletionEvent.Query().
		Where(completionevent.LessonID(lessonID)).
		Order(ent.Asc(completionevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query completions for lesson: %w", err)
	}

	out := make([]CompletionEventData, 0, len(rows))
	for _, row := range rows {
		out = append(out, CompletionEventData{
			SessionID:    row.SessionID,
			LessonID:     row.LessonID,
			Score:        row.Score,
			Passed:       row.Passed,
			XPEarned:     row.XpEarned,
			Duration:     time.Duration(row.DurationMs) * time.Millisecond,
			Achievements: row.Achievements,
		})
	}
	return out, nil
}
