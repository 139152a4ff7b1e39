package store

import (
	"context"
	"testing"
	"time"

	"github.com/halftone/sketchpath/internal/progress"
	"github.com/halftone/sketchpath/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProgressSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	// No snapshot yet.
	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if data != nil {
		t.Fatal("expected nil data when no snapshot exists")
	}

	saved := progress.NewData(150)
	saved.Learning.TotalXP = 320
	saved.Learning.CurrentStreak = 4
	saved.Learning.Completed["lw-straight-lines"] = true

	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data == nil {
		t.Fatal("expected non-nil data")
	}
	if data.Learning.TotalXP != 320 {
		t.Errorf("total xp = %d, want 320", data.Learning.TotalXP)
	}
	if data.Learning.CurrentStreak != 4 {
		t.Errorf("streak = %d, want 4", data.Learning.CurrentStreak)
	}
	if !data.Learning.Completed["lw-straight-lines"] {
		t.Error("completed lesson lost in round trip")
	}
}

func TestProgressLoadReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for xp := 100; xp <= 300; xp += 100 {
		data := progress.NewData(150)
		data.Learning.TotalXP = xp
		if err := repo.Save(ctx, data); err != nil {
			t.Fatalf("save xp=%d: %v", xp, err)
		}
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Learning.TotalXP != 300 {
		t.Errorf("total xp = %d, want newest (300)", data.Learning.TotalXP)
	}
}

func TestProgressPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for xp := 100; xp <= 500; xp += 100 {
		data := progress.NewData(150)
		data.Learning.TotalXP = xp
		if err := repo.Save(ctx, data); err != nil {
			t.Fatalf("save xp=%d: %v", xp, err)
		}
	}

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("prune: %v", err)
	}

	n, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("snapshots after prune = %d, want 2", n)
	}

	// The newest snapshot survives pruning.
	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Learning.TotalXP != 500 {
		t.Errorf("total xp = %d, want 500", data.Learning.TotalXP)
	}
}

func TestProgressReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, progress.NewData(150)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Error("expected nil data after reset")
	}
}

func TestSuspendedRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.SuspendedRepo()
	ctx := context.Background()

	st, err := repo.LoadSuspended(ctx, "lw-straight-lines")
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if st != nil {
		t.Fatal("expected nil state when nothing is suspended")
	}

	saved := session.State{
		SessionID:          "s-1",
		LessonID:           "lw-straight-lines",
		Phase:              session.PhasePaused,
		ResumePhase:        session.PhasePractice,
		CurrentInstruction: 1,
		Steps:              []session.StepRecord{{Attempts: 2, Passed: true, Accuracy: 0.85}, {}},
		StartedAt:          time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		ActiveElapsed:      3 * time.Minute,
	}
	if err := repo.SaveSuspended(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	st, err = repo.LoadSuspended(ctx, "lw-straight-lines")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st == nil {
		t.Fatal("expected suspended state")
	}
	if st.SessionID != "s-1" || st.ResumePhase != session.PhasePractice {
		t.Errorf("state = %+v, round trip lost fields", st)
	}
	if st.Steps[0].Attempts != 2 || st.ActiveElapsed != 3*time.Minute {
		t.Errorf("state = %+v, round trip lost fields", st)
	}
}

func TestSuspendedReplacesEarlierSession(t *testing.T) {
	s := openTestStore(t)
	repo := s.SuspendedRepo()
	ctx := context.Background()

	first := session.State{SessionID: "s-1", LessonID: "bs-circles", Phase: session.PhasePaused}
	second := session.State{SessionID: "s-2", LessonID: "bs-circles", Phase: session.PhasePaused, CurrentInstruction: 2}
	if err := repo.SaveSuspended(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := repo.SaveSuspended(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	st, err := repo.LoadSuspended(ctx, "bs-circles")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.SessionID != "s-2" || st.CurrentInstruction != 2 {
		t.Errorf("state = %+v, want the replacement session", st)
	}

	n, err := s.Client().SuspendedSession.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("suspended rows = %d, want 1 per lesson", n)
	}
}

func TestSuspendedDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SuspendedRepo()
	ctx := context.Background()

	if err := repo.SaveSuspended(ctx, session.State{SessionID: "s-1", LessonID: "bs-circles"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.DeleteSuspended(ctx, "bs-circles"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	st, err := repo.LoadSuspended(ctx, "bs-circles")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st != nil {
		t.Error("expected nil after delete")
	}

	// Deleting again is a no-op.
	if err := repo.DeleteSuspended(ctx, "bs-circles"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendCompletion(ctx, CompletionEventData{
			SessionID: "s-1",
			LessonID:  "lw-straight-lines",
			Score:     0.8,
			Passed:    true,
			XPEarned:  100 + i,
			Duration:  4 * time.Minute,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	recent, err := repo.RecentCompletions(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent returned %d events, want 2", len(recent))
	}
	if recent[0].XPEarned != 102 {
		t.Errorf("newest first: xp = %d, want 102", recent[0].XPEarned)
	}

	all, err := repo.CompletionsForLesson(ctx, "lw-straight-lines")
	if err != nil {
		t.Fatalf("for lesson: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("lesson query returned %d events, want 3", len(all))
	}
	if all[0].XPEarned != 100 {
		t.Errorf("oldest first: xp = %d, want 100", all[0].XPEarned)
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendCompletion(ctx, CompletionEventData{SessionID: "s-1", LessonID: "bs-circles", Passed: true}); err != nil {
		t.Fatalf("append completion: %v", err)
	}
	if err := repo.AppendHint(ctx, HintEventData{SessionID: "s-1", LessonID: "bs-circles", Instruction: 0, Hint: "lighter grip"}); err != nil {
		t.Fatalf("append hint: %v", err)
	}
	if err := repo.AppendCompletion(ctx, CompletionEventData{SessionID: "s-2", LessonID: "bs-circles", Passed: true}); err != nil {
		t.Fatalf("append completion: %v", err)
	}

	completions, err := s.Client().CompletionEvent.Query().All(ctx)
	if err != nil {
		t.Fatalf("query completions: %v", err)
	}
	hints, err := s.Client().HintEvent.Query().All(ctx)
	if err != nil {
		t.Fatalf("query hints: %v", err)
	}

	seen := map[int64]bool{}
	for _, c := range completions {
		seen[c.Sequence] = true
	}
	for _, h := range hints {
		if seen[h.Sequence] {
			t.Errorf("sequence %d reused across event types", h.Sequence)
		}
		seen[h.Sequence] = true
	}
	if len(seen) != 3 {
		t.Errorf("distinct sequences = %d, want 3", len(seen))
	}
}
