package session

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/halftone/sketchpath/internal/curriculum"
	"github.com/halftone/sketchpath/internal/events"
	"github.com/halftone/sketchpath/internal/progress"
	"github.com/halftone/sketchpath/internal/strokes"
	"github.com/halftone/sketchpath/internal/validation"
)

type fakeRecorder struct {
	recorded []progress.CompletionEvent
	failNext error
}

func (r *fakeRecorder) RecordCompletion(ctx context.Context, ev progress.CompletionEvent) error {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	r.recorded = append(r.recorded, ev)
	return nil
}

type fakeSuspendedStore struct {
	saved []State
}

func (s *fakeSuspendedStore) SaveSuspended(ctx context.Context, st State) error {
	s.saved = append(s.saved, st)
	return nil
}

type clock struct{ t time.Time }

func newClock() *clock {
	return &clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

// placementRule targets the origin: a mark at distance d scores
// clamp(1 - d/(2*tolerance), 0, 1).
func placementRule(threshold float64) *validation.Rule {
	return &validation.Rule{
		Type:      validation.TypePointPlacement,
		Params:    map[string]any{"x": 0.0, "y": 0.0, "tolerance": 10.0},
		Threshold: threshold,
	}
}

// markAt is a single-point drawing at (x, 0), distance x from the target.
func markAt(x float64) strokes.Drawing {
	return strokes.Drawing{Strokes: []strokes.Stroke{{Points: []strokes.Point{{X: x}}}}}
}

func testLesson() curriculum.Lesson {
	return curriculum.Lesson{
		ID:         "lw-straight-lines",
		Title:      "Straight lines",
		Order:      1,
		Difficulty: 1,
		Theory: []curriculum.TheorySegment{
			{Title: "Grip", Body: "Hold the pen loosely."},
			{Title: "Motion", Body: "Draw from the shoulder."},
		},
		Practice: []curriculum.Instruction{
			{
				Text: "Place a mark on the target.",
				Rule: placementRule(0.5),
				Hints: map[string]string{
					"instruction_0_fail": "Aim for the center dot.",
				},
			},
			{
				Text:          "Place a second mark on the target.",
				Rule:          placementRule(0.5),
				Hints:         map[string]string{"time_exceeded": "Slow down and look at the dot first."},
				HintAfterSecs: 30,
			},
		},
		Assessment: curriculum.Assessment{
			Criteria: []curriculum.Criterion{
				{ID: "first", Kind: curriculum.CriterionAutomatic, Weight: 0.5, Instructions: []int{0}},
				{ID: "second", Kind: curriculum.CriterionAutomatic, Weight: 0.5, Instructions: []int{1}},
			},
			PassingScore: 0.7,
			Bonuses: []curriculum.BonusObjective{
				{ID: "single-try", XPBonus: 25},
			},
		},
		RewardXP: 100,
	}
}

// runToAssessment drives a fresh session through theory and practice,
// landing marks at the given distances from the target.
func runToAssessment(t *testing.T, m *Machine, lesson curriculum.Lesson, distances ...float64) {
	t.Helper()
	if err := m.Start(context.Background(), lesson); err != nil {
		t.Fatal(err)
	}
	for i := range lesson.Theory {
		if err := m.AdvanceTheory(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.BeginPractice(); err != nil {
		t.Fatal(err)
	}
	for i, d := range distances {
		res, err := m.SubmitStep(i, markAt(d))
		if err != nil {
			t.Fatal(err)
		}
		if !res.Passed {
			t.Fatalf("step %d at distance %v did not pass", i, d)
		}
	}
}

func TestLifecycle_WeightedAssessment(t *testing.T) {
	rec := &fakeRecorder{}
	clk := newClock()
	m := NewMachine(Config{Recorder: rec, Now: clk.now})

	// Accuracies 0.9 and 0.6; equal weights average to 0.75, over the 0.7
	// passing score.
	runToAssessment(t, m, testLesson(), 2, 8)

	if phase := m.State().Phase; phase != PhaseReadyForAssessment {
		t.Fatalf("phase = %s, want ready_for_assessment", phase)
	}
	result, err := m.Complete(context.Background(), AssessmentInput{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := result.Score - 0.75; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("score = %v, want 0.75", result.Score)
	}
	if !result.Passed {
		t.Error("assessment should pass at 0.75 against 0.7")
	}
	if result.XPEarned != 100 {
		t.Errorf("XP = %d, want base 100 (no perfect bonus at 0.75)", result.XPEarned)
	}
	if phase := m.State().Phase; phase != PhaseCompleted {
		t.Errorf("phase after complete = %s, want completed", phase)
	}
	if len(rec.recorded) != 1 {
		t.Fatalf("recorded %d completion events, want 1", len(rec.recorded))
	}
	if got := rec.recorded[0].LessonID; got != "lw-straight-lines" {
		t.Errorf("recorded lesson = %q", got)
	}
}

func TestComplete_PerfectBonus(t *testing.T) {
	rec := &fakeRecorder{}
	m := NewMachine(Config{Recorder: rec, Now: newClock().now})

	// Dead-center marks score 1.0 each.
	runToAssessment(t, m, testLesson(), 0, 0)
	result, err := m.Complete(context.Background(), AssessmentInput{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 1 {
		t.Fatalf("score = %v, want 1", result.Score)
	}
	if result.XPEarned != 150 {
		t.Errorf("XP = %d, want 150 (100 * 1.5 perfect multiplier)", result.XPEarned)
	}
	want := []string{"perfect_lw-straight-lines"}
	if !reflect.DeepEqual(result.Achievements, want) {
		t.Errorf("achievements = %v, want %v", result.Achievements, want)
	}
}

func TestComplete_BonusObjectivesAdditive(t *testing.T) {
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Now: newClock().now})
	runToAssessment(t, m, testLesson(), 0, 0)

	result, err := m.Complete(context.Background(), AssessmentInput{
		Bonuses: map[string]bool{"single-try": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Bonus XP stacks on top of the multiplied reward, not inside it.
	if result.XPEarned != 175 {
		t.Errorf("XP = %d, want 175 (150 perfect + 25 bonus)", result.XPEarned)
	}
	found := false
	for _, a := range result.Achievements {
		if a == "bonus_lw-straight-lines_single-try" {
			found = true
		}
	}
	if !found {
		t.Errorf("bonus achievement missing from %v", result.Achievements)
	}
}

func TestStart_RejectedWhileActive(t *testing.T) {
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Now: newClock().now})
	if err := m.Start(context.Background(), testLesson()); err != nil {
		t.Fatal(err)
	}

	err := m.Start(context.Background(), testLesson())
	var se *StateError
	if !errors.As(err, &se) || se.Kind != KindSessionActive {
		t.Fatalf("second start: error = %v, want StateError session_active", err)
	}

	// After exit the machine accepts a new lesson again.
	if err := m.Exit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := m.Start(context.Background(), testLesson()); err != nil {
		t.Errorf("start after exit: %v", err)
	}
}

func TestPhaseGating(t *testing.T) {
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Now: newClock().now})
	lesson := testLesson()

	assertStateErr := func(t *testing.T, err error, kind StateErrorKind) {
		t.Helper()
		var se *StateError
		if !errors.As(err, &se) || se.Kind != kind {
			t.Fatalf("error = %v, want StateError %s", err, kind)
		}
	}

	// Nothing but Start works while idle.
	_, err := m.SubmitStep(0, markAt(0))
	assertStateErr(t, err, KindInvalidPhase)
	assertStateErr(t, m.BeginPractice(), KindInvalidPhase)
	_, err = m.Complete(context.Background(), AssessmentInput{})
	assertStateErr(t, err, KindInvalidPhase)

	if err := m.Start(context.Background(), lesson); err != nil {
		t.Fatal(err)
	}

	// Practice is gated behind the full theory pass.
	assertStateErr(t, m.BeginPractice(), KindInvalidPhase)
	assertStateErr(t, m.AdvanceTheory(5), KindInvalidInstructionIndex)
	if err := m.AdvanceTheory(0); err != nil {
		t.Fatal(err)
	}
	assertStateErr(t, m.BeginPractice(), KindInvalidPhase)
	if err := m.AdvanceTheory(1); err != nil {
		t.Fatal(err)
	}
	if err := m.BeginPractice(); err != nil {
		t.Fatal(err)
	}

	// Steps must be submitted in order, and assessment waits for all of
	// them.
	_, err = m.SubmitStep(1, markAt(0))
	assertStateErr(t, err, KindInvalidInstructionIndex)
	_, err = m.Complete(context.Background(), AssessmentInput{})
	assertStateErr(t, err, KindInvalidPhase)
	if _, err := m.SubmitStep(0, markAt(0)); err != nil {
		t.Fatal(err)
	}
	_, err = m.Complete(context.Background(), AssessmentInput{})
	assertStateErr(t, err, KindInvalidPhase)
}

func TestSubmitStep_FailureRecordsAttemptAndHint(t *testing.T) {
	sink := &events.CaptureSink{}
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Sink: sink, Now: newClock().now})
	lesson := testLesson()
	if err := m.Start(context.Background(), lesson); err != nil {
		t.Fatal(err)
	}
	for i := range lesson.Theory {
		if err := m.AdvanceTheory(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.BeginPractice(); err != nil {
		t.Fatal(err)
	}

	// A mark far outside the tolerance fails and surfaces the registered
	// fail hint; the instruction pointer stays put.
	res, err := m.SubmitStep(0, markAt(50))
	if err != nil {
		t.Fatal(err)
	}
	if res.Passed {
		t.Fatal("mark at distance 50 should fail")
	}
	if res.Hint != "Aim for the center dot." {
		t.Errorf("hint = %q", res.Hint)
	}
	st := m.State()
	if st.CurrentInstruction != 0 {
		t.Errorf("instruction advanced to %d on failure", st.CurrentInstruction)
	}
	if st.Steps[0].Attempts != 1 {
		t.Errorf("attempts = %d, want 1", st.Steps[0].Attempts)
	}
	if got := len(sink.Named(events.HintTriggered)); got != 1 {
		t.Errorf("hint events = %d, want 1", got)
	}

	// A later pass keeps the failure count: attempts count failures only.
	if _, err := m.SubmitStep(0, markAt(0)); err != nil {
		t.Fatal(err)
	}
	st = m.State()
	if !st.Steps[0].Passed || st.Steps[0].Attempts != 1 {
		t.Errorf("step record = %+v, want passed with 1 failed attempt", st.Steps[0])
	}
	if st.CurrentInstruction != 1 {
		t.Errorf("instruction = %d, want 1 after pass", st.CurrentInstruction)
	}
}

func TestSubmitStep_TimeExceededHint(t *testing.T) {
	clk := newClock()
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Now: clk.now})
	lesson := testLesson()
	runToAssessmentStep := func() {
		if err := m.Start(context.Background(), lesson); err != nil {
			t.Fatal(err)
		}
		for i := range lesson.Theory {
			if err := m.AdvanceTheory(i); err != nil {
				t.Fatal(err)
			}
		}
		if err := m.BeginPractice(); err != nil {
			t.Fatal(err)
		}
		if _, err := m.SubmitStep(0, markAt(0)); err != nil {
			t.Fatal(err)
		}
	}
	runToAssessmentStep()

	// Instruction 1 only has a time_exceeded hint, armed after 30s.
	res, err := m.SubmitStep(1, markAt(50))
	if err != nil {
		t.Fatal(err)
	}
	if res.Hint != "" {
		t.Errorf("hint before delay = %q, want none", res.Hint)
	}

	clk.advance(45 * time.Second)
	res, err = m.SubmitStep(1, markAt(50))
	if err != nil {
		t.Fatal(err)
	}
	if res.Hint != "Slow down and look at the dot first." {
		t.Errorf("hint after delay = %q", res.Hint)
	}
}

func TestSubmitStep_UnknownRuleTypeLeavesStateUntouched(t *testing.T) {
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Now: newClock().now})
	lesson := testLesson()
	lesson.Practice[0].Rule = &validation.Rule{Type: "charisma", Threshold: 0.5}
	if err := m.Start(context.Background(), lesson); err != nil {
		t.Fatal(err)
	}
	for i := range lesson.Theory {
		if err := m.AdvanceTheory(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.BeginPractice(); err != nil {
		t.Fatal(err)
	}

	before := m.State()
	_, err := m.SubmitStep(0, markAt(0))
	var unknown *validation.UnknownRuleTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownRuleTypeError", err)
	}
	after := m.State()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state mutated on curriculum defect:\n  before: %+v\n  after:  %+v", before, after)
	}
}

func TestPauseResume_ClockExcludesPausedTime(t *testing.T) {
	clk := newClock()
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Now: clk.now})
	if err := m.Start(context.Background(), testLesson()); err != nil {
		t.Fatal(err)
	}

	clk.advance(2 * time.Minute)
	if err := m.Pause(); err != nil {
		t.Fatal(err)
	}
	if got := m.ElapsedActive(); got != 2*time.Minute {
		t.Errorf("elapsed at pause = %v, want 2m", got)
	}

	// Time spent paused never counts.
	clk.advance(30 * time.Minute)
	if got := m.ElapsedActive(); got != 2*time.Minute {
		t.Errorf("elapsed while paused = %v, want 2m", got)
	}

	if err := m.Resume(); err != nil {
		t.Fatal(err)
	}
	if phase := m.State().Phase; phase != PhaseTheory {
		t.Errorf("resume returned phase %s, want theory", phase)
	}
	clk.advance(3 * time.Minute)
	if got := m.ElapsedActive(); got != 5*time.Minute {
		t.Errorf("elapsed after resume = %v, want 5m", got)
	}

	// Pause is only legal from an active phase, resume only from paused.
	var se *StateError
	if err := m.Resume(); !errors.As(err, &se) || se.Kind != KindInvalidPhase {
		t.Errorf("resume while running: %v, want invalid_phase", err)
	}
}

func TestComplete_RetryAfterRecorderFailureDoesNotRescore(t *testing.T) {
	rec := &fakeRecorder{failNext: errors.New("db locked")}
	m := NewMachine(Config{Recorder: rec, Now: newClock().now})
	lesson := testLesson()
	lesson.Assessment.Criteria = []curriculum.Criterion{
		{ID: "form", Kind: curriculum.CriterionManual, Weight: 1},
	}
	runToAssessment(t, m, lesson, 0, 0)

	first, err := m.Complete(context.Background(), AssessmentInput{
		Scores: map[string]float64{"form": 0.8},
	})
	if err == nil {
		t.Fatal("expected recorder failure to fail the transition")
	}
	if first.Score != 0.8 {
		t.Fatalf("score = %v, want 0.8", first.Score)
	}
	if phase := m.State().Phase; phase != PhaseReadyForAssessment {
		t.Fatalf("phase after failed complete = %s, want ready_for_assessment", phase)
	}

	// The retry carries a different manual score; the cached result wins,
	// so the assessment is provably not re-run.
	second, err := m.Complete(context.Background(), AssessmentInput{
		Scores: map[string]float64{"form": 0.1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if second.Score != first.Score || second.XPEarned != first.XPEarned {
		t.Errorf("retry rescored: first %+v, second %+v", first, second)
	}
	if len(rec.recorded) != 1 {
		t.Errorf("recorded %d events, want 1", len(rec.recorded))
	}
	if phase := m.State().Phase; phase != PhaseCompleted {
		t.Errorf("phase after retry = %s, want completed", phase)
	}
}

func TestExitRestore_RoundTrip(t *testing.T) {
	store := &fakeSuspendedStore{}
	clk := newClock()
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Suspended: store, Now: clk.now})
	lesson := testLesson()
	if err := m.Start(context.Background(), lesson); err != nil {
		t.Fatal(err)
	}
	for i := range lesson.Theory {
		if err := m.AdvanceTheory(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.BeginPractice(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitStep(0, markAt(50)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitStep(0, markAt(0)); err != nil {
		t.Fatal(err)
	}

	clk.advance(time.Minute)
	if err := m.Exit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d suspended states, want 1", len(store.saved))
	}
	saved := store.saved[0]
	if saved.Phase != PhasePaused || saved.ResumePhase != PhasePractice {
		t.Fatalf("suspended as %s/%s, want paused/practice", saved.Phase, saved.ResumePhase)
	}
	if saved.ActiveElapsed != time.Minute {
		t.Errorf("suspended elapsed = %v, want 1m", saved.ActiveElapsed)
	}
	if saved.Steps[0].Attempts != 1 || !saved.Steps[0].Passed {
		t.Errorf("suspended step 0 = %+v, attempt history lost", saved.Steps[0])
	}

	// The machine is released; restore rehydrates and resume continues
	// where the learner left off.
	if phase := m.State().Phase; phase != PhaseNotStarted {
		t.Fatalf("phase after exit = %s, want not_started", phase)
	}
	if err := m.Restore(lesson, saved); err != nil {
		t.Fatal(err)
	}
	if err := m.Resume(); err != nil {
		t.Fatal(err)
	}
	st := m.State()
	if st.Phase != PhasePractice || st.CurrentInstruction != 1 {
		t.Fatalf("restored to %s instruction %d, want practice/1", st.Phase, st.CurrentInstruction)
	}
	if _, err := m.SubmitStep(1, markAt(0)); err != nil {
		t.Fatal(err)
	}
	if phase := m.State().Phase; phase != PhaseReadyForAssessment {
		t.Errorf("phase = %s, want ready_for_assessment", phase)
	}
}

func TestRestore_RejectsMismatchedState(t *testing.T) {
	m := NewMachine(Config{Recorder: &fakeRecorder{}, Now: newClock().now})
	lesson := testLesson()

	if err := m.Restore(lesson, State{LessonID: "other-lesson"}); err == nil {
		t.Error("restore accepted state for a different lesson")
	}
	if err := m.Restore(lesson, State{LessonID: lesson.ID, Steps: make([]StepRecord, 5)}); err == nil {
		t.Error("restore accepted state with a mismatched step count")
	}
}

func TestState_JSONRoundTrip(t *testing.T) {
	orig := State{
		SessionID:          "s-1",
		LessonID:           "lw-straight-lines",
		Phase:              PhasePaused,
		ResumePhase:        PhasePractice,
		TheorySegment:      2,
		TheoryProgress:     1,
		PracticeProgress:   0.5,
		CurrentInstruction: 1,
		Steps: []StepRecord{
			{Attempts: 2, Passed: true, Accuracy: 0.85},
			{},
		},
		StartedAt:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		ActiveElapsed: 4 * time.Minute,
	}

	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back State
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Errorf("round trip mismatch:\n  orig: %+v\n  back: %+v", orig, back)
	}
}
