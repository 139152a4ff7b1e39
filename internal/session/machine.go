package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halftone/sketchpath/internal/assets"
	"github.com/halftone/sketchpath/internal/curriculum"
	"github.com/halftone/sketchpath/internal/events"
	"github.com/halftone/sketchpath/internal/progress"
	"github.com/halftone/sketchpath/internal/strokes"
	"github.com/halftone/sketchpath/internal/validation"
)

// CompletionRecorder receives the completion event when a lesson finishes.
// A returned error fails the Complete transition; losing a completion
// record is unacceptable.
type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, ev progress.CompletionEvent) error
}

// SuspendedStore persists a partial session on Exit for later resumption.
type SuspendedStore interface {
	SaveSuspended(ctx context.Context, st State) error
}

// StepResult is returned from SubmitStep.
type StepResult struct {
	Passed   bool
	Accuracy float64
	// Hint is non-empty when a failure surfaced a registered hint.
	Hint string
	// PracticeComplete is true once the final instruction has passed and
	// the session is ready for assessment.
	PracticeComplete bool
}

// AssessmentInput carries the externally supplied parts of an assessment:
// scores for manual criteria keyed by criterion id, and which bonus
// objectives were achieved. Automatic criteria ignore it entirely.
type AssessmentInput struct {
	Scores  map[string]float64
	Bonuses map[string]bool
}

// CompletionResult is the scored outcome of a completed lesson.
type CompletionResult struct {
	LessonID     string
	Score        float64
	Passed       bool
	XPEarned     int
	Duration     time.Duration
	Achievements []string
}

// Config wires a Machine's collaborators. Zero-value fields get no-op or
// default implementations; Recorder is required.
type Config struct {
	Engine    *validation.Engine
	Preloader assets.Preloader
	Sink      events.Sink
	Recorder  CompletionRecorder
	Suspended SuspendedStore
	Logger    *zap.Logger
	Now       func() time.Time
}

// Machine drives one lesson session at a time. Transition methods are
// serialized by an internal mutex and never run concurrently.
type Machine struct {
	mu sync.Mutex

	engine    *validation.Engine
	preloader assets.Preloader
	sink      events.Sink
	recorder  CompletionRecorder
	suspended SuspendedStore
	logger    *zap.Logger
	now       func() time.Time

	lesson  *curriculum.Lesson
	state   State
	pending *CompletionResult
}

// NewMachine creates an idle machine.
func NewMachine(cfg Config) *Machine {
	m := &Machine{
		engine:    cfg.Engine,
		preloader: cfg.Preloader,
		sink:      cfg.Sink,
		recorder:  cfg.Recorder,
		suspended: cfg.Suspended,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	if m.engine == nil {
		m.engine = validation.NewEngine()
	}
	if m.preloader == nil {
		m.preloader = assets.NopPreloader{}
	}
	if m.sink == nil {
		m.sink = events.NopSink{}
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// State returns a snapshot of the current session state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.clone()
}

// Lesson returns the active lesson definition, or false when idle.
func (m *Machine) Lesson() (curriculum.Lesson, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lesson == nil {
		return curriculum.Lesson{}, false
	}
	return *m.lesson, true
}

// ElapsedActive returns the session's active time, excluding paused
// intervals.
func (m *Machine) ElapsedActive() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.elapsedAt(m.now())
}

// idle reports whether the machine can accept a new lesson.
func (m *Machine) idle() bool {
	return m.state.Phase == PhaseNotStarted || m.state.Phase == PhaseCompleted
}

// Start begins a lesson: NotStarted -> Theory. Starting while a session is
// live is rejected; callers must Exit first. Asset preloads are requested
// here and are non-fatal.
func (m *Machine) Start(ctx context.Context, lesson curriculum.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.idle() {
		return &StateError{Kind: KindSessionActive, Op: "start", Phase: m.state.Phase, Detail: "exit the active session first"}
	}

	l := lesson
	m.lesson = &l
	now := m.now()
	m.state = State{
		SessionID:   uuid.NewString(),
		LessonID:    l.ID,
		Phase:       PhaseTheory,
		Steps:       make([]StepRecord, len(l.Practice)),
		StartedAt:   now,
		ClockAnchor: now,
	}
	m.pending = nil

	m.preload(ctx, l)
	m.sink.Emit(events.LessonStarted, map[string]any{
		"lesson_id":  l.ID,
		"session_id": m.state.SessionID,
	})
	return nil
}

// preload warms lesson media. Failures are logged and swallowed: the lesson
// proceeds without the asset.
func (m *Machine) preload(ctx context.Context, l curriculum.Lesson) {
	urls := make([]string, 0, len(l.Theory)+1)
	if l.PreviewAssetURL != "" {
		urls = append(urls, l.PreviewAssetURL)
	}
	for _, seg := range l.Theory {
		if seg.AssetURL != "" {
			urls = append(urls, seg.AssetURL)
		}
	}
	for _, url := range urls {
		if err := m.preloader.Preload(ctx, url); err != nil {
			m.logger.Warn("asset preload failed", zap.String("url", url), zap.Error(err))
		}
	}
}

// AdvanceTheory marks the theory segment at segmentIndex as read. Reaching
// the final segment transitions to ReadyForPractice.
func (m *Machine) AdvanceTheory(segmentIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Phase != PhaseTheory {
		return &StateError{Kind: KindInvalidPhase, Op: "advanceTheory", Phase: m.state.Phase}
	}
	total := len(m.lesson.Theory)
	if segmentIndex < 0 || segmentIndex >= total {
		return &StateError{
			Kind: KindInvalidInstructionIndex, Op: "advanceTheory", Phase: m.state.Phase,
			Detail: fmt.Sprintf("segment %d of %d", segmentIndex, total),
		}
	}

	m.state.TheorySegment = segmentIndex + 1
	m.state.TheoryProgress = float64(segmentIndex+1) / float64(total)
	if segmentIndex == total-1 {
		m.state.Phase = PhaseReadyForPractice
	}
	return nil
}

// BeginPractice opens the guided practice phase at the first instruction.
func (m *Machine) BeginPractice() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Phase != PhaseReadyForPractice {
		return &StateError{Kind: KindInvalidPhase, Op: "beginPractice", Phase: m.state.Phase}
	}
	m.state.Phase = PhasePractice
	m.state.CurrentInstruction = 0
	return nil
}

// SubmitStep scores a drawing for the current instruction. Steps without a
// rule auto-pass. A failing submission records the attempt and surfaces a
// hint when one is registered; the instruction does not advance. An unknown
// rule type is a curriculum defect and propagates without mutating state.
func (m *Machine) SubmitStep(instructionIndex int, drawing strokes.Drawing) (StepResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Phase != PhasePractice {
		return StepResult{}, &StateError{Kind: KindInvalidPhase, Op: "submitStep", Phase: m.state.Phase}
	}
	if instructionIndex != m.state.CurrentInstruction {
		return StepResult{}, &StateError{
			Kind: KindInvalidInstructionIndex, Op: "submitStep", Phase: m.state.Phase,
			Detail: fmt.Sprintf("instruction %d, current is %d", instructionIndex, m.state.CurrentInstruction),
		}
	}

	ins := m.lesson.Practice[instructionIndex]
	res := validation.Result{Pass: true, Accuracy: 1}
	if ins.Rule != nil {
		var err error
		res, err = m.engine.Evaluate(*ins.Rule, drawing)
		if err != nil {
			return StepResult{}, fmt.Errorf("validate instruction %d: %w", instructionIndex, err)
		}
	}

	rec := &m.state.Steps[instructionIndex]
	rec.Accuracy = res.Accuracy

	if !res.Pass {
		rec.Attempts++
		hint := m.hintFor(ins, instructionIndex)
		if hint != "" {
			m.sink.Emit(events.HintTriggered, map[string]any{
				"session_id":  m.state.SessionID,
				"lesson_id":   m.lesson.ID,
				"instruction": instructionIndex,
				"hint":        hint,
			})
		}
		return StepResult{Accuracy: res.Accuracy, Hint: hint}, nil
	}

	rec.Passed = true
	m.state.CurrentInstruction++
	m.state.PracticeProgress = float64(m.state.passedSteps()) / float64(len(m.lesson.Practice))

	done := m.state.CurrentInstruction >= len(m.lesson.Practice)
	if done {
		m.state.Phase = PhaseReadyForAssessment
	}
	m.sink.Emit(events.ProgressChanged, map[string]any{
		"lesson_id":         m.lesson.ID,
		"practice_progress": m.state.PracticeProgress,
	})
	return StepResult{Passed: true, Accuracy: res.Accuracy, PracticeComplete: done}, nil
}

// hintFor picks the hint for a failed submission: the per-instruction fail
// trigger first, then the elapsed-time trigger once the step has dragged
// past its hint delay.
func (m *Machine) hintFor(ins curriculum.Instruction, index int) string {
	if hint, ok := ins.Hints[fmt.Sprintf("instruction_%d_fail", index)]; ok {
		return hint
	}
	if ins.HintAfterSecs > 0 && m.state.elapsedAt(m.now()) > time.Duration(ins.HintAfterSecs)*time.Second {
		return ins.Hints["time_exceeded"]
	}
	return ""
}

// Pause freezes the active clock. Valid from Theory or Practice.
func (m *Machine) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Phase != PhaseTheory && m.state.Phase != PhasePractice {
		return &StateError{Kind: KindInvalidPhase, Op: "pause", Phase: m.state.Phase}
	}
	now := m.now()
	m.state.ActiveElapsed = m.state.elapsedAt(now)
	m.state.ClockAnchor = time.Time{}
	m.state.ResumePhase = m.state.Phase
	m.state.Phase = PhasePaused
	return nil
}

// Resume returns a paused session to the phase it was paused from and
// restarts the clock without resetting it.
func (m *Machine) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Phase != PhasePaused {
		return &StateError{Kind: KindInvalidPhase, Op: "resume", Phase: m.state.Phase}
	}
	m.state.Phase = m.state.ResumePhase
	m.state.ResumePhase = PhaseNotStarted
	m.state.ClockAnchor = m.now()
	return nil
}

// Complete scores the assessment and records the completion. Valid only in
// ReadyForAssessment. The score is computed once; if recording fails the
// session stays in ReadyForAssessment holding the computed result, and a
// retry persists it without re-running the assessment.
func (m *Machine) Complete(ctx context.Context, input AssessmentInput) (CompletionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Phase != PhaseReadyForAssessment {
		return CompletionResult{}, &StateError{Kind: KindInvalidPhase, Op: "complete", Phase: m.state.Phase}
	}

	if m.pending == nil {
		result := m.score(input)
		m.pending = &result
	}

	if m.recorder != nil {
		ev := progress.CompletionEvent{
			LessonID:     m.pending.LessonID,
			Score:        m.pending.Score,
			Passed:       m.pending.Passed,
			XPEarned:     m.pending.XPEarned,
			Duration:     m.pending.Duration,
			Achievements: m.pending.Achievements,
			CompletedAt:  m.now(),
		}
		if err := m.recorder.RecordCompletion(ctx, ev); err != nil {
			return *m.pending, fmt.Errorf("record completion: %w", err)
		}
	}

	result := *m.pending
	m.pending = nil
	m.state.Phase = PhaseCompleted
	m.state.ActiveElapsed = result.Duration
	m.state.ClockAnchor = time.Time{}

	m.sink.Emit(events.LessonCompleted, map[string]any{
		"lesson_id": result.LessonID,
		"score":     result.Score,
		"xp_earned": result.XPEarned,
	})
	return result, nil
}

// Exit suspends a session mid-lesson: the partial state (phase, indices,
// elapsed active time, recorded attempts) is persisted for later
// resumption, then the machine is released. Not a rollback; recorded
// attempt counts are retained.
func (m *Machine) Exit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.idle() {
		return &StateError{Kind: KindInvalidPhase, Op: "exit", Phase: m.state.Phase}
	}

	st := m.state.clone()
	st.ActiveElapsed = st.elapsedAt(m.now())
	st.ClockAnchor = time.Time{}
	if st.Phase != PhasePaused {
		st.ResumePhase = st.Phase
		st.Phase = PhasePaused
	}

	if m.suspended != nil {
		if err := m.suspended.SaveSuspended(ctx, st); err != nil {
			return fmt.Errorf("save suspended session: %w", err)
		}
	}

	m.sink.Emit(events.LessonExited, map[string]any{
		"lesson_id":  st.LessonID,
		"session_id": st.SessionID,
		"phase":      st.ResumePhase.String(),
	})
	m.lesson = nil
	m.pending = nil
	m.state = State{}
	return nil
}

// Restore rehydrates a suspended session onto an idle machine. The session
// comes back paused; Resume restarts the clock.
func (m *Machine) Restore(lesson curriculum.Lesson, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.idle() {
		return &StateError{Kind: KindSessionActive, Op: "restore", Phase: m.state.Phase}
	}
	if st.LessonID != lesson.ID {
		return fmt.Errorf("suspended state is for lesson %q, not %q", st.LessonID, lesson.ID)
	}
	if len(st.Steps) != len(lesson.Practice) {
		return fmt.Errorf("suspended state has %d steps, lesson has %d instructions", len(st.Steps), len(lesson.Practice))
	}

	l := lesson
	m.lesson = &l
	m.state = st.clone()
	m.pending = nil
	return nil
}
