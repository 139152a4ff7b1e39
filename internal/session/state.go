package session

import "time"

// StepRecord is the stored outcome for one practice instruction. Attempts
// counts failed submissions; a step passed on the first try has Attempts 0.
// Accuracy is the score of the most recent submission.
type StepRecord struct {
	Attempts int     `json:"attempts"`
	Passed   bool    `json:"passed"`
	Accuracy float64 `json:"accuracy"`
}

// State is the session-scoped lesson state. It is JSON-serializable as a
// whole: Exit persists it verbatim and Restore rehydrates it, so a
// round-trip must be field-identical.
type State struct {
	SessionID string `json:"session_id"`
	LessonID  string `json:"lesson_id"`
	Phase     Phase  `json:"phase"`
	// ResumePhase is the phase a paused session returns to. Meaningful
	// only while Phase is PhasePaused.
	ResumePhase Phase `json:"resume_phase,omitempty"`

	TheorySegment    int     `json:"theory_segment"`
	TheoryProgress   float64 `json:"theory_progress"`
	PracticeProgress float64 `json:"practice_progress"`

	CurrentInstruction int          `json:"current_instruction"`
	Steps              []StepRecord `json:"steps"`

	StartedAt time.Time `json:"started_at"`
	// ActiveElapsed accumulates wall-clock time spent unpaused. While the
	// session is running, ClockAnchor marks the start of the open interval
	// not yet folded in; it is zero while paused or suspended.
	ActiveElapsed time.Duration `json:"active_elapsed"`
	ClockAnchor   time.Time     `json:"clock_anchor,omitzero"`
}

// elapsedAt returns total active time as of now.
func (s State) elapsedAt(now time.Time) time.Duration {
	if s.ClockAnchor.IsZero() {
		return s.ActiveElapsed
	}
	return s.ActiveElapsed + now.Sub(s.ClockAnchor)
}

// passedSteps counts instructions that have passed.
func (s State) passedSteps() int {
	n := 0
	for _, st := range s.Steps {
		if st.Passed {
			n++
		}
	}
	return n
}

// clone returns a deep copy safe to hand to callers.
func (s State) clone() State {
	out := s
	out.Steps = make([]StepRecord, len(s.Steps))
	copy(out.Steps, s.Steps)
	return out
}
