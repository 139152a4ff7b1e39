package session

import "fmt"

// StateErrorKind classifies rejected transitions.
type StateErrorKind string

const (
	// KindInvalidPhase: the operation is not legal in the current phase.
	KindInvalidPhase StateErrorKind = "invalid_phase"
	// KindInvalidInstructionIndex: an index was out of range or out of
	// order for the current position.
	KindInvalidInstructionIndex StateErrorKind = "invalid_instruction_index"
	// KindSessionActive: a new session was requested while one is live.
	KindSessionActive StateErrorKind = "session_active"
)

// StateError is a rejected transition. The session state is unchanged.
type StateError struct {
	Kind   StateErrorKind
	Op     string
	Phase  Phase
	Detail string
}

func (e *StateError) Error() string {
	msg := fmt.Sprintf("session: %s rejected in phase %s (%s)", e.Op, e.Phase, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
