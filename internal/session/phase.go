// Package session drives one lesson at a time through its lifecycle:
// theory, guided practice, assessment, with pause and suspend along the
// way. The machine owns no persistence of its own; it emits completion
// events to a recorder and suspended state to a store.
package session

import (
	"encoding/json"
	"fmt"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseTheory
	PhaseReadyForPractice
	PhasePractice
	PhaseReadyForAssessment
	PhaseCompleted
	PhasePaused
)

var phaseNames = map[Phase]string{
	PhaseNotStarted:         "not_started",
	PhaseTheory:             "theory",
	PhaseReadyForPractice:   "ready_for_practice",
	PhasePractice:           "practice",
	PhaseReadyForAssessment: "ready_for_assessment",
	PhaseCompleted:          "completed",
	PhasePaused:             "paused",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Phases serialize by name so suspended sessions survive reordering of the
// enum.
func (p Phase) MarshalJSON() ([]byte, error) {
	name, ok := phaseNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return json.Marshal(name)
}

func (p *Phase) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return err
	}
	for phase, n := range phaseNames {
		if n == name {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", name)
}
