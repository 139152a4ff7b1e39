// Package events defines the fire-and-forget presentation sink the engine
// emits hints, progress changes, and goal notices into. The engine never
// depends on a sink succeeding.
package events

import (
	"sync"

	"go.uber.org/zap"
)

// Event names emitted by the engine.
const (
	LessonStarted    = "lesson_started"
	LessonCompleted  = "lesson_completed"
	LessonExited     = "lesson_exited"
	HintTriggered    = "hint_triggered"
	ProgressChanged  = "progress_changed"
	DailyGoalReached = "daily_goal_reached"
)

// Sink receives presentation events. Emit must not block and must not fail
// the caller; implementations swallow their own errors.
type Sink interface {
	Emit(name string, payload map[string]any)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(string, map[string]any) {}

// LogSink writes events to a structured logger, the default sink for the
// headless CLI where no UI is attached.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Emit(name string, payload map[string]any) {
	s.Logger.Info("event", zap.String("name", name), zap.Any("payload", payload))
}

// MultiSink fans an event out to several sinks.
type MultiSink []Sink

func (m MultiSink) Emit(name string, payload map[string]any) {
	for _, s := range m {
		s.Emit(name, payload)
	}
}

// CaptureSink records events for assertions in tests.
type CaptureSink struct {
	mu     sync.Mutex
	events []Captured
}

// Captured is one recorded event.
type Captured struct {
	Name    string
	Payload map[string]any
}

func (s *CaptureSink) Emit(name string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Captured{Name: name, Payload: payload})
}

// Events returns a copy of everything captured so far.
func (s *CaptureSink) Events() []Captured {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Captured, len(s.events))
	copy(out, s.events)
	return out
}

// Named returns captured events with the given name.
func (s *CaptureSink) Named(name string) []Captured {
	var out []Captured
	for _, e := range s.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
