package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/halftone/sketchpath/internal/events"
)

// EventSink is an events.Sink that appends hint events to the store's
// event log. Sinks must not fail their caller, so storage errors are
// logged and swallowed. Completion events are recorded through the
// progress recorder path, where a failure is fatal; the sink ignores them.
type EventSink struct {
	Repo    *EventRepo
	Logger  *zap.Logger
	Timeout time.Duration
}

func (s *EventSink) Emit(name string, payload map[string]any) {
	if name != events.HintTriggered {
		return
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	data := HintEventData{
		SessionID: str(payload["session_id"]),
		LessonID:  str(payload["lesson_id"]),
		Hint:      str(payload["hint"]),
	}
	if n, ok := payload["instruction"].(int); ok {
		data.Instruction = n
	}
	if err := s.Repo.AppendHint(ctx, data); err != nil && s.Logger != nil {
		s.Logger.Warn("append hint event failed", zap.Error(err))
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
