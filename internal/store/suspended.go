package store

import (
	"context"
	"fmt"
	"time"

	"github.com/halftone/sketchpath/ent"
	"github.com/halftone/sketchpath/ent/suspendedsession"
	"github.com/halftone/sketchpath/internal/session"
)

// SuspendedRepo persists exited sessions for later resumption, implementing
// session.SuspendedStore. One suspended session per lesson: suspending the
// same lesson again replaces the earlier record.
type SuspendedRepo struct {
	client *ent.Client
}

func (r *SuspendedRepo) SaveSuspended(ctx context.Context, st session.State) error {
	dataMap, err := toMap(st)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	n, err := r.client.SuspendedSession.Update().
		Where(suspendedsession.LessonID(st.LessonID)).
		SetSessionID(st.SessionID).
		SetData(dataMap).
		SetSuspendedAt(time.Now().UTC()).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update suspended session: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.SuspendedSession.Create().
		SetSessionID(st.SessionID).
		SetLessonID(st.LessonID).
		SetData(dataMap).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save suspended session: %w", err)
	}
	return nil
}

// LoadSuspended returns the suspended state for a lesson, or nil when none
// exists.
func (r *SuspendedRepo) LoadSuspended(ctx context.Context, lessonID string) (*session.State, error) {
	s, err := r.client.SuspendedSession.Query().
		Where(suspendedsession.LessonID(lessonID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query suspended session: %w", err)
	}

	var st session.State
	if err := fromMap(s.Data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &st, nil
}

// DeleteSuspended discards the suspended state for a lesson. Deleting a
// lesson with no suspended state is a no-op.
func (r *SuspendedRepo) DeleteSuspended(ctx context.Context, lessonID string) error {
	_, err := r.client.SuspendedSession.Delete().
		Where(suspendedsession.LessonID(lessonID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete suspended session: %w", err)
	}
	return nil
}
