// Code generated by ent, DO NOT EDIT.

package ent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/halftone/sketchpath/ent/suspendedsession"
)

// SuspendedSession is the model entity for the SuspendedSession schema.
type SuspendedSession struct {
	config `json:"-"`
	// ID of the ent.
	ID int `json:"id,omitempty"`
	// SessionID holds the value of the "session_id" field.
	SessionID string `json:"session_id,omitempty"`
	// LessonID holds the value of the "lesson_id" field.
	LessonID string `json:"lesson_id,omitempty"`
	// Serialized session state: phase, indices, step records, elapsed time
	Data map[string]interface{} `json:"data,omitempty"`
	// SuspendedAt holds the value of the "suspended_at" field.
	SuspendedAt  time.Time `json:"suspended_at,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*SuspendedSession) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case suspendedsession.FieldData:
			values[i] = new([]byte)
		case suspendedsession.FieldID:
			values[i] = new(sql.NullInt64)
		case suspendedsession.FieldSessionID, suspendedsession.FieldLessonID:
			values[i] = new(sql.NullString)
		case suspendedsession.FieldSuspendedAt:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the SuspendedSession fields.
func (_m *SuspendedSession) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case suspendedsession.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case suspendedsession.FieldSessionID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field session_id", values[i])
			} else if value.Valid {
				_m.SessionID = value.String
			}
		case suspendedsession.FieldLessonID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field lesson_id", values[i])
			} else if value.Valid {
				_m.LessonID = value.String
			}
		case suspendedsession.FieldData:
			if value, ok := values[i].(*[]byte); !ok {
				return fmt.Errorf("unexpected type %T for field data", values[i])
			} else if value != nil && len(*value) > 0 {
				if err := json.Unmarshal(*value, &_m.Data); err != nil {
					return fmt.Errorf("unmarshal field data: %w", err)
				}
			}
		case suspendedsession.FieldSuspendedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field suspended_at", values[i])
			} else if value.Valid {
				_m.SuspendedAt = value.Time
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the SuspendedSession.
// This includes values selected through modifiers, order, etc.
func (_m *SuspendedSession) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this SuspendedSession.
// Note that you need to call SuspendedSession.Unwrap() before calling this method if this SuspendedSession
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *SuspendedSession) Update() *SuspendedSessionUpdateOne {
	return NewSuspendedSessionClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the SuspendedSession entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *SuspendedSession) Unwrap() *SuspendedSession {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: SuspendedSession is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *SuspendedSession) String() string {
	var builder strings.Builder
	builder.WriteString("SuspendedSession(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("session_id=")
	builder.WriteString(_m.SessionID)
	builder.WriteString(", ")
	builder.WriteString("lesson_id=")
	builder.WriteString(_m.LessonID)
	builder.WriteString(", ")
	builder.WriteString("data=")
	builder.WriteString(fmt.Sprintf("%v", _m.Data))
	builder.WriteString(", ")
	builder.WriteString("suspended_at=")
	builder.WriteString(_m.SuspendedAt.Format(time.ANSIC))
	builder.WriteByte(')')
	return builder.String()
}

// SuspendedSessions is a parsable slice of SuspendedSession.
type SuspendedSessions []*SuspendedSession
