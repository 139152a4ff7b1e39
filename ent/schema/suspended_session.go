package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SuspendedSession holds a lesson session exited mid-lesson so it can be
// resumed later. At most one suspended session exists per lesson; a newer
// exit replaces the older one.
type SuspendedSession struct {
	ent.Schema
}

func (SuspendedSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Unique(),
		field.String("lesson_id").
			NotEmpty(),
		field.JSON("data", map[string]any{}).
			Comment("Serialized session state: phase, indices, step records, elapsed time"),
		field.Time("suspended_at").
			Default(time.Now),
	}
}

func (SuspendedSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("lesson_id"),
		index.Fields("suspended_at"),
	}
}
