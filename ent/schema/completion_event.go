package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CompletionEvent records one finished lesson assessment.
type CompletionEvent struct {
	ent.Schema
}

func (CompletionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (CompletionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("lesson_id").NotEmpty(),
		field.Float("score"),
		field.Bool("passed"),
		field.Int("xp_earned"),
		field.Int64("duration_ms").
			Comment("Active lesson time in milliseconds, paused intervals excluded"),
		field.Strings("achievements").
			Optional(),
	}
}

func (CompletionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("lesson_id"),
	}
}
