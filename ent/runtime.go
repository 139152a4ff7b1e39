// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/halftone/sketchpath/ent/completionevent"
	"github.com/halftone/sketchpath/ent/hintevent"
	"github.com/halftone/sketchpath/ent/schema"
	"github.com/halftone/sketchpath/ent/snapshot"
	"github.com/halftone/sketchpath/ent/suspendedsession"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	completioneventMixin := schema.CompletionEvent{}.Mixin()
	completioneventMixinFields0 := completioneventMixin[0].Fields()
	_ = completioneventMixinFields0
	completioneventFields := schema.CompletionEvent{}.Fields()
	_ = completioneventFields
	// completioneventDescTimestamp is the schema descriptor for timestamp field.
	completioneventDescTimestamp := completioneventMixinFields0[1].Descriptor()
	// completionevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	completionevent.DefaultTimestamp = completioneventDescTimestamp.Default.(func() time.Time)
	// completioneventDescSessionID is the schema descriptor for session_id field.
	completioneventDescSessionID := completioneventFields[0].Descriptor()
	// completionevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	completionevent.SessionIDValidator = completioneventDescSessionID.Validators[0].(func(string) error)
	// completioneventDescLessonID is the schema descriptor for lesson_id field.
	completioneventDescLessonID := completioneventFields[1].Descriptor()
	// completionevent.LessonIDValidator is a validator for the "lesson_id" field. It is called by the builders before save.
	completionevent.LessonIDValidator = completioneventDescLessonID.Validators[0].(func(string) error)
	hinteventMixin := schema.HintEvent{}.Mixin()
	hinteventMixinFields0 := hinteventMixin[0].Fields()
	_ = hinteventMixinFields0
	hinteventFields := schema.HintEvent{}.Fields()
	_ = hinteventFields
	// hinteventDescTimestamp is the schema descriptor for timestamp field.
	hinteventDescTimestamp := hinteventMixinFields0[1].Descriptor()
	// hintevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	hintevent.DefaultTimestamp = hinteventDescTimestamp.Default.(func() time.Time)
	// hinteventDescSessionID is the schema descriptor for session_id field.
	hinteventDescSessionID := hinteventFields[0].Descriptor()
	// hintevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	hintevent.SessionIDValidator = hinteventDescSessionID.Validators[0].(func(string) error)
	// hinteventDescLessonID is the schema descriptor for lesson_id field.
	hinteventDescLessonID := hinteventFields[1].Descriptor()
	// hintevent.LessonIDValidator is a validator for the "lesson_id" field. It is called by the builders before save.
	hintevent.LessonIDValidator = hinteventDescLessonID.Validators[0].(func(string) error)
	// hinteventDescHint is the schema descriptor for hint field.
	hinteventDescHint := hinteventFields[3].Descriptor()
	// hintevent.HintValidator is a validator for the "hint" field. It is called by the builders before save.
	hintevent.HintValidator = hinteventDescHint.Validators[0].(func(string) error)
	snapshotFields := schema.Snapshot{}.Fields()
	_ = snapshotFields
	// snapshotDescTimestamp is the schema descriptor for timestamp field.
	snapshotDescTimestamp := snapshotFields[1].Descriptor()
	// snapshot.DefaultTimestamp holds the default value on creation for the timestamp field.
	snapshot.DefaultTimestamp = snapshotDescTimestamp.Default.(func() time.Time)
	suspendedsessionFields := schema.SuspendedSession{}.Fields()
	_ = suspendedsessionFields
	// suspendedsessionDescSessionID is the schema descriptor for session_id field.
	suspendedsessionDescSessionID := suspendedsessionFields[0].Descriptor()
	// suspendedsession.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	suspendedsession.SessionIDValidator = suspendedsessionDescSessionID.Validators[0].(func(string) error)
	// suspendedsessionDescLessonID is the schema descriptor for lesson_id field.
	suspendedsessionDescLessonID := suspendedsessionFields[1].Descriptor()
	// suspendedsession.LessonIDValidator is a validator for the "lesson_id" field. It is called by the builders before save.
	suspendedsession.LessonIDValidator = suspendedsessionDescLessonID.Validators[0].(func(string) error)
	// suspendedsessionDescSuspendedAt is the schema descriptor for suspended_at field.
	suspendedsessionDescSuspendedAt := suspendedsessionFields[3].Descriptor()
	// suspendedsession.DefaultSuspendedAt holds the default value on creation for the suspended_at field.
	suspendedsession.DefaultSuspendedAt = suspendedsessionDescSuspendedAt.Default.(func() time.Time)
}
