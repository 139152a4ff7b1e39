// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/halftone/sketchpath/ent/predicate"
	"github.com/halftone/sketchpath/ent/suspendedsession"
)

// SuspendedSessionUpdate is the builder for updating SuspendedSession entities.
type SuspendedSessionUpdate struct {
	config
	hooks    []Hook
	mutation *SuspendedSessionMutation
}

// Where appends a list predicates to the SuspendedSessionUpdate builder.
func (_u *SuspendedSessionUpdate) Where(ps ...predicate.SuspendedSession) *SuspendedSessionUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *SuspendedSessionUpdate) SetSessionID(v string) *SuspendedSessionUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SuspendedSessionUpdate) SetNillableSessionID(v *string) *SuspendedSessionUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetLessonID sets the "lesson_id" field.
func (_u *SuspendedSessionUpdate) SetLessonID(v string) *SuspendedSessionUpdate {
	_u.mutation.SetLessonID(v)
	return _u
}

// SetNillableLessonID sets the "lesson_id" field if the given value is not nil.
func (_u *SuspendedSessionUpdate) SetNillableLessonID(v *string) *SuspendedSessionUpdate {
	if v != nil {
		_u.SetLessonID(*v)
	}
	return _u
}

// SetData sets the "data" field.
func (_u *SuspendedSessionUpdate) SetData(v map[string]interface{}) *SuspendedSessionUpdate {
	_u.mutation.SetData(v)
	return _u
}

// SetSuspendedAt sets the "suspended_at" field.
func (_u *SuspendedSessionUpdate) SetSuspendedAt(v time.Time) *SuspendedSessionUpdate {
	_u.mutation.SetSuspendedAt(v)
	return _u
}

// SetNillableSuspendedAt sets the "suspended_at" field if the given value is not nil.
func (_u *SuspendedSessionUpdate) SetNillableSuspendedAt(v *time.Time) *SuspendedSessionUpdate {
	if v != nil {
		_u.SetSuspendedAt(*v)
	}
	return _u
}

// Mutation returns the SuspendedSessionMutation object of the builder.
func (_u *SuspendedSessionUpdate) Mutation() *SuspendedSessionMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SuspendedSessionUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SuspendedSessionUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SuspendedSessionUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SuspendedSessionUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SuspendedSessionUpdate) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := suspendedsession.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SuspendedSession.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.LessonID(); ok {
		if err := suspendedsession.LessonIDValidator(v); err != nil {
			return &ValidationError{Name: "lesson_id", err: fmt.Errorf(`ent: validator failed for field "SuspendedSession.lesson_id": %w`, err)}
		}
	}
	return nil
}

func (_u *SuspendedSessionUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(suspendedsession.Table, suspendedsession.Columns, sqlgraph.NewFieldSpec(suspendedsession.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(suspendedsession.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.LessonID(); ok {
		_spec.SetField(suspendedsession.FieldLessonID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Data(); ok {
		_spec.SetField(suspendedsession.FieldData, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.SuspendedAt(); ok {
		_spec.SetField(suspendedsession.FieldSuspendedAt, field.TypeTime, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{suspendedsession.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SuspendedSessionUpdateOne is the builder for updating a single SuspendedSession entity.
type SuspendedSessionUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SuspendedSessionMutation
}

// SetSessionID sets the "session_id" field.
func (_u *SuspendedSessionUpdateOne) SetSessionID(v string) *SuspendedSessionUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SuspendedSessionUpdateOne) SetNillableSessionID(v *string) *SuspendedSessionUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetLessonID sets the "lesson_id" field.
func (_u *SuspendedSessionUpdateOne) SetLessonID(v string) *SuspendedSessionUpdateOne {
	_u.mutation.SetLessonID(v)
	return _u
}

// SetNillableLessonID sets the "lesson_id" field if the given value is not nil.
func (_u *SuspendedSessionUpdateOne) SetNillableLessonID(v *string) *SuspendedSessionUpdateOne {
	if v != nil {
		_u.SetLessonID(*v)
	}
	return _u
}

// SetData sets the "data" field.
func (_u *SuspendedSessionUpdateOne) SetData(v map[string]interface{}) *SuspendedSessionUpdateOne {
	_u.mutation.SetData(v)
	return _u
}

// SetSuspendedAt sets the "suspended_at" field.
func (_u *SuspendedSessionUpdateOne) SetSuspendedAt(v time.Time) *SuspendedSessionUpdateOne {
	_u.mutation.SetSuspendedAt(v)
	return _u
}

// SetNillableSuspendedAt sets the "suspended_at" field if the given value is not nil.
func (_u *SuspendedSessionUpdateOne) SetNillableSuspendedAt(v *time.Time) *SuspendedSessionUpdateOne {
	if v != nil {
		_u.SetSuspendedAt(*v)
	}
	return _u
}

// Mutation returns the SuspendedSessionMutation object of the builder.
func (_u *SuspendedSessionUpdateOne) Mutation() *SuspendedSessionMutation {
	return _u.mutation
}

// Where appends a list predicates to the SuspendedSessionUpdate builder.
func (_u *SuspendedSessionUpdateOne) Where(ps ...predicate.SuspendedSession) *SuspendedSessionUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SuspendedSessionUpdateOne) Select(field string, fields ...string) *SuspendedSessionUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated SuspendedSession entity.
func (_u *SuspendedSessionUpdateOne) Save(ctx context.Context) (*SuspendedSession, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SuspendedSessionUpdateOne) SaveX(ctx context.Context) *SuspendedSession {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SuspendedSessionUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SuspendedSessionUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SuspendedSessionUpdateOne) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := suspendedsession.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SuspendedSession.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.LessonID(); ok {
		if err := suspendedsession.LessonIDValidator(v); err != nil {
			return &ValidationError{Name: "lesson_id", err: fmt.Errorf(`ent: validator failed for field "SuspendedSession.lesson_id": %w`, err)}
		}
	}
	return nil
}

func (_u *SuspendedSessionUpdateOne) sqlSave(ctx context.Context) (_node *SuspendedSession, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(suspendedsession.Table, suspendedsession.Columns, sqlgraph.NewFieldSpec(suspendedsession.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "SuspendedSession.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, suspendedsession.FieldID)
		for _, f := range fields {
			if !suspendedsession.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != suspendedsession.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(suspendedsession.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.LessonID(); ok {
		_spec.SetField(suspendedsession.FieldLessonID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Data(); ok {
		_spec.SetField(suspendedsession.FieldData, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.SuspendedAt(); ok {
		_spec.SetField(suspendedsession.FieldSuspendedAt, field.TypeTime, value)
	}
	_node = &SuspendedSession{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{suspendedsession.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
