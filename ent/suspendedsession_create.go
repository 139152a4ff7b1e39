// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/halftone/sketchpath/ent/suspendedsession"
)

// SuspendedSessionCreate is the builder for creating a SuspendedSession entity.
type SuspendedSessionCreate struct {
	config
	mutation *SuspendedSessionMutation
	hooks    []Hook
}

// SetSessionID sets the "session_id" field.
func (_c *SuspendedSessionCreate) SetSessionID(v string) *SuspendedSessionCreate {
	_c.mutation.SetSessionID(v)
	return _c
}

// SetLessonID sets the "lesson_id" field.
func (_c *SuspendedSessionCreate) SetLessonID(v string) *SuspendedSessionCreate {
	_c.mutation.SetLessonID(v)
	return _c
}

// SetData sets the "data" field.
func (_c *SuspendedSessionCreate) SetData(v map[string]interface{}) *SuspendedSessionCreate {
	_c.mutation.SetData(v)
	return _c
}

// SetSuspendedAt sets the "suspended_at" field.
func (_c *SuspendedSessionCreate) SetSuspendedAt(v time.Time) *SuspendedSessionCreate {
	_c.mutation.SetSuspendedAt(v)
	return _c
}

// SetNillableSuspendedAt sets the "suspended_at" field if the given value is not nil.
func (_c *SuspendedSessionCreate) SetNillableSuspendedAt(v *time.Time) *SuspendedSessionCreate {
	if v != nil {
		_c.SetSuspendedAt(*v)
	}
	return _c
}

// Mutation returns the SuspendedSessionMutation object of the builder.
func (_c *SuspendedSessionCreate) Mutation() *SuspendedSessionMutation {
	return _c.mutation
}

// Save creates the SuspendedSession in the database.
func (_c *SuspendedSessionCreate) Save(ctx context.Context) (*SuspendedSession, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *SuspendedSessionCreate) SaveX(ctx context.Context) *SuspendedSession {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *SuspendedSessionCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *SuspendedSessionCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *SuspendedSessionCreate) defaults() {
	if _, ok := _c.mutation.SuspendedAt(); !ok {
		v := suspendedsession.DefaultSuspendedAt()
		_c.mutation.SetSuspendedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *SuspendedSessionCreate) check() error {
	if _, ok := _c.mutation.SessionID(); !ok {
		return &ValidationError{Name: "session_id", err: errors.New(`ent: missing required field "SuspendedSession.session_id"`)}
	}
	if v, ok := _c.mutation.SessionID(); ok {
		if err := suspendedsession.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SuspendedSession.session_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.LessonID(); !ok {
		return &ValidationError{Name: "lesson_id", err: errors.New(`ent: missing required field "SuspendedSession.lesson_id"`)}
	}
	if v, ok := _c.mutation.LessonID(); ok {
		if err := suspendedsession.LessonIDValidator(v); err != nil {
			return &ValidationError{Name: "lesson_id", err: fmt.Errorf(`ent: validator failed for field "SuspendedSession.lesson_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Data(); !ok {
		return &ValidationError{Name: "data", err: errors.New(`ent: missing required field "SuspendedSession.data"`)}
	}
	if _, ok := _c.mutation.SuspendedAt(); !ok {
		return &ValidationError{Name: "suspended_at", err: errors.New(`ent: missing required field "SuspendedSession.suspended_at"`)}
	}
	return nil
}

func (_c *SuspendedSessionCreate) sqlSave(ctx context.Context) (*SuspendedSession, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *SuspendedSessionCreate) createSpec() (*SuspendedSession, *sqlgraph.CreateSpec) {
	var (
		_node = &SuspendedSession{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(suspendedsession.Table, sqlgraph.NewFieldSpec(suspendedsession.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.SessionID(); ok {
		_spec.SetField(suspendedsession.FieldSessionID, field.TypeString, value)
		_node.SessionID = value
	}
	if value, ok := _c.mutation.LessonID(); ok {
		_spec.SetField(suspendedsession.FieldLessonID, field.TypeString, value)
		_node.LessonID = value
	}
	if value, ok := _c.mutation.Data(); ok {
		_spec.SetField(suspendedsession.FieldData, field.TypeJSON, value)
		_node.Data = value
	}
	if value, ok := _c.mutation.SuspendedAt(); ok {
		_spec.SetField(suspendedsession.FieldSuspendedAt, field.TypeTime, value)
		_node.SuspendedAt = value
	}
	return _node, _spec
}

// SuspendedSessionCreateBulk is the builder for creating many SuspendedSession entities in bulk.
type SuspendedSessionCreateBulk struct {
	config
	err      error
	builders []*SuspendedSessionCreate
}

// Save creates the SuspendedSession entities in the database.
func (_c *SuspendedSessionCreateBulk) Save(ctx context.Context) ([]*SuspendedSession, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*SuspendedSession, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*SuspendedSessionMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *SuspendedSessionCreateBulk) SaveX(ctx context.Context) []*SuspendedSession {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *SuspendedSessionCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *SuspendedSessionCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
