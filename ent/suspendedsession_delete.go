// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/halftone/sketchpath/ent/predicate"
	"github.com/halftone/sketchpath/ent/suspendedsession"
)

// SuspendedSessionDelete is the builder for deleting a SuspendedSession entity.
type SuspendedSessionDelete struct {
	config
	hooks    []Hook
	mutation *SuspendedSessionMutation
}

// Where appends a list predicates to the SuspendedSessionDelete builder.
func (_d *SuspendedSessionDelete) Where(ps ...predicate.SuspendedSession) *SuspendedSessionDelete {
	_d.mutation.Where(ps...)
	return _d
}

// Exec executes the deletion query and returns how many vertices were deleted.
func (_d *SuspendedSessionDelete) Exec(ctx context.Context) (int, error) {
	return withHooks(ctx, _d.sqlExec, _d.mutation, _d.hooks)
}

// ExecX is like Exec, but panics if an error occurs.
func (_d *SuspendedSessionDelete) ExecX(ctx context.Context) int {
	n, err := _d.Exec(ctx)
	if err != nil {
		panic(err)
	}
	return n
}

func (_d *SuspendedSessionDelete) sqlExec(ctx context.Context) (int, error) {
	_spec := sqlgraph.NewDeleteSpec(suspendedsession.Table, sqlgraph.NewFieldSpec(suspendedsession.FieldID, field.TypeInt))
	if ps := _d.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	affected, err := sqlgraph.DeleteNodes(ctx, _d.driver, _spec)
	if err != nil && sqlgraph.IsConstraintError(err) {
		err = &ConstraintError{msg: err.Error(), wrap: err}
	}
	_d.mutation.done = true
	return affected, err
}

// SuspendedSessionDeleteOne is the builder for deleting a single SuspendedSession entity.
type SuspendedSessionDeleteOne struct {
	_d *SuspendedSessionDelete
}

// Where appends a list predicates to the SuspendedSessionDelete builder.
func (_d *SuspendedSessionDeleteOne) Where(ps ...predicate.SuspendedSession) *SuspendedSessionDeleteOne {
	_d._d.mutation.Where(ps...)
	return _d
}

// Exec executes the deletion query.
func (_d *SuspendedSessionDeleteOne) Exec(ctx context.Context) error {
	n, err := _d._d.Exec(ctx)
	switch {
	case err != nil:
		return err
	case n == 0:
		return &NotFoundError{suspendedsession.Label}
	default:
		return nil
	}
}

// ExecX is like Exec, but panics if an error occurs.
func (_d *SuspendedSessionDeleteOne) ExecX(ctx context.Context) {
	if err := _d.Exec(ctx); err != nil {
		panic(err)
	}
}
