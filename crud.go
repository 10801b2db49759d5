// crud.go
package sqlx

import (
	"context"
	"reflect"

	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/engine"
	"github.com/chmenegatti/sqlx/pkg/hooks"
	"github.com/chmenegatti/sqlx/query"
)

// Persist inserts entity when the engine does not track it yet and updates
// it otherwise. After an insert the generated id, if any, is written back
// to the entity and the entity becomes tracked. entity must be a pointer.
func (e *Engine) Persist(ctx context.Context, entity any) error {
	op, before, after := engine.OpInsert, hooks.StageBeforeInsert, hooks.StageAfterInsert
	if e.tracker.IsTracked(entity) {
		op, before, after = engine.OpUpdate, hooks.StageBeforeUpdate, hooks.StageAfterUpdate
	}
	class := className(reflect.TypeOf(entity))

	if err := hooks.Run(ctx, before, entity); err != nil {
		return e.fail(opPersist, "Hook "+string(before)+" failed for class "+class+".", err)
	}
	res, err := e.execute(ctx, opPersist, op, entity)
	if err != nil {
		return err
	}
	if op == engine.OpInsert {
		// The row exists from here on, even if its id cannot be written back.
		e.tracker.Track(entity)
		lastID := engine.LastID{Entity: entity, Value: res.LastInsertedID()}
		if _, err := e.mapper.ToApplication(e.context(ctx), lastID); err != nil {
			return e.fail(opPersist, "Unexpected error trying to map the last inserted id.", err)
		}
	}
	e.log.Debug("persisted", zap.String("class", class), zap.Stringer("operation", op),
		zap.Int64("affected", res.AffectedRows()))

	if err := hooks.Run(ctx, after, entity); err != nil {
		return e.fail(opPersist, "Hook "+string(after)+" failed for class "+class+".", err)
	}
	return nil
}

// Delete removes a tracked entity and stops tracking it. Deleting an
// entity that was neither persisted nor found fails before any statement
// is sent.
func (e *Engine) Delete(ctx context.Context, entity any) error {
	if !e.tracker.IsTracked(entity) {
		return e.fail(opDelete, "Cannot delete an untracked object.", nil)
	}
	class := className(reflect.TypeOf(entity))

	if err := hooks.Run(ctx, hooks.StageBeforeDelete, entity); err != nil {
		return e.fail(opDelete, "Hook "+string(hooks.StageBeforeDelete)+" failed for class "+class+".", err)
	}
	res, err := e.execute(ctx, opDelete, engine.OpDelete, entity)
	if err != nil {
		return err
	}
	e.tracker.Forget(entity)
	e.log.Debug("deleted", zap.String("class", class), zap.Int64("affected", res.AffectedRows()))

	if err := hooks.Run(ctx, hooks.StageAfterDelete, entity); err != nil {
		return e.fail(opDelete, "Hook "+string(hooks.StageAfterDelete)+" failed for class "+class+".", err)
	}
	return nil
}

func (e *Engine) execute(ctx context.Context, name string, op engine.Operation, entity any) (conn.Result, error) {
	class := className(reflect.TypeOf(entity))
	v, err := e.mapper.ToDatabase(engine.WithOperation(e.context(ctx), op), entity)
	if err != nil {
		return nil, e.fail(name, "Error while trying to build SQL statement for class "+class+".", err)
	}
	stmt, ok := v.(query.Statement)
	if !ok {
		return nil, e.fail(name, "Returned mapped value is not a Statement.", nil)
	}
	res, err := e.conn.Execute(ctx, stmt)
	if err != nil {
		return nil, e.fail(name, "An error occurred while executing the query.", err)
	}
	return res, nil
}
