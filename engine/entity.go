// engine/entity.go
package engine

import (
	"context"
	"errors"
	"reflect"

	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/accessor"
	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/mapper"
	"github.com/chmenegatti/sqlx/metadata"
	"github.com/chmenegatti/sqlx/query"
)

// FindClass asks EntityMapper.ToApplication for a Finder over Type.
type FindClass struct {
	Type reflect.Type
}

// LastID asks EntityMapper.ToApplication to write the id generated by an
// INSERT back onto Entity.
type LastID struct {
	Entity any
	Value  string
}

// EntityMapper is the mapper link translating entities into statements and
// finder requests into Finders. Values that are not entities are forwarded.
type EntityMapper struct {
	store    metadata.Store
	accessor accessor.Accessor
	tracker  Tracker
	conn     conn.Connection
	log      *zap.Logger
}

var _ mapper.Link = (*EntityMapper)(nil)

func NewEntityMapper(store metadata.Store, acc accessor.Accessor, tracker Tracker, c conn.Connection, log *zap.Logger) *EntityMapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &EntityMapper{store: store, accessor: acc, tracker: tracker, conn: c, log: log}
}

func (m *EntityMapper) Name() string { return "entity" }

func (m *EntityMapper) ToDatabase(ctx context.Context, value any, next mapper.Mapper) (any, error) {
	if !isObject(value) {
		return next.ToDatabase(ctx, value)
	}
	md, err := m.store.Retrieve(reflect.TypeOf(value))
	if errors.Is(err, metadata.ErrNotFound) {
		return next.ToDatabase(ctx, value)
	}
	if err != nil {
		return nil, mapper.Errorf(err, "Could not retrieve metadata for class %s", reflect.TypeOf(value))
	}

	ctx = mapper.WithTable(ctx, md.TableName())
	switch OperationFrom(ctx) {
	case OpInsert:
		return m.insert(ctx, md, value, next)
	case OpUpdate:
		return m.update(ctx, md, value, next)
	case OpDelete:
		return m.delete(ctx, md, value, next)
	default:
		return m.record(ctx, md, value, next)
	}
}

func (m *EntityMapper) ToApplication(ctx context.Context, value any, next mapper.Mapper) (any, error) {
	switch v := value.(type) {
	case FindClass:
		return m.find(ctx, v.Type, next)
	case LastID:
		return m.lastID(ctx, v, next)
	}
	return next.ToApplication(ctx, value)
}

func (m *EntityMapper) insert(ctx context.Context, md *metadata.Metadata, entity any, next mapper.Mapper) (any, error) {
	var pairs []query.Pair
	for _, f := range md.Fields() {
		if f.IsAutoIncrement() {
			continue
		}
		v, err := m.fieldValue(ctx, md, f, entity, next)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, query.P(f.Column, v))
	}
	return query.InsertInto(md.TableName()).Values(pairs...), nil
}

func (m *EntityMapper) update(ctx context.Context, md *metadata.Metadata, entity any, next mapper.Mapper) (any, error) {
	if len(md.IDFields()) == 0 {
		return nil, mapper.Errorf(nil, "Cannot update class %s without id fields", md.ClassName())
	}
	stmt := query.UpdateTable(md.TableName())
	for _, f := range md.Fields() {
		v, err := m.fieldValue(ctx, md, f, entity, next)
		if err != nil {
			return nil, err
		}
		if f.IsID() {
			stmt.AndWhere(query.Eq(f.Column, v))
		} else {
			stmt.Set(query.P(f.Column, v))
		}
	}
	return stmt, nil
}

func (m *EntityMapper) delete(ctx context.Context, md *metadata.Metadata, entity any, next mapper.Mapper) (any, error) {
	ids := md.IDFields()
	if len(ids) == 0 {
		return nil, mapper.Errorf(nil, "Cannot delete class %s without id fields", md.ClassName())
	}
	stmt := query.DeleteFrom(md.TableName())
	for _, f := range ids {
		v, err := m.fieldValue(ctx, md, f, entity, next)
		if err != nil {
			return nil, err
		}
		stmt.AndWhere(query.Eq(f.Column, v))
	}
	return stmt, nil
}

// record maps every property to its database value.
func (m *EntityMapper) record(ctx context.Context, md *metadata.Metadata, entity any, next mapper.Mapper) (any, error) {
	rec := make(map[string]any, len(md.Fields()))
	for _, f := range md.Fields() {
		v, err := m.fieldValue(ctx, md, f, entity, next)
		if err != nil {
			return nil, err
		}
		rec[f.Name] = v
	}
	return rec, nil
}

func (m *EntityMapper) fieldValue(ctx context.Context, md *metadata.Metadata, f *metadata.Field, entity any, next mapper.Mapper) (any, error) {
	v, err := m.accessor.Get(entity, f.Scope, f.Name)
	if err != nil {
		return nil, mapper.Errorf(err, "Error while mapping property %q of class %q", f.Name, md.ClassName())
	}
	ctx = mapper.WithType(mapper.WithColumn(ctx, f.Column), f.Type)
	v, err = next.ToDatabase(ctx, v)
	if err != nil {
		return nil, mapper.Errorf(err, "Error while mapping property %q of class %q", f.Name, md.ClassName())
	}
	return v, nil
}

func (m *EntityMapper) find(ctx context.Context, t reflect.Type, next mapper.Mapper) (*Finder, error) {
	md, err := m.store.Retrieve(t)
	if err != nil {
		return nil, mapper.Errorf(err, "Could not retrieve metadata for class %s", t)
	}
	f := &Finder{
		ctx:      mapper.WithTable(ctx, md.TableName()),
		conn:     m.conn,
		md:       md,
		mapper:   next,
		accessor: m.accessor,
		tracker:  m.tracker,
		log:      m.log,
		sel:      query.SelectFrom(md.TableName()),
	}
	if err := applyFilters(ctx, f, md); err != nil {
		return nil, err
	}
	return f, nil
}

func (m *EntityMapper) lastID(ctx context.Context, req LastID, next mapper.Mapper) (any, error) {
	if req.Value == "" {
		return nil, nil
	}
	md, err := m.store.Retrieve(reflect.TypeOf(req.Entity))
	if err != nil {
		return nil, mapper.Errorf(err, "Could not retrieve metadata for class %s", reflect.TypeOf(req.Entity))
	}
	f, ok := md.AutoIncrementField()
	if !ok {
		return nil, nil
	}
	ctx = mapper.WithType(mapper.WithColumn(mapper.WithTable(ctx, md.TableName()), f.Column), f.Type)
	id, err := next.ToApplication(ctx, req.Value)
	if err != nil {
		return nil, mapper.Errorf(err, "Error while mapping property %q of class %q", f.Name, md.ClassName())
	}
	if err := m.accessor.Set(req.Entity, f.Scope, f.Name, id); err != nil {
		return nil, mapper.Errorf(err, "Error while mapping property %q of class %q", f.Name, md.ClassName())
	}
	return id, nil
}

// isObject reports whether v is a struct or a non-nil pointer to one.
func isObject(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}
