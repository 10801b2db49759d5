// metadata/metadata.go
package metadata

import (
	"errors"
	"fmt"
	"reflect"
)

// Flag marks special fields.
type Flag uint8

const (
	FlagID Flag = 1 << iota
	FlagAutoIncrement
)

// Field describes how one property maps to one column.
type Field struct {
	Name     string // property identifier
	Column   string // column identifier
	Type     string // semantic type tag, "" when the value passes through untouched
	Nullable bool
	Default  any
	Flags    Flag
	Scope    string // declaring type of the property
}

func (f *Field) IsID() bool {
	return f.Flags&FlagID != 0
}

func (f *Field) IsAutoIncrement() bool {
	return f.Flags&FlagAutoIncrement != 0
}

// Metadata is the immutable mapping of an entity type to a table.
type Metadata struct {
	className string
	tableName string
	fields    []*Field
	byName    map[string]*Field
	byColumn  map[string]*Field
	factory   func() any
}

// New validates and indexes fields. Names and columns must be unique and at
// most one id field may be autoincremented.
func New(className, tableName string, factory func() any, fields ...*Field) (*Metadata, error) {
	md := &Metadata{
		className: className,
		tableName: tableName,
		fields:    make([]*Field, 0, len(fields)),
		byName:    make(map[string]*Field, len(fields)),
		byColumn:  make(map[string]*Field, len(fields)),
		factory:   factory,
	}

	var errs []error
	if tableName == "" {
		errs = append(errs, errors.New("table name is empty"))
	}
	if factory == nil {
		errs = append(errs, errors.New("instance factory is nil"))
	}
	var autoIncrement *Field
	for _, f := range fields {
		if f == nil {
			errs = append(errs, errors.New("nil field"))
			continue
		}
		if _, dup := md.byName[f.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate property %q", f.Name))
			continue
		}
		if _, dup := md.byColumn[f.Column]; dup {
			errs = append(errs, fmt.Errorf("duplicate column %q", f.Column))
			continue
		}
		if f.IsAutoIncrement() {
			if !f.IsID() {
				errs = append(errs, fmt.Errorf("autoincrement field %q is not an id", f.Name))
			}
			if autoIncrement != nil {
				errs = append(errs, fmt.Errorf("fields %q and %q are both autoincrement", autoIncrement.Name, f.Name))
			}
			autoIncrement = f
		}
		md.fields = append(md.fields, f)
		md.byName[f.Name] = f
		md.byColumn[f.Column] = f
	}
	if len(errs) > 0 {
		return nil, Invalid(className, errors.Join(errs...))
	}
	return md, nil
}

func (m *Metadata) ClassName() string { return m.className }
func (m *Metadata) TableName() string { return m.tableName }

// Fields returns the fields in declaration order.
func (m *Metadata) Fields() []*Field {
	return append([]*Field(nil), m.fields...)
}

func (m *Metadata) FieldByName(name string) (*Field, bool) {
	f, ok := m.byName[name]
	return f, ok
}

func (m *Metadata) FieldByColumn(column string) (*Field, bool) {
	f, ok := m.byColumn[column]
	return f, ok
}

// IDFields returns the id fields in declaration order.
func (m *Metadata) IDFields() []*Field {
	var ids []*Field
	for _, f := range m.fields {
		if f.IsID() {
			ids = append(ids, f)
		}
	}
	return ids
}

// AutoIncrementField returns the autoincrement id field, if any.
func (m *Metadata) AutoIncrementField() (*Field, bool) {
	for _, f := range m.fields {
		if f.IsID() && f.IsAutoIncrement() {
			return f, true
		}
	}
	return nil, false
}

// NewInstance returns a blank instance of the entity.
func (m *Metadata) NewInstance() any {
	return m.factory()
}

// Store resolves the metadata of an entity type.
type Store interface {
	Retrieve(t reflect.Type) (*Metadata, error)
}

// Indirect dereferences pointer types.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
