// accessor/reflective.go
package accessor

import (
	"database/sql"
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

// Reflective accesses struct fields through reflection, unexported ones
// included. Objects passed to Set must be non-nil pointers to structs.
type Reflective struct {
	paths sync.Map // pathKey -> []int
}

type pathKey struct {
	t     reflect.Type
	scope string
	name  string
}

var _ Accessor = (*Reflective)(nil)

func NewReflective() *Reflective {
	return &Reflective{}
}

func (r *Reflective) Get(obj any, scope, name string) (any, error) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("accessor: cannot read %s.%s of a nil %T", scope, name, obj)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nonexistent(scope, name)
	}
	path, ok := r.path(rv.Type(), scope, name)
	if !ok {
		return nil, nonexistent(scope, name)
	}
	if !rv.CanAddr() {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}
	field := open(rv.FieldByIndex(path))
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return nil, nil
		}
		return field.Elem().Interface(), nil
	}
	return field.Interface(), nil
}

func (r *Reflective) Set(obj any, scope, name string, value any) error {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("accessor: cannot write %s.%s of %T, a pointer to a struct is required", scope, name, obj)
	}
	rv = rv.Elem()
	path, ok := r.path(rv.Type(), scope, name)
	if !ok {
		return nonexistent(scope, name)
	}
	if err := assign(open(rv.FieldByIndex(path)), value); err != nil {
		return fmt.Errorf("accessor: %s.%s: %w", scope, name, err)
	}
	return nil
}

func (r *Reflective) Has(obj any, scope, name string) bool {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	_, ok := r.path(t, scope, name)
	return ok
}

func (r *Reflective) path(t reflect.Type, scope, name string) ([]int, bool) {
	key := pathKey{t, scope, name}
	if p, ok := r.paths.Load(key); ok {
		return p.([]int), true
	}
	p, ok := find(t, scope, name, nil)
	if ok {
		r.paths.Store(key, p)
	}
	return p, ok
}

// find walks t and its embedded structs looking for name declared by scope.
func find(t reflect.Type, scope, name string, prefix []int) ([]int, bool) {
	if t.String() == scope {
		if sf, ok := t.FieldByName(name); ok && len(sf.Index) == 1 {
			return append(append([]int(nil), prefix...), sf.Index[0]), true
		}
	}
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if p, ok := find(sf.Type, scope, name, append(prefix, i)); ok {
				return p, true
			}
		}
	}
	return nil, false
}

// open makes an addressable field readable and writable even when unexported.
func open(field reflect.Value) reflect.Value {
	if field.CanSet() {
		return field
	}
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

func assign(field reflect.Value, value any) error {
	ft := field.Type()
	if value == nil {
		if field.CanAddr() && field.Addr().Type().Implements(scannerType) {
			return field.Addr().Interface().(sql.Scanner).Scan(nil)
		}
		field.Set(reflect.Zero(ft))
		return nil
	}

	vv := reflect.ValueOf(value)
	if vv.Type().AssignableTo(ft) {
		field.Set(vv)
		return nil
	}
	if ft.Kind() == reflect.Pointer {
		elem := reflect.New(ft.Elem())
		if err := assign(elem.Elem(), value); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}
	if field.CanAddr() && field.Addr().Type().Implements(scannerType) {
		return field.Addr().Interface().(sql.Scanner).Scan(value)
	}
	if compatible(vv.Kind(), ft.Kind()) && vv.Type().ConvertibleTo(ft) {
		field.Set(vv.Convert(ft))
		return nil
	}
	return fmt.Errorf("cannot assign %T to a field of type %s", value, ft)
}

// compatible rejects conversions reflect allows but that change meaning,
// such as int to string.
func compatible(from, to reflect.Kind) bool {
	switch {
	case isNumber(from) && isNumber(to):
		return true
	case from == reflect.String && to == reflect.String,
		from == reflect.Bool && to == reflect.Bool,
		from == reflect.Slice && to == reflect.Slice:
		return true
	}
	return false
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
