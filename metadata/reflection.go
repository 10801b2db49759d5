// metadata/reflection.go
package metadata

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TagName is the struct tag read by Reflection.
//
//	type User struct {
//	    ID       int64  `sqlx:"id;autoIncrement"`
//	    TenantID int    `sqlx:"column:tenant"`
//	    Email    string `sqlx:"default:none"`
//	    Secret   string `sqlx:"-"`
//	}
const TagName = "sqlx"

// Tabler lets an entity declare its table name.
type Tabler interface {
	TableName() string
}

var (
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	tablerType  = reflect.TypeOf((*Tabler)(nil)).Elem()
	timeType    = reflect.TypeOf(time.Time{})
)

// Reflection builds metadata from struct tags. A struct is an entity when it
// implements Tabler or when at least one of its fields carries a `sqlx` tag.
// Results, including failures, are computed once per type and cached forever.
type Reflection struct {
	namer Namer
	log   *zap.Logger
	cache sync.Map // reflect.Type -> result
	group singleflight.Group
}

type result struct {
	md  *Metadata
	err error
}

var _ Store = (*Reflection)(nil)

// NewReflection returns a store using namer for undeclared names.
// A nil namer means Underscore; a nil logger disables logging.
func NewReflection(namer Namer, log *zap.Logger) *Reflection {
	if namer == nil {
		namer = Underscore{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reflection{namer: namer, log: log}
}

func (r *Reflection) Retrieve(t reflect.Type) (*Metadata, error) {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, NotFound(className(t))
	}
	if cached, ok := r.cache.Load(t); ok {
		res := cached.(result)
		return res.md, res.err
	}

	v, _, _ := r.group.Do(t.PkgPath()+"."+t.String(), func() (any, error) {
		if cached, ok := r.cache.Load(t); ok {
			return cached, nil
		}
		md, err := r.parse(t)
		res := result{md: md, err: err}
		r.cache.Store(t, res)
		if err != nil {
			r.log.Debug("metadata rejected", zap.String("class", t.String()), zap.Error(err))
		} else {
			r.log.Debug("metadata parsed", zap.String("class", t.String()),
				zap.String("table", md.TableName()), zap.Int("fields", len(md.fields)))
		}
		return res, nil
	})
	res := v.(result)
	return res.md, res.err
}

// Clear drops every cached result.
func (r *Reflection) Clear() {
	r.cache.Range(func(key, _ any) bool {
		r.cache.Delete(key)
		return true
	})
}

func (r *Reflection) parse(t reflect.Type) (*Metadata, error) {
	class := t.String()
	tabler := t.Implements(tablerType) || reflect.PointerTo(t).Implements(tablerType)
	if !tabler && !hasTags(t) {
		return nil, NotFound(class)
	}

	table := r.namer.ClassToTable(t)
	if tabler {
		table = reflect.New(t).Interface().(Tabler).TableName()
	}

	var (
		fields []*Field
		errs   []error
	)
	r.collect(t, t, &fields, &errs)
	if len(errs) > 0 {
		return nil, Invalid(class, errors.Join(errs...))
	}

	factory := func() any { return reflect.New(t).Interface() }
	return New(class, table, factory, fields...)
}

func (r *Reflection) collect(root, t reflect.Type, fields *[]*Field, errs *[]error) {
	scope := t.String()
	for i := range t.NumField() {
		sf := t.Field(i)
		tag, tagged := sf.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}

		if sf.Anonymous && !tagged {
			switch {
			case sf.Type.Kind() == reflect.Struct && sf.Type != timeType && !isScanner(sf.Type):
				r.collect(root, sf.Type, fields, errs)
				continue
			case sf.Type.Kind() == reflect.Pointer && sf.Type.Elem().Kind() == reflect.Struct:
				*errs = append(*errs, fmt.Errorf("embedded pointer %s.%s is not supported", scope, sf.Name))
				continue
			}
		}
		if !sf.IsExported() && !tagged {
			continue
		}

		typ, nullable, err := typeTag(sf.Type)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("field %s.%s: %w", scope, sf.Name, err))
			continue
		}
		f := &Field{
			Name:     sf.Name,
			Column:   r.namer.PropertyToColumn(root, sf.Name),
			Type:     typ,
			Nullable: nullable,
			Scope:    scope,
		}

		seen := make(map[string]bool)
		for _, opt := range strings.Split(tag, ";") {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				continue
			}
			key, value, _ := strings.Cut(opt, ":")
			key = strings.ToLower(strings.TrimSpace(key))
			value = strings.TrimSpace(value)
			if seen[key] {
				*errs = append(*errs, fmt.Errorf("duplicate tag %q on field %s.%s", key, scope, sf.Name))
				continue
			}
			seen[key] = true

			switch key {
			case "column":
				f.Column = value
			case "id", "primarykey", "pk":
				f.Flags |= FlagID
			case "autoincrement", "auto_increment":
				f.Flags |= FlagID | FlagAutoIncrement
			case "nullable":
				f.Nullable = true
			case "notnull", "not_null":
				f.Nullable = false
			case "default":
				f.Default = value
			case "type":
				f.Type = value
			default:
				*errs = append(*errs, fmt.Errorf("unknown tag %q on field %s.%s", key, scope, sf.Name))
			}
		}
		if f.Column == "" {
			*errs = append(*errs, fmt.Errorf("empty column for field %s.%s", scope, sf.Name))
			continue
		}
		*fields = append(*fields, f)
	}
}

func hasTags(t reflect.Type) bool {
	for i := range t.NumField() {
		sf := t.Field(i)
		if _, ok := sf.Tag.Lookup(TagName); ok {
			return true
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && hasTags(sf.Type) {
			return true
		}
	}
	return false
}

func isScanner(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(scannerType)
}

// typeTag returns the semantic type of a field type and whether it accepts NULL.
func typeTag(t reflect.Type) (string, bool, error) {
	nullable := false
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = true
	}
	switch {
	case isScanner(t):
		return "", true, nil
	case t == timeType:
		return "time.Time", nullable, nil
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return "[]uint8", true, nil
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return t.Kind().String(), nullable, nil
	}
	return "", false, fmt.Errorf("unsupported type %s", t)
}
