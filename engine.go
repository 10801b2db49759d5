// engine.go
package sqlx

import (
	"context"
	"io"
	"reflect"

	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/accessor"
	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/engine"
	"github.com/chmenegatti/sqlx/mapper"
	"github.com/chmenegatti/sqlx/metadata"
	"github.com/chmenegatti/sqlx/pkg/dialects"
)

// Engine persists, deletes and finds entities over one connection.
//
//	e := sqlx.New(db)
//	err := e.Persist(ctx, &User{Name: "jane"})      // INSERT, then tracked
//	f, err := e.Find(ctx, (*User)(nil))
//	u, err := f.AndWhere(query.Eq("Name", "jane")).One(ctx)
//
// An Engine is safe for concurrent use when its tracker and metadata store
// are; the defaults are.
type Engine struct {
	conn     conn.Connection
	store    metadata.Store
	accessor accessor.Accessor
	tracker  engine.Tracker
	namer    metadata.Namer
	links    []mapper.Link
	log      *zap.Logger
	appTime  string
	dbTime   string
	driver   string
	mapper   *mapper.Chain
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracker replaces the default InMemoryTracker.
func WithTracker(t engine.Tracker) Option {
	return func(e *Engine) { e.tracker = t }
}

// WithMetadataStore replaces the default struct tag store.
func WithMetadataStore(s metadata.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithAccessor replaces the default reflective property accessor.
func WithAccessor(a accessor.Accessor) Option {
	return func(e *Engine) { e.accessor = a }
}

// WithNamer sets the namer of the default metadata store.
func WithNamer(n metadata.Namer) Option {
	return func(e *Engine) { e.namer = n }
}

// WithMapper inserts links between the entity mapper and the driver link.
// Links run in the order given.
func WithMapper(links ...mapper.Link) Option {
	return func(e *Engine) { e.links = append(e.links, links...) }
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithTimeFormats overrides the datetime layouts used to read (app) and
// write (db) values. Empty layouts keep the driver defaults.
func WithTimeFormats(app, db string) Option {
	return func(e *Engine) {
		e.appTime = app
		e.dbTime = db
	}
}

// New returns an Engine over c. When c reports its dialect, the dialect name
// selects the driver defaults of the value mappers.
func New(c conn.Connection, opts ...Option) *Engine {
	if c == nil {
		panic("sqlx: cannot create Engine with nil connection")
	}
	e := &Engine{conn: c, log: zap.NewNop(), driver: dialects.GenericName}
	if d, ok := c.(conn.Dialected); ok {
		e.driver = d.Dialect().Name()
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = metadata.NewReflection(e.namer, e.log)
	}
	if e.accessor == nil {
		e.accessor = accessor.NewReflective()
	}
	if e.tracker == nil {
		e.tracker = engine.NewInMemoryTracker()
	}

	links := make([]mapper.Link, 0, len(e.links)+2)
	links = append(links, engine.NewEntityMapper(e.store, e.accessor, e.tracker, e.conn, e.log))
	links = append(links, e.links...)
	links = append(links, mapper.NewDriverLink(e.driver))
	e.mapper = mapper.NewChain(mapper.Standard{}, links...)
	return e
}

// Mapper returns the value mapper chain of the engine.
func (e *Engine) Mapper() *mapper.Chain { return e.mapper }

// Tracker returns the identity tracker of the engine.
func (e *Engine) Tracker() engine.Tracker { return e.tracker }

// Conn returns the connection the engine runs statements on.
func (e *Engine) Conn() conn.Connection { return e.conn }

// Close closes the connection when it can be closed.
func (e *Engine) Close() error {
	if c, ok := e.conn.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Find returns a Finder over the class of sample, which may be a value, a
// (possibly nil) pointer or a reflect.Type.
func (e *Engine) Find(ctx context.Context, sample any) (*engine.Finder, error) {
	t, ok := sample.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(sample)
	}
	class := className(t)
	e.log.Debug("find", zap.String("class", class))

	v, err := e.mapper.ToApplication(e.context(ctx), engine.FindClass{Type: t})
	if err != nil {
		return nil, e.fail(opFind, "Error while creating finder for class "+class+".", err)
	}
	f, ok := v.(*engine.Finder)
	if !ok {
		return nil, e.fail(opFind, "Returned mapped value is not a Finder.", nil)
	}
	return f, nil
}

// context adds the engine's datetime overrides to ctx.
func (e *Engine) context(ctx context.Context) context.Context {
	if e.appTime != "" {
		ctx = mapper.WithAppTimeFormat(ctx, e.appTime)
	}
	if e.dbTime != "" {
		ctx = mapper.WithDBTimeFormat(ctx, e.dbTime)
	}
	return ctx
}

func (e *Engine) fail(op, msg string, err error) error {
	e.log.Warn(msg, zap.String("op", op), zap.Error(err))
	return &EngineError{Op: op, Msg: msg, Err: err}
}

func className(t reflect.Type) string {
	t = metadata.Indirect(t)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
