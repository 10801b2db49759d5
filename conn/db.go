// conn/db.go
package conn

import (
	"context"
	"database/sql"
	"strconv"

	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
	"github.com/chmenegatti/sqlx/query"
)

// DB adapts a *sql.DB to Connection.
type DB struct {
	db      *sql.DB
	dialect common.Dialect
	rebind  func(string) string
	log     *zap.Logger
}

var (
	_ Connection = (*DB)(nil)
	_ Dialected  = (*DB)(nil)
)

// Option configures a DB.
type Option func(*DB)

// WithLogger logs every statement at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(c *DB) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRebind rewrites rendered SQL before it reaches the driver, ex: to
// turn "?" placeholders into "$1".
func WithRebind(fn func(string) string) Option {
	return func(c *DB) { c.rebind = fn }
}

// New wraps db. Statements are rendered with dialect unless the context
// carries another one (see common.WithDialect).
func New(db *sql.DB, dialect common.Dialect, opts ...Option) *DB {
	if db == nil {
		panic("conn: cannot create DB with nil *sql.DB")
	}
	if dialect == nil {
		panic("conn: cannot create DB with nil dialect")
	}
	c := &DB{db: db, dialect: dialect, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *DB) Dialect() common.Dialect { return c.dialect }

// SQLDB returns the underlying pool.
func (c *DB) SQLDB() *sql.DB { return c.db }

func (c *DB) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c *DB) Close() error { return c.db.Close() }

func (c *DB) render(ctx context.Context, stmt query.Statement) (string, []any, error) {
	d := c.dialect
	if override, ok := common.DialectFrom(ctx); ok {
		d = override
	}
	text := stmt.SQL(d)
	if err := query.Check(stmt); err != nil {
		return text, nil, &ExecutionError{SQL: text, Err: err}
	}
	params := stmt.Params(d)
	if c.rebind != nil {
		text = c.rebind(text)
	}
	c.log.Debug("sql", zap.String("dialect", d.Name()), zap.String("query", text), zap.Int("params", len(params)))
	return text, params, nil
}

func (c *DB) Execute(ctx context.Context, stmt query.Statement) (Result, error) {
	text, params, err := c.render(ctx, stmt)
	if err != nil {
		return nil, err
	}
	res, err := c.db.ExecContext(ctx, text, params...)
	if err != nil {
		c.log.Warn("statement failed", zap.String("query", text), zap.Error(err))
		return nil, &ExecutionError{SQL: text, Err: err}
	}
	return sqlResult{res}, nil
}

func (c *DB) Query(ctx context.Context, stmt query.Statement) (Rows, error) {
	text, params, err := c.render(ctx, stmt)
	if err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(ctx, text, params...)
	if err != nil {
		c.log.Warn("query failed", zap.String("query", text), zap.Error(err))
		return nil, &ExecutionError{SQL: text, Err: err}
	}
	return &sqlRows{rows: rows}, nil
}

type sqlResult struct {
	res sql.Result
}

func (r sqlResult) LastInsertedID() string {
	id, err := r.res.LastInsertId()
	if err != nil {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func (r sqlResult) AffectedRows() int64 {
	n, err := r.res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

type sqlRows struct {
	rows *sql.Rows
	cols []string
}

func (r *sqlRows) Next() bool { return r.rows.Next() }

func (r *sqlRows) Columns() ([]string, error) {
	if r.cols == nil {
		cols, err := r.rows.Columns()
		if err != nil {
			return nil, &ScanError{Msg: "could not read columns", Err: err}
		}
		r.cols = cols
	}
	return r.cols, nil
}

func (r *sqlRows) ScanRow() ([]any, error) {
	cols, err := r.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, &ScanError{Msg: "could not scan row", Err: err}
	}
	return values, nil
}

func (r *sqlRows) ScanAssoc() (map[string]any, error) {
	values, err := r.ScanRow()
	if err != nil {
		return nil, err
	}
	row := make(map[string]any, len(values))
	for i, col := range r.cols {
		row[col] = values[i]
	}
	return row, nil
}

func (r *sqlRows) Err() error   { return r.rows.Err() }
func (r *sqlRows) Close() error { return r.rows.Close() }
