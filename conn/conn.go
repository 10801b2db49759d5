// conn/conn.go
package conn

import (
	"context"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
	"github.com/chmenegatti/sqlx/query"
)

// Connection executes statements against a database.
type Connection interface {
	// Execute runs a statement that returns no rows.
	Execute(ctx context.Context, stmt query.Statement) (Result, error)
	// Query runs a statement that returns rows.
	Query(ctx context.Context, stmt query.Statement) (Rows, error)
}

// Dialected is implemented by connections that know their dialect.
type Dialected interface {
	Dialect() common.Dialect
}

// Result describes an executed statement.
type Result interface {
	// LastInsertedID returns the id generated by an INSERT, or "" when the
	// driver cannot report it.
	LastInsertedID() string
	AffectedRows() int64
}

// Rows is a forward-only cursor over raw rows. Analogous to sql.Rows.
type Rows interface {
	Next() bool
	Columns() ([]string, error)
	// ScanRow returns the current row's values in column order.
	ScanRow() ([]any, error)
	// ScanAssoc returns the current row keyed by column name.
	ScanAssoc() (map[string]any, error)
	Err() error
	Close() error
}
