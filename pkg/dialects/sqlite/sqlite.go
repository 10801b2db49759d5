// pkg/dialects/sqlite/sqlite.go
package sqlite

import (
	"github.com/chmenegatti/sqlx/pkg/dialects"
	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

func init() {
	dialects.Register(Dialect{})
}

// Dialect implements common.Dialect for SQLite. Identifiers are left unquoted;
// SQLite has no boolean storage class so booleans are bound as 0/1.
type Dialect struct{}

var (
	_ common.Dialect   = Dialect{}
	_ common.Unlimited = Dialect{}
)

func (Dialect) Name() string                       { return dialects.SQLiteName }
func (Dialect) QuoteIdentifier(name string) string { return name }
func (Dialect) QuoteTable(name string) string      { return name }

func (Dialect) CleanValue(value any) any {
	if b, ok := value.(bool); ok {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	return value
}

func (Dialect) NoLimit() string { return "-1" }
