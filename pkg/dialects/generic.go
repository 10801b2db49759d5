// pkg/dialects/generic.go
package dialects

import "github.com/chmenegatti/sqlx/pkg/dialects/common"

// Names of the dialects shipped with sqlx.
const (
	GenericName  = "generic"
	MySQLName    = "mysql"
	SQLiteName   = "sqlite"
	PostgresName = "pgsql"
)

// Generic renders identifiers verbatim and passes values through.
type Generic struct{}

var _ common.Dialect = Generic{}

func (Generic) Name() string                       { return GenericName }
func (Generic) QuoteIdentifier(name string) string { return name }
func (Generic) QuoteTable(name string) string      { return name }
func (Generic) CleanValue(value any) any           { return value }
