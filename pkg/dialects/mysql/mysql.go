// pkg/dialects/mysql/mysql.go
package mysql

import (
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects"
	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

func init() {
	dialects.Register(Dialect{})
}

// Dialect implements common.Dialect for MySQL/MariaDB.
type Dialect struct{}

var (
	_ common.Dialect   = Dialect{}
	_ common.Unlimited = Dialect{}
)

func (Dialect) Name() string {
	return dialects.MySQLName
}

func (Dialect) QuoteIdentifier(name string) string {
	return quote(name)
}

// QuoteTable quotes each dot-separated part, so "db.users" becomes `db`.`users`.
func (Dialect) QuoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quote(p)
	}
	return strings.Join(parts, ".")
}

func (Dialect) CleanValue(value any) any {
	return value
}

// NoLimit is the largest LIMIT MySQL accepts.
func (Dialect) NoLimit() string { return "18446744073709551615" }

func quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}
