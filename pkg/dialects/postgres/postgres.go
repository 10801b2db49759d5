// pkg/dialects/postgres/postgres.go
package postgres

import (
	"strconv"
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects"
	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

func init() {
	dialects.Register(Dialect{})
}

// Dialect implements common.Dialect for PostgreSQL.
type Dialect struct{}

var _ common.Dialect = Dialect{}

func (Dialect) Name() string {
	return dialects.PostgresName
}

func (Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d Dialect) QuoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func (Dialect) CleanValue(value any) any {
	return value
}

// Rebind rewrites the "?" placeholders of a rendered statement into the
// positional "$n" form PostgreSQL expects. Question marks inside single-quoted
// literals, double-quoted identifiers and comments are left untouched.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"':
			end := i + 1
			for end < len(query) {
				if query[end] == c {
					if end+1 < len(query) && query[end+1] == c {
						end += 2
						continue
					}
					break
				}
				end++
			}
			if end >= len(query) {
				end = len(query) - 1
			}
			b.WriteString(query[i : end+1])
			i = end
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			b.WriteString(query[i : i+end+1])
			i += end
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
