// datasource.go
package sqlx

import (
	"context"
	"fmt"

	"github.com/chmenegatti/sqlx/driver"
	"github.com/chmenegatti/sqlx/pkg/config"
	"github.com/chmenegatti/sqlx/pkg/logging"
)

// Open validates cfg, connects with the driver registered for
// cfg.Database.Dialect and returns a ready Engine. The driver package must
// be imported for its side effects, ex:
//
//	import _ "github.com/chmenegatti/sqlx/driver/sqlite"
//
// Options are applied after the ones derived from cfg.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("sqlx.Open: %w", err)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open: %w", err)
	}
	db, err := driver.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open: %w", err)
	}
	base := []Option{
		WithLogger(log),
		WithTimeFormats(cfg.Mapping.AppTimeFormat, cfg.Mapping.DBTimeFormat),
	}
	return New(db, append(base, opts...)...), nil
}
