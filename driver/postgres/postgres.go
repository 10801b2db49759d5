// driver/postgres/postgres.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/driver"
	"github.com/chmenegatti/sqlx/pkg/config"
	"github.com/chmenegatti/sqlx/pkg/dialects"
	"github.com/chmenegatti/sqlx/pkg/dialects/postgres"
)

func init() {
	driver.Register(dialects.PostgresName, Open)
}

// Open connects to PostgreSQL through pgx. cfg.DSN accepts both URL and
// keyword/value forms.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*conn.DB, error) {
	pc, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}
	db := stdlib.OpenDB(*pc)
	driver.Configure(db, cfg.Pool)
	if err := driver.Ping(ctx, db, "postgres"); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("connected", zap.String("driver", dialects.PostgresName), zap.String("host", pc.Host), zap.String("db", pc.Database))
	return Wrap(db, log), nil
}

// Wrap adapts an already opened pool, rebinding placeholders to $n.
func Wrap(db *sql.DB, log *zap.Logger) *conn.DB {
	return conn.New(db, postgres.Dialect{}, conn.WithLogger(log), conn.WithRebind(postgres.Rebind))
}
