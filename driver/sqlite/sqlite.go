// driver/sqlite/sqlite.go
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/driver"
	"github.com/chmenegatti/sqlx/pkg/config"
	"github.com/chmenegatti/sqlx/pkg/dialects"
	"github.com/chmenegatti/sqlx/pkg/dialects/sqlite"
)

func init() {
	driver.Register(dialects.SQLiteName, Open)
}

// Open connects to the SQLite database at cfg.DSN (a path or a "file:" URI).
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*conn.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("sqlite: database path (DSN) cannot be empty")
	}
	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %q: %w", cfg.DSN, err)
	}
	driver.Configure(db, cfg.Pool)
	if isMemory(cfg.DSN) {
		// Every connection to ":memory:" gets its own empty database.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
	if err := driver.Ping(ctx, db, "sqlite"); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("connected", zap.String("driver", dialects.SQLiteName), zap.String("dsn", cfg.DSN))
	return conn.New(db, sqlite.Dialect{}, conn.WithLogger(log)), nil
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
