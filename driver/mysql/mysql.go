// driver/mysql/mysql.go
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/driver"
	"github.com/chmenegatti/sqlx/pkg/config"
	"github.com/chmenegatti/sqlx/pkg/dialects"
	"github.com/chmenegatti/sqlx/pkg/dialects/mysql"
)

func init() {
	driver.Register(dialects.MySQLName, Open)
}

// DSN validates and normalizes a go-sql-driver DSN. parseTime is always
// enabled so DATETIME columns arrive as time.Time.
func DSN(dsn string) (*gomysql.Config, error) {
	mc, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: invalid DSN: %w", err)
	}
	mc.ParseTime = true
	return mc, nil
}

// Open connects to MySQL/MariaDB.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*conn.DB, error) {
	mc, err := DSN(cfg.DSN)
	if err != nil {
		return nil, err
	}
	connector, err := gomysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	db := sql.OpenDB(connector)
	driver.Configure(db, cfg.Pool)
	if err := driver.Ping(ctx, db, "mysql"); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("connected", zap.String("driver", dialects.MySQLName), zap.String("addr", mc.Addr), zap.String("db", mc.DBName))
	return conn.New(db, mysql.Dialect{}, conn.WithLogger(log)), nil
}
