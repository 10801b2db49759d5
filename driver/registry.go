// driver/registry.go
package driver

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/pkg/config"
)

// Opener connects to a database described by cfg.
type Opener func(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*conn.DB, error)

// PingTimeout bounds the connectivity check performed by openers.
const PingTimeout = 5 * time.Second

var (
	openersMu sync.RWMutex
	openers   = make(map[string]Opener)
)

// Register makes an opener available by dialect name. Driver packages call
// it from init. It panics on a nil opener or a duplicate name.
func Register(name string, opener Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()
	if opener == nil {
		panic("driver: Register opener is nil")
	}
	if _, dup := openers[name]; dup {
		panic("driver: Register called twice for driver " + name)
	}
	openers[name] = opener
}

// Get returns the opener registered under name, or nil.
func Get(name string) Opener {
	openersMu.RLock()
	defer openersMu.RUnlock()
	return openers[name]
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	openersMu.RLock()
	defer openersMu.RUnlock()
	list := make([]string, 0, len(openers))
	for name := range openers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Open connects with the opener registered for cfg.Dialect.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*conn.DB, error) {
	opener := Get(cfg.Dialect)
	if opener == nil {
		return nil, fmt.Errorf("driver: unknown dialect %q (forgotten import?)", cfg.Dialect)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return opener(ctx, cfg, log)
}

// Configure applies the pool settings of cfg to db.
func Configure(db *sql.DB, pool config.PoolConfig) {
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
}

// Ping verifies db is reachable, closing it on failure.
func Ping(ctx context.Context, db *sql.DB, name string) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("%s: failed to ping database: %w", name, err)
	}
	return nil
}
