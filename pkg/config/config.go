// pkg/config/config.go
package config

import "time"

// PoolConfig holds the connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int           `mapstructure:"maxIdleConns"    validate:"gte=0"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // Ex: "1h", "30m"
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
}

// DatabaseConfig holds the connection settings.
type DatabaseConfig struct {
	Dialect string     `mapstructure:"dialect" validate:"required,oneof=mysql sqlite pgsql"`
	DSN     string     `mapstructure:"dsn"     validate:"required"` // driver specific Data Source Name
	Pool    PoolConfig `mapstructure:"pool"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// MappingConfig overrides the datetime layouts used by the value mappers.
// Empty values keep the dialect defaults.
type MappingConfig struct {
	AppTimeFormat string `mapstructure:"appTimeFormat"` // layout used to parse values read from the database
	DBTimeFormat  string `mapstructure:"dbTimeFormat"`  // layout used to format values sent to the database
}

// Config aggregates every setting.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Mapping  MappingConfig  `mapstructure:"mapping"`
}

// NewDefaultConfig returns a configuration holding the default values.
func NewDefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			// Dialect and DSN must be provided by the user
			Pool: PoolConfig{
				MaxIdleConns:    5,
				MaxOpenConns:    10,
				ConnMaxLifetime: time.Hour,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
