// cmd/sqlx/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/driver"
	_ "github.com/chmenegatti/sqlx/driver/mysql"
	_ "github.com/chmenegatti/sqlx/driver/postgres"
	_ "github.com/chmenegatti/sqlx/driver/sqlite"
	"github.com/chmenegatti/sqlx/pkg/config"
	"github.com/chmenegatti/sqlx/pkg/logging"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	cfgFile string // Persistent flag for the config file path
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "sqlx",
		Short: "sqlx CLI for running SQL files against a configured database",
		Long: `The sqlx CLI runs SQL files through the same connection layer
the sqlx engine uses: configuration, driver registry, dialect
rendering and logging.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "Configuration file (default is ./sqlx.yaml or $HOME/.sqlx/sqlx.yaml)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newExecCmd(opts), newQueryCmd(opts), newDialectsCmd())
	return root
}

// connect loads the configuration and opens the configured database.
func (o *options) connect(ctx context.Context) (*conn.DB, *zap.Logger, error) {
	cfg, err := config.LoadConfig(o.cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading configuration: %w", err)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	db, err := driver.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to %s: %w", cfg.Database.Dialect, err)
	}
	return db, log, nil
}

// fileArgs turns the trailing command line arguments into statement parameters.
func fileArgs(args []string) []any {
	params := make([]any, len(args))
	for i, a := range args {
		params[i] = a
	}
	return params
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: '%s'\n", err)
		os.Exit(1)
	}
}
