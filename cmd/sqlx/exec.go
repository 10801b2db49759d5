// cmd/sqlx/exec.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/query"
)

func newExecCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <file.sql> [params...]",
		Short: "Execute a statement that returns no rows",
		Long:  `Loads a statement from a SQL file, binds the extra arguments to its "?" placeholders and executes it.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt, err := query.FromFile(args[0], fileArgs(args[1:])...)
			if err != nil {
				return err
			}
			db, log, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := db.Execute(cmd.Context(), stmt)
			if err != nil {
				return fmt.Errorf("exec failed: %w", err)
			}
			log.Info("statement executed", zap.String("file", args[0]), zap.Int64("affected", res.AffectedRows()))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Affected rows: %d\n", res.AffectedRows())
			if id := res.LastInsertedID(); id != "" && id != "0" {
				fmt.Fprintf(out, "Last inserted id: %s\n", id)
			}
			return nil
		},
	}
}
