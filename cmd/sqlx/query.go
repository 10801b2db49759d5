// cmd/sqlx/query.go
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chmenegatti/sqlx/query"
)

func newQueryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query <file.sql> [params...]",
		Short: "Run a query and print its rows",
		Long:  `Loads a query from a SQL file, binds the extra arguments to its "?" placeholders and prints the result as a table.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt, err := query.FromFile(args[0], fileArgs(args[1:])...)
			if err != nil {
				return err
			}
			db, _, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.Query(cmd.Context(), stmt)
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}
			defer rows.Close()

			cols, err := rows.Columns()
			if err != nil {
				return err
			}
			table := newTable(cols, opts.noColor)
			for rows.Next() {
				values, err := rows.ScanRow()
				if err != nil {
					return err
				}
				cells := make([]string, len(values))
				for i, v := range values {
					cells[i] = cell(v)
				}
				table.addRow(cells)
			}
			if err := rows.Err(); err != nil {
				return err
			}
			table.render(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "(%d rows)\n", len(table.rows))
			return nil
		},
	}
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	}
	return fmt.Sprint(v)
}

// table renders rows as aligned columns under a colored header.
type table struct {
	headers []string
	rows    [][]string
	noColor bool
}

func newTable(headers []string, noColor bool) *table {
	return &table{headers: headers, noColor: noColor}
}

func (t *table) addRow(cells []string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	if len(t.headers) == 0 {
		return
	}
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(widths) && len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if t.noColor {
		bold.DisableColor()
		gray.DisableColor()
	}
	for i, h := range t.headers {
		bold.Fprint(w, padRight(h, widths[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
	for i, width := range widths {
		gray.Fprint(w, strings.Repeat("-", width))
		if i < len(widths)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
	for _, row := range t.rows {
		fmt.Fprintln(w, strings.TrimRight(joinPadded(row, widths), " "))
	}
}

func joinPadded(row []string, widths []int) string {
	var b strings.Builder
	for i, c := range row {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padRight(c, widths[i]))
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
