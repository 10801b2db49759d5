// cmd/sqlx/dialects.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chmenegatti/sqlx/driver"
	"github.com/chmenegatti/sqlx/pkg/dialects"
)

func newDialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the available dialects",
		Long:  `Lists every registered dialect and whether a driver can open connections for it.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			openable := make(map[string]bool)
			for _, name := range driver.Drivers() {
				openable[name] = true
			}
			for _, name := range dialects.Registered() {
				if openable[name] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (render only)\n", name)
				}
			}
		},
	}
}
