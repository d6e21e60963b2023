// Package cli wires the kiddoland command line.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd returns the kiddoland command. Running it without a subcommand starts the server.
func RootCmd() *cobra.Command {
	serve := ServeCmd()

	cmd := &cobra.Command{
		Use:          "kiddoland",
		Short:        "KiddoLand story API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(HashPasswordCmd())
	cmd.AddCommand(VerifyCmd())

	return cmd
}
