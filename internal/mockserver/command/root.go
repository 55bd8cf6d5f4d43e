// Package command holds the cobra commands of the mock ArcaneDex server.
package command

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mockserver",
		Short: "In-memory ArcaneDex API for local development and tests",
		Long: `mockserver serves the ArcaneDex HTTP API from memory.

It seeds a catalog of creatures and an admin account so the CLI can be
exercised end to end without the real backend.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())

	return cmd
}
