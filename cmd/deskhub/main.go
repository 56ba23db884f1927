package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/interfaces/cli/migrate"
	"github.com/deskhub/deskhub/internal/interfaces/cli/server"
	"github.com/deskhub/deskhub/internal/interfaces/cli/sweep"
	"github.com/deskhub/deskhub/internal/interfaces/cli/token"
	"github.com/deskhub/deskhub/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "deskhub",
		Short:   "DeskHub - helpdesk tickets, chat and holidays with live notifications",
		Version: version.Get().Version,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
