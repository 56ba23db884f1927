// Package sweep runs the stale-ticket archival once, for cron setups that
// do not keep the server's scheduler enabled.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/application/ticket/usecases"
	"github.com/deskhub/deskhub/internal/infrastructure/database"
	"github.com/deskhub/deskhub/internal/infrastructure/repository"
	"github.com/deskhub/deskhub/internal/interfaces/cli/bootstrap"
	"github.com/deskhub/deskhub/internal/shared/biztime"
)

var (
	env        string
	configPath string
	months     int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Archive stale closed tickets once",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().IntVar(&months, "months", 0, "Override scheduler.archive_after_months")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	boot, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer boot.Close()

	after := boot.Config.Scheduler.ArchiveAfterMonths
	if months > 0 {
		after = months
	}

	uc := usecases.NewArchiveStaleTicketsUseCase(
		repository.NewTicketRepository(database.Get(), boot.Log),
		after,
		boot.Log,
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	n, err := uc.Execute(ctx)
	if err != nil {
		return fmt.Errorf("archive sweep failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d tickets updated before %s\n", n, biztime.FormatDate(uc.Cutoff()))
	return nil
}
