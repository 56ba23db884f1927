package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/infrastructure/database"
	"github.com/deskhub/deskhub/internal/infrastructure/migration"
	"github.com/deskhub/deskhub/internal/interfaces/cli/bootstrap"
)

// scriptsRoot is where "migrate create" writes new scripts.
const scriptsRoot = "./internal/infrastructure/migration/scripts"

var (
	env        string
	configPath string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending migrations. sqlite databases are auto-migrated from the models.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new timestamped SQL migration for the configured driver.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runUp(cmd *cobra.Command, args []string) error {
	boot, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer boot.Close()
	log := boot.Log

	log.Infow("running up migrations", "environment", env, "driver", boot.Config.Database.Driver)

	manager, err := migration.NewManager(boot.Config.Database.Driver, log)
	if err != nil {
		return err
	}
	if err := manager.Migrate(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func goose(boot *bootstrap.Env) (*migration.GooseStrategy, error) {
	strategy, err := migration.NewGooseStrategy(boot.Config.Database.Driver, boot.Log)
	if err != nil {
		return nil, fmt.Errorf("versioned migrations are not available for driver %q: %w", boot.Config.Database.Driver, err)
	}
	return strategy, nil
}

func runDown(cmd *cobra.Command, args []string) error {
	boot, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer boot.Close()

	strategy, err := goose(boot)
	if err != nil {
		return err
	}

	boot.Log.Infow("running down migrations", "environment", env, "steps", steps)
	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	boot.Log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	boot, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer boot.Close()

	strategy, err := goose(boot)
	if err != nil {
		return err
	}

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Driver:          %s\n", boot.Config.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := strategy.Status(database.Get()); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	boot, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer boot.Close()

	strategy, err := goose(boot)
	if err != nil {
		return err
	}

	if err := strategy.Create(scriptsRoot, name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created for %s\n", name, boot.Config.Database.Driver)
	return nil
}
