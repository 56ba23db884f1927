package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/infrastructure/database"
	"github.com/deskhub/deskhub/internal/infrastructure/migration/scripts"
	"github.com/deskhub/deskhub/internal/shared/config"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

func TestNewManager_PicksStrategyByDriver(t *testing.T) {
	m, err := NewManager(config.DriverSQLite, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())

	m, err = NewManager(config.DriverPostgres, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())

	_, err = NewManager("oracle", logger.NewNop())
	assert.Error(t, err)
}

func TestScripts_EveryVersionedDialectHasTheSameVersions(t *testing.T) {
	mysqlFiles, err := fs.Glob(scripts.FS, "mysql/*.sql")
	require.NoError(t, err)
	postgresFiles, err := fs.Glob(scripts.FS, "postgres/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, mysqlFiles)
	require.Len(t, postgresFiles, len(mysqlFiles))
	for i := range mysqlFiles {
		assert.Equal(t, mysqlFiles[i][len("mysql/"):], postgresFiles[i][len("postgres/"):])
	}
}

func TestAutoMigrate_CreatesSchema(t *testing.T) {
	gdb, err := database.Open(&config.DatabaseConfig{Driver: config.DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)

	m, err := NewManager(config.DriverSQLite, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Migrate(gdb))

	for _, table := range []string{"actors", "actor_departments", "tickets", "message_reads", "conversation_reads", "holidays", "daysoff", "sponsors", "sponsor_entities", "tools", "shifts", "user_shifts"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}
