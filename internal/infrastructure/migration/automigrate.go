package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Used for sqlite and throwaway development databases.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("starting gorm auto migration", "models_count", len(all))
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
