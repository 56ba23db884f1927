package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/tool"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
)

type ToolRepository struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

func (r *ToolRepository) Create(ctx context.Context, t *tool.Tool) error {
	model := mappers.ToolToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tool: %w", err)
	}
	return t.SetID(model.ID)
}

// Update writes every column so flags can be cleared.
func (r *ToolRepository) Update(ctx context.Context, t *tool.Tool) error {
	model := mappers.ToolToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ToolModel{}).
		Where("id = ?", t.ID()).
		Select("entity_id", "tool", "name", "server", "port", "password", "api_link",
			"active", "deploying", "logs", "description", "client_url", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update tool: %w", err)
	}
	return nil
}

func (r *ToolRepository) GetByID(ctx context.Context, id uint) (*tool.Tool, error) {
	var model models.ToolModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}
	return mappers.ToolToDomain(&model), nil
}

func (r *ToolRepository) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Delete(&models.ToolModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete tools: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ToolRepository) ListActive(ctx context.Context, entityIDs []uint) ([]*tool.Tool, error) {
	q := db.GetTxFromContext(ctx, r.db).Where("active = ?", true)
	if entityIDs != nil {
		q = q.Where("(entity_id IS NULL OR entity_id IN ?)", entityIDs)
	}

	var rows []models.ToolModel
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	out := make([]*tool.Tool, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ToolToDomain(&rows[i]))
	}
	return out, nil
}
