package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) error {
	model := mappers.ShiftToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return s.SetID(model.ID)
}

func (r *ShiftRepository) GetByID(ctx context.Context, id uint) (*shift.Shift, error) {
	var model models.ShiftModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return mappers.ShiftToDomain(&model), nil
}

func (r *ShiftRepository) SetDeleted(ctx context.Context, id uint, deleted bool) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ShiftModel{}).
		Where("id = ?", id).
		Update("deleted", deleted).Error; err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	return nil
}

func (r *ShiftRepository) List(ctx context.Context) ([]*shift.Shift, error) {
	var rows []models.ShiftModel
	if err := db.GetTxFromContext(ctx, r.db).
		Order("todelete ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	out := make([]*shift.Shift, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ShiftToDomain(&rows[i]))
	}
	return out, nil
}

func (r *ShiftRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ShiftModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count shifts: %w", err)
	}
	return n, nil
}

func (r *ShiftRepository) SeedDefaults(ctx context.Context, defaults []*shift.Shift) (int, error) {
	if len(defaults) == 0 {
		return 0, nil
	}
	values := make([]string, 0, len(defaults))
	for _, s := range defaults {
		values = append(values, s.Value())
	}

	inserted := 0
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.ShiftModel{}).Where("value IN ?", values).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check default shifts: %w", err)
		}
		if existing > 0 {
			return nil
		}
		rows := make([]*models.ShiftModel, 0, len(defaults))
		for _, s := range defaults {
			rows = append(rows, mappers.ShiftToModel(s))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to seed default shifts: %w", err)
		}
		for i, s := range defaults {
			if err := s.SetID(rows[i].ID); err != nil {
				return err
			}
		}
		inserted = len(rows)
		return nil
	})
	return inserted, err
}
