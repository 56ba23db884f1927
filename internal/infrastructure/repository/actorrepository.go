package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type ActorRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewActorRepository(db *gorm.DB, logger logger.Interface) *ActorRepository {
	return &ActorRepository{db: db, logger: logger}
}

func (r *ActorRepository) Create(ctx context.Context, a *directory.Actor) error {
	tx := db.GetTxFromContext(ctx, r.db)
	model := mappers.ActorToModel(a)

	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create actor: %w", err)
		}
		if err := a.SetID(model.ID); err != nil {
			return err
		}

		deptIDs := a.DepartmentIDs()
		if len(deptIDs) == 0 {
			return nil
		}
		rows := make([]models.ActorDepartmentModel, 0, len(deptIDs))
		for _, id := range deptIDs {
			rows = append(rows, models.ActorDepartmentModel{ActorID: model.ID, DepartmentID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to store actor departments: %w", err)
		}
		return nil
	})
}

func (r *ActorRepository) GetByID(ctx context.Context, id uint) (*directory.Actor, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ActorRepository) GetByUsername(ctx context.Context, username string) (*directory.Actor, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *ActorRepository) first(ctx context.Context, cond string, arg any) (*directory.Actor, error) {
	var model models.ActorModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}

	depts, err := r.departmentsOf(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return mappers.ActorToDomain(&model, depts[model.ID])
}

func (r *ActorRepository) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Actor, error) {
	if len(ids) == 0 {
		return []*directory.Actor{}, nil
	}

	var rows []models.ActorModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get actors: %w", err)
	}

	depts, err := r.departmentsOf(ctx, ids...)
	if err != nil {
		return nil, err
	}

	actors := make([]*directory.Actor, 0, len(rows))
	for i := range rows {
		a, err := mappers.ActorToDomain(&rows[i], depts[rows[i].ID])
		if err != nil {
			r.logger.Warnw("skipping malformed actor", "actor_id", rows[i].ID, "error", err)
			continue
		}
		actors = append(actors, a)
	}
	return actors, nil
}

func (r *ActorRepository) departmentsOf(ctx context.Context, actorIDs ...uint) (map[uint][]uint, error) {
	var rows []models.ActorDepartmentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("actor_id IN ?", actorIDs).Order("department_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load actor departments: %w", err)
	}

	out := make(map[uint][]uint, len(actorIDs))
	for _, row := range rows {
		out[row.ActorID] = append(out[row.ActorID], row.DepartmentID)
	}
	return out, nil
}

func (r *ActorRepository) UpdateActivity(ctx context.Context, id uint, activity directory.Activity) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.ActorModel{}).Where("id = ?", id).Update("activity", activity.String()).Error; err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

func (r *ActorRepository) UpdateSolde(ctx context.Context, id uint, solde float64) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.ActorModel{}).Where("id = ?", id).Update("solde", solde).Error; err != nil {
		return fmt.Errorf("failed to update solde: %w", err)
	}
	return nil
}
