package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
)

// RecordRepository stores the planning, one row per user, shift and day.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) CreateMissing(ctx context.Context, records []*shift.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	rows := make([]*models.UserShiftModel, 0, len(records))
	for _, rec := range records {
		rows = append(rows, mappers.RecordToModel(rec))
	}
	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to create shift records: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.UserShiftModel{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete shift record: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *RecordRepository) DeleteInRange(ctx context.Context, ids []uint, from, to string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.GetTxFromContext(ctx, r.db).
		Where("id IN ? AND day >= ? AND day <= ?", ids, from, to).
		Delete(&models.UserShiftModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete shift records: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type plannedRow struct {
	models.UserShiftModel
	UserName string
	TeamID   *uint
}

func (r *RecordRepository) List(ctx context.Context, f shift.RecordFilter) ([]*shift.PlannedRecord, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.UserShiftModel{}).
		Select("user_shifts.*, actors.name AS user_name, actors.team_id AS team_id").
		Joins("JOIN actors ON actors.id = user_shifts.user_id").
		Scopes(db.NotDeletedWithAlias("actors")).
		Where("user_shifts.day >= ? AND user_shifts.day <= ?", f.From, f.To)
	if f.EntityID != nil {
		q = q.Where("actors.entity_id = ?", *f.EntityID)
	}
	if f.TeamIDs != nil {
		q = q.Where("actors.team_id IN ?", f.TeamIDs)
	}

	var rows []plannedRow
	if err := q.Order("user_shifts.day ASC, user_shifts.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list shift records: %w", err)
	}
	if len(rows) == 0 {
		return []*shift.PlannedRecord{}, nil
	}

	shiftIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		shiftIDs = append(shiftIDs, row.ShiftID)
	}
	var shiftRows []models.ShiftModel
	if err := tx.Unscoped().Where("id IN ?", shiftIDs).Find(&shiftRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load planned shifts: %w", err)
	}
	shifts := make(map[uint]*shift.Shift, len(shiftRows))
	for i := range shiftRows {
		shifts[shiftRows[i].ID] = mappers.ShiftToDomain(&shiftRows[i])
	}

	out := make([]*shift.PlannedRecord, 0, len(rows))
	for i := range rows {
		out = append(out, &shift.PlannedRecord{
			Record:   mappers.RecordToDomain(&rows[i].UserShiftModel),
			Shift:    shifts[rows[i].ShiftID],
			UserName: rows[i].UserName,
			TeamID:   rows[i].TeamID,
		})
	}
	return out, nil
}
