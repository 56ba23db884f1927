package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
	"github.com/deskhub/deskhub/internal/shared/query"
)

var holidayFilterFields = map[string]query.Field{
	"id":     {Column: "holidays.id", Kind: query.KindUint},
	"user":   {Column: "holidays.user_id", Kind: query.KindUint},
	"status": {Column: "holidays.status", Kind: query.KindString},
	"from":   {Column: "holidays.from_date", Kind: query.KindString},
	"to":     {Column: "holidays.to_date", Kind: query.KindString},
}

var holidaySortFields = map[string]string{
	"id":        "holidays.id",
	"updatedAt": "holidays.updated_at",
	"createdAt": "holidays.created_at",
	"from":      "holidays.from_date",
	"to":        "holidays.to_date",
	"status":    "holidays.status",
}

type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) Create(ctx context.Context, h *holiday.Holiday) error {
	model := mappers.HolidayToModel(h)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create holiday: %w", err)
	}
	return h.SetID(model.ID)
}

func (r *HolidayRepository) Update(ctx context.Context, h *holiday.Holiday) error {
	model := mappers.HolidayToModel(h)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.HolidayModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "user_id", "created_by", "created_at", "deleted_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update holiday: %w", err)
	}
	return nil
}

func (r *HolidayRepository) GetByID(ctx context.Context, id uint) (*holiday.Holiday, error) {
	var model models.HolidayModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}
	return mappers.HolidayToDomain(&model)
}

func (r *HolidayRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.HolidayModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

// List applies scope, filters and the creation-month filter, then sorts and
// paginates.
func (r *HolidayRepository) List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*holiday.Holiday, int64, error) {
	conds, err := params.Conditions(holidayFilterFields)
	if err != nil {
		return nil, 0, err
	}

	q := db.GetTxFromContext(ctx, r.db).
		Model(&models.HolidayModel{}).
		Scopes(holidayScope(scope), andConditions(conds))
	if params.Month >= 1 && params.Month <= 12 {
		q = q.Where(monthOf(r.db, "holidays.created_at")+" = ?", params.Month)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count holidays: %w", err)
	}

	q = q.Order(params.OrderBy(holidaySortFields, "holidays.updated_at DESC") + ", holidays.id DESC")
	if params.Paginated() {
		q = q.Scopes(db.Paginate(params.Page(), params.Size()))
	}

	var rows []models.HolidayModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list holidays: %w", err)
	}

	out := make([]*holiday.Holiday, 0, len(rows))
	for i := range rows {
		h, err := mappers.HolidayToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, nil
}

func (r *HolidayRepository) GetVisible(ctx context.Context, scope visibility.Scope, holidayID uint) (*holiday.Holiday, error) {
	var model models.HolidayModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.HolidayModel{}).
		Scopes(holidayScope(scope)).
		Where("holidays.id = ?", holidayID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}
	return mappers.HolidayToDomain(&model)
}

// monthOf renders the month-number expression for the connected dialect.
func monthOf(gdb *gorm.DB, column string) string {
	if gdb.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%m', " + column + ") AS INTEGER)"
	}
	return "EXTRACT(MONTH FROM " + column + ")"
}

type DaysoffRepository struct {
	db *gorm.DB
}

func NewDaysoffRepository(db *gorm.DB) *DaysoffRepository {
	return &DaysoffRepository{db: db}
}

func (r *DaysoffRepository) Create(ctx context.Context, d *holiday.Daysoff) error {
	model := &models.DaysoffModel{Name: d.Name(), Date: d.Date(), CreatedAt: d.CreatedAt()}
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create day off: %w", err)
	}
	return d.SetID(model.ID)
}

func (r *DaysoffRepository) Update(ctx context.Context, d *holiday.Daysoff) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.DaysoffModel{}).
		Where("id = ?", d.ID()).
		Updates(map[string]any{"name": d.Name(), "day_date": d.Date()}).Error; err != nil {
		return fmt.Errorf("failed to update day off: %w", err)
	}
	return nil
}

func (r *DaysoffRepository) GetByID(ctx context.Context, id uint) (*holiday.Daysoff, error) {
	var model models.DaysoffModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get day off: %w", err)
	}
	return mappers.DaysoffToDomain(&model), nil
}

func (r *DaysoffRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.DaysoffModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete day off: %w", err)
	}
	return nil
}

func (r *DaysoffRepository) List(ctx context.Context) ([]*holiday.Daysoff, error) {
	var rows []models.DaysoffModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Order("day_date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list days off: %w", err)
	}
	out := make([]*holiday.Daysoff, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.DaysoffToDomain(&rows[i]))
	}
	return out, nil
}
