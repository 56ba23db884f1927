package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
)

const sponsorDefaultOrder = "sponsors.created_at DESC, sponsors.id DESC"

type SponsorRepository struct {
	db *gorm.DB
}

func NewSponsorRepository(db *gorm.DB) *SponsorRepository {
	return &SponsorRepository{db: db}
}

func (r *SponsorRepository) Create(ctx context.Context, s *sponsor.Sponsor) error {
	model := mappers.SponsorToModel(s)
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create sponsor: %w", err)
		}
		if err := s.SetID(model.ID); err != nil {
			return err
		}
		return r.linkEntities(tx, model.ID, s.EntityIDs())
	})
}

func (r *SponsorRepository) Update(ctx context.Context, s *sponsor.Sponsor) error {
	model := mappers.SponsorToModel(s)
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SponsorModel{}).Where("id = ?", s.ID()).Updates(map[string]any{
			"name":              model.Name,
			"login_link":        model.LoginLink,
			"home_link":         model.HomeLink,
			"restricted_pages":  model.RestrictedPages,
			"login_selector":    model.LoginSelector,
			"password_selector": model.PasswordSelector,
			"submit_selector":   model.SubmitSelector,
			"username":          model.Username,
			"password":          model.Password,
			"updated_at":        model.UpdatedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to update sponsor: %w", err)
		}
		if err := tx.Where("sponsor_id = ?", s.ID()).Delete(&models.SponsorEntityModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear sponsor entities: %w", err)
		}
		return r.linkEntities(tx, s.ID(), s.EntityIDs())
	})
}

func (r *SponsorRepository) linkEntities(tx *gorm.DB, sponsorID uint, entityIDs []uint) error {
	if len(entityIDs) == 0 {
		return nil
	}
	rows := make([]models.SponsorEntityModel, 0, len(entityIDs))
	for _, id := range entityIDs {
		rows = append(rows, models.SponsorEntityModel{SponsorID: sponsorID, EntityID: id})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to store sponsor entities: %w", err)
	}
	return nil
}

func (r *SponsorRepository) GetByID(ctx context.Context, id uint) (*sponsor.Sponsor, error) {
	var model models.SponsorModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sponsor: %w", err)
	}
	out, err := r.toDomain(ctx, []models.SponsorModel{model})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (r *SponsorRepository) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&models.SponsorModel{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete sponsors: %w", res.Error)
		}
		deleted = res.RowsAffected
		if err := tx.Where("sponsor_id IN ?", ids).Delete(&models.SponsorEntityModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete sponsor entities: %w", err)
		}
		return nil
	})
	return deleted, err
}

func (r *SponsorRepository) UpdateStatus(ctx context.Context, ids []uint, status sponsor.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.GetTxFromContext(ctx, r.db).Model(&models.SponsorModel{}).
		Where("id IN ?", ids).
		Update("status", string(status))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update sponsor status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *SponsorRepository) List(ctx context.Context) ([]*sponsor.Sponsor, error) {
	var rows []models.SponsorModel
	if err := db.GetTxFromContext(ctx, r.db).Order(sponsorDefaultOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sponsors: %w", err)
	}
	return r.toDomain(ctx, rows)
}

func (r *SponsorRepository) ListActiveByEntities(ctx context.Context, entityIDs []uint) ([]*sponsor.Sponsor, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.SponsorModel{}).Where("sponsors.status = ?", string(sponsor.StatusActive))
	if entityIDs != nil {
		linked := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.SponsorEntityModel{}).
			Select("sponsor_id").
			Where("entity_id IN ?", entityIDs)
		q = q.Where("sponsors.id IN (?)", linked)
	}

	var rows []models.SponsorModel
	if err := q.Order(sponsorDefaultOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sponsors: %w", err)
	}
	return r.toDomain(ctx, rows)
}

type entityRow struct {
	ID   uint
	Name string
}

type sponsorLinkRow struct {
	SponsorID uint
	EntityID  uint
}

func (r *SponsorRepository) GroupByEntity(ctx context.Context, entityIDs []uint) ([]sponsor.EntityGroup, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var entities []entityRow
	eq := tx.Session(&gorm.Session{NewDB: true}).
		Table("entities").
		Select("id, name").
		Scopes(db.NotDeleted())
	if entityIDs != nil {
		eq = eq.Where("id IN ?", entityIDs)
	}
	if err := eq.Order("created_at DESC, id DESC").Scan(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	if len(entities) == 0 {
		return []sponsor.EntityGroup{}, nil
	}

	ids := make([]uint, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}

	var links []sponsorLinkRow
	if err := tx.Session(&gorm.Session{NewDB: true}).
		Table("sponsor_entities").
		Select("sponsor_entities.sponsor_id, sponsor_entities.entity_id").
		Joins("JOIN sponsors ON sponsors.id = sponsor_entities.sponsor_id").
		Scopes(db.NotDeletedWithAlias("sponsors")).
		Where("sponsors.status = ?", string(sponsor.StatusActive)).
		Where("sponsor_entities.entity_id IN ?", ids).
		Order("sponsors.created_at DESC, sponsors.id DESC").
		Scan(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load sponsor entities: %w", err)
	}

	sponsorIDs := make([]uint, 0, len(links))
	seen := make(map[uint]struct{}, len(links))
	for _, l := range links {
		if _, ok := seen[l.SponsorID]; !ok {
			seen[l.SponsorID] = struct{}{}
			sponsorIDs = append(sponsorIDs, l.SponsorID)
		}
	}
	byID := make(map[uint]*sponsor.Sponsor, len(sponsorIDs))
	if len(sponsorIDs) > 0 {
		var rows []models.SponsorModel
		if err := tx.Where("id IN ?", sponsorIDs).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load sponsors: %w", err)
		}
		loaded, err := r.toDomain(ctx, rows)
		if err != nil {
			return nil, err
		}
		for _, s := range loaded {
			byID[s.ID()] = s
		}
	}

	perEntity := make(map[uint][]*sponsor.Sponsor, len(entities))
	for _, l := range links {
		if s, ok := byID[l.SponsorID]; ok {
			perEntity[l.EntityID] = append(perEntity[l.EntityID], s)
		}
	}

	groups := make([]sponsor.EntityGroup, 0, len(entities))
	for _, e := range entities {
		list := perEntity[e.ID]
		if list == nil {
			list = []*sponsor.Sponsor{}
		}
		groups = append(groups, sponsor.EntityGroup{EntityID: e.ID, EntityName: e.Name, Sponsors: list})
	}
	return groups, nil
}

func (r *SponsorRepository) toDomain(ctx context.Context, rows []models.SponsorModel) ([]*sponsor.Sponsor, error) {
	out := make([]*sponsor.Sponsor, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]uint, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	var links []models.SponsorEntityModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("sponsor_id IN ?", ids).
		Order("entity_id ASC").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load sponsor entities: %w", err)
	}
	entities := make(map[uint][]uint, len(rows))
	for _, l := range links {
		entities[l.SponsorID] = append(entities[l.SponsorID], l.EntityID)
	}

	for i := range rows {
		out = append(out, mappers.SponsorToDomain(&rows[i], entities[rows[i].ID]))
	}
	return out, nil
}
