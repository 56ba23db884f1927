package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
)

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) Create(ctx context.Context, t *topic.Topic) error {
	model := mappers.TopicToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TopicRepository) Update(ctx context.Context, t *topic.Topic) error {
	model := mappers.TopicToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TopicModel{}).
		Where("id = ?", model.ID).
		Select("subject", "status", "updated_by_id", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	return nil
}

func (r *TopicRepository) GetByID(ctx context.Context, id uint) (*topic.Topic, error) {
	var model models.TopicModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return mappers.TopicToDomain(&model)
}

func (r *TopicRepository) GetByIDs(ctx context.Context, ids []uint) ([]*topic.Topic, error) {
	if len(ids) == 0 {
		return []*topic.Topic{}, nil
	}
	var rows []models.TopicModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Order("updated_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}
	return mappers.TopicsToDomain(rows)
}

func (r *TopicRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return tx.Transaction(func(tx *gorm.DB) error {
		convIDs := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.ConversationModel{}).
			Select("id").
			Where("topic_id = ?", id)

		if err := tx.Where("conversation_id IN (?)", convIDs).Delete(&models.ConversationReadModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversation reads: %w", err)
		}
		if err := tx.Where("topic_id = ?", id).Delete(&models.ConversationModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversations: %w", err)
		}
		if err := tx.Delete(&models.TopicModel{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete topic: %w", err)
		}
		return nil
	})
}

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(ctx context.Context, c *topic.Conversation) error {
	model := mappers.ConversationToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *ConversationRepository) Update(ctx context.Context, c *topic.Conversation) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.ConversationModel{}).Where("id = ?", c.ID()).Update("msg", c.Msg()).Error; err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

func (r *ConversationRepository) ListByTopic(ctx context.Context, topicID uint) ([]*topic.Conversation, error) {
	var rows []models.ConversationModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("topic_id = ?", topicID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(rows) == 0 {
		return []*topic.Conversation{}, nil
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	var reads []models.ConversationReadModel
	if err := tx.Where("conversation_id IN ?", ids).Order("id ASC").Find(&reads).Error; err != nil {
		return nil, fmt.Errorf("failed to load conversation reads: %w", err)
	}
	readers := make(map[uint][]uint, len(rows))
	for _, rd := range reads {
		readers[rd.ConversationID] = append(readers[rd.ConversationID], rd.UserID)
	}

	out := make([]*topic.Conversation, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ConversationToDomain(&rows[i], readers[rows[i].ID]))
	}
	return out, nil
}

// Partners returns everyone actorID has exchanged conversations with.
func (r *ConversationRepository) Partners(ctx context.Context, actorID uint) ([]uint, error) {
	var ids []uint
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Raw(`SELECT DISTINCT partner_id FROM (
		SELECT to_id AS partner_id FROM conversations WHERE from_id = ? AND deleted_at IS NULL
		UNION
		SELECT from_id AS partner_id FROM conversations WHERE to_id = ? AND deleted_at IS NULL
	) partners ORDER BY partner_id`, actorID, actorID).Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chat partners: %w", err)
	}
	return ids, nil
}
