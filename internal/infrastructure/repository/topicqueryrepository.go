package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
	"github.com/deskhub/deskhub/internal/shared/query"
)

var topicFilterFields = map[string]query.Field{
	"id":      {Column: "topics.id", Kind: query.KindUint},
	"from":    {Column: "topics.from_id", Kind: query.KindUint},
	"to":      {Column: "topics.to_id", Kind: query.KindUint},
	"status":  {Column: "topics.status", Kind: query.KindString},
	"subject": {Column: "topics.subject", Kind: query.KindString},
}

var topicSortFields = map[string]string{
	"id":        "topics.id",
	"updatedAt": "topics.updated_at",
	"createdAt": "topics.created_at",
	"status":    "topics.status",
	"subject":   "topics.subject",
}

type TopicQueryRepository struct {
	db *gorm.DB
}

func NewTopicQueryRepository(db *gorm.DB) *TopicQueryRepository {
	return &TopicQueryRepository{db: db}
}

// List returns the whole scoped list unless params asks for a page.
func (r *TopicQueryRepository) List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*topic.Topic, int64, error) {
	conds, err := params.Conditions(topicFilterFields)
	if err != nil {
		return nil, 0, err
	}

	q := db.GetTxFromContext(ctx, r.db).
		Model(&models.TopicModel{}).
		Scopes(topicScope(scope), andConditions(conds))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count topics: %w", err)
	}

	q = q.Order(params.OrderBy(topicSortFields, "topics.updated_at DESC") + ", topics.id DESC")
	if params.Paginated() {
		q = q.Scopes(db.Paginate(params.Page(), params.Size()))
	}

	var rows []models.TopicModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list topics: %w", err)
	}
	topics, err := mappers.TopicsToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

func (r *TopicQueryRepository) Search(ctx context.Context, scope visibility.Scope, text string) ([]*topic.Topic, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*topic.Topic{}, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)

	matching := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.ConversationModel{}).
		Select("topic_id").
		Scopes(db.ContainsFold("msg", text))

	var rows []models.TopicModel
	if err := tx.Model(&models.TopicModel{}).
		Scopes(topicScope(scope)).
		Where("topics.id IN (?)", matching).
		Order("topics.updated_at DESC, topics.id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search topics: %w", err)
	}
	return mappers.TopicsToDomain(rows)
}

func (r *TopicQueryRepository) GetVisible(ctx context.Context, scope visibility.Scope, topicID uint) (*topic.Topic, error) {
	var model models.TopicModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TopicModel{}).
		Scopes(topicScope(scope)).
		Where("topics.id = ?", topicID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return mappers.TopicToDomain(&model)
}
