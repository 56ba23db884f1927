package mappers

import (
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
)

func TopicToModel(t *topic.Topic) *models.TopicModel {
	return &models.TopicModel{
		ID:          t.ID(),
		FromID:      t.FromID(),
		ToID:        t.ToID(),
		Subject:     t.Subject(),
		Status:      string(t.Status()),
		UpdatedByID: t.UpdatedByID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func TopicToDomain(m *models.TopicModel) (*topic.Topic, error) {
	return topic.ReconstructTopic(m.ID, m.FromID, m.ToID, m.Subject, topic.Status(m.Status), m.UpdatedByID, m.CreatedAt, m.UpdatedAt)
}

func TopicsToDomain(rows []models.TopicModel) ([]*topic.Topic, error) {
	out := make([]*topic.Topic, 0, len(rows))
	for i := range rows {
		t, err := TopicToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func ConversationToModel(c *topic.Conversation) *models.ConversationModel {
	return &models.ConversationModel{
		ID:        c.ID(),
		TopicID:   c.TopicID(),
		FromID:    c.FromID(),
		ToID:      c.ToID(),
		Msg:       c.Msg(),
		CreatedAt: c.CreatedAt(),
	}
}

func ConversationToDomain(m *models.ConversationModel, read []uint) *topic.Conversation {
	return topic.ReconstructConversation(m.ID, m.TopicID, m.FromID, m.ToID, m.Msg, read, m.CreatedAt)
}
