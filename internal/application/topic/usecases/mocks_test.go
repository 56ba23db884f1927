package usecases

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/shared"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type mockTopicRepository struct {
	CreateFunc func(ctx context.Context, t *topic.Topic) error
	UpdateFunc func(ctx context.Context, t *topic.Topic) error
	DeleteFunc func(ctx context.Context, id uint) error
}

func (m *mockTopicRepository) Create(ctx context.Context, t *topic.Topic) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTopicRepository) Update(ctx context.Context, t *topic.Topic) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTopicRepository) GetByID(ctx context.Context, id uint) (*topic.Topic, error) {
	return nil, nil
}

func (m *mockTopicRepository) GetByIDs(ctx context.Context, ids []uint) ([]*topic.Topic, error) {
	return nil, nil
}

func (m *mockTopicRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockConversationRepository struct {
	CreateFunc      func(ctx context.Context, c *topic.Conversation) error
	UpdateFunc      func(ctx context.Context, c *topic.Conversation) error
	ListByTopicFunc func(ctx context.Context, topicID uint) ([]*topic.Conversation, error)
	PartnersFunc    func(ctx context.Context, actorID uint) ([]uint, error)
}

func (m *mockConversationRepository) Create(ctx context.Context, c *topic.Conversation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockConversationRepository) Update(ctx context.Context, c *topic.Conversation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockConversationRepository) ListByTopic(ctx context.Context, topicID uint) ([]*topic.Conversation, error) {
	if m.ListByTopicFunc != nil {
		return m.ListByTopicFunc(ctx, topicID)
	}
	return nil, nil
}

func (m *mockConversationRepository) Partners(ctx context.Context, actorID uint) ([]uint, error) {
	if m.PartnersFunc != nil {
		return m.PartnersFunc(ctx, actorID)
	}
	return nil, nil
}

type mockQueryRepository struct {
	ListFunc       func(ctx context.Context, scope visibility.Scope, params query.Params) ([]*topic.Topic, int64, error)
	SearchFunc     func(ctx context.Context, scope visibility.Scope, text string) ([]*topic.Topic, error)
	GetVisibleFunc func(ctx context.Context, scope visibility.Scope, topicID uint) (*topic.Topic, error)
}

func (m *mockQueryRepository) List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*topic.Topic, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, params)
	}
	return nil, 0, nil
}

func (m *mockQueryRepository) Search(ctx context.Context, scope visibility.Scope, text string) ([]*topic.Topic, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, scope, text)
	}
	return nil, nil
}

func (m *mockQueryRepository) GetVisible(ctx context.Context, scope visibility.Scope, topicID uint) (*topic.Topic, error) {
	if m.GetVisibleFunc != nil {
		return m.GetVisibleFunc(ctx, scope, topicID)
	}
	return nil, nil
}

type mockReadRepository struct {
	mu                         sync.Mutex
	MarkTopicReadFunc          func(ctx context.Context, actorID, topicID uint) (int64, error)
	MarkConversationReadFunc   func(ctx context.Context, actorID, conversationID uint) error
	CountUnreadByTopicsFunc    func(ctx context.Context, actorID uint, topicIDs []uint) (map[uint]int64, error)
	CountUnreadFromPartnerFunc func(ctx context.Context, me, partnerID uint) (int64, error)
	CountUnreadAddressedToFunc func(ctx context.Context, me uint) (int64, error)
}

func (m *mockReadRepository) MarkTicketRead(ctx context.Context, actorID, ticketID uint) (int64, error) {
	return 0, nil
}

func (m *mockReadRepository) MarkTopicRead(ctx context.Context, actorID, topicID uint) (int64, error) {
	if m.MarkTopicReadFunc != nil {
		return m.MarkTopicReadFunc(ctx, actorID, topicID)
	}
	return 0, nil
}

func (m *mockReadRepository) MarkConversationRead(ctx context.Context, actorID, conversationID uint) error {
	if m.MarkConversationReadFunc != nil {
		return m.MarkConversationReadFunc(ctx, actorID, conversationID)
	}
	return nil
}

func (m *mockReadRepository) CountTicketUnread(ctx context.Context, actorID, ticketID uint) (int64, error) {
	return 0, nil
}

func (m *mockReadRepository) CountTopicUnread(ctx context.Context, actorID, topicID uint) (int64, error) {
	return 0, nil
}

func (m *mockReadRepository) CountUnreadByTickets(ctx context.Context, actorID uint, ticketIDs []uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (m *mockReadRepository) CountUnreadByTopics(ctx context.Context, actorID uint, topicIDs []uint) (map[uint]int64, error) {
	if m.CountUnreadByTopicsFunc != nil {
		return m.CountUnreadByTopicsFunc(ctx, actorID, topicIDs)
	}
	return map[uint]int64{}, nil
}

func (m *mockReadRepository) CountUnreadForScope(ctx context.Context, scope visibility.Scope) (readtracker.Summary, error) {
	return readtracker.Summary{}, nil
}

func (m *mockReadRepository) CountUnreadFromPartner(ctx context.Context, me, partnerID uint) (int64, error) {
	if m.CountUnreadFromPartnerFunc != nil {
		return m.CountUnreadFromPartnerFunc(ctx, me, partnerID)
	}
	return 0, nil
}

func (m *mockReadRepository) CountUnreadAddressedTo(ctx context.Context, me uint) (int64, error) {
	if m.CountUnreadAddressedToFunc != nil {
		return m.CountUnreadAddressedToFunc(ctx, me)
	}
	return 0, nil
}

type mockActorFinder struct {
	actors map[uint]*directory.Actor
}

func (m *mockActorFinder) GetByID(ctx context.Context, id uint) (*directory.Actor, error) {
	return m.actors[id], nil
}

func (m *mockActorFinder) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Actor, error) {
	out := make([]*directory.Actor, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.actors[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(s string) string { return s }

type fakeFileStore struct{}

func (fakeFileStore) Save(ctx context.Context, name string, r io.Reader) (shared.Attachment, error) {
	return shared.Attachment{Kind: shared.AttachmentImage, Name: name}, nil
}

func (fakeFileStore) Rename(ctx context.Context, name string, containerID uint) (string, error) {
	return shared.StoredName(containerID, name), nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.events = append(p.events, e)
}

func actor(id uint, name string) *directory.Actor {
	a, err := directory.ReconstructActor(id, directory.ActorParams{
		Name:     name,
		Username: name,
		Role:     directory.RoleTeamMember,
		UserType: directory.UserTypeProd,
	}, directory.ActivityOnline, "active", true, "", time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return a
}

func finderOf(actors ...*directory.Actor) *mockActorFinder {
	f := &mockActorFinder{actors: map[uint]*directory.Actor{}}
	for _, a := range actors {
		f.actors[a.ID()] = a
	}
	return f
}

func existingTopic(id, from, to uint) *topic.Topic {
	t, err := topic.ReconstructTopic(id, from, to, "rota swap", topic.StatusOpen, nil, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	return t
}

var _ common.ActorFinder = (*mockActorFinder)(nil)
