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
	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type mockTicketRepository struct {
	CreateFunc       func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc       func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc      func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByIDsFunc     func(ctx context.Context, ticketIDs []uint) ([]*ticket.Ticket, error)
	DeleteFunc       func(ctx context.Context, ticketIDs ...uint) error
	UpdateStatusFunc func(ctx context.Context, ticketIDs []uint, status vo.TicketStatus, changedBy uint) (int64, error)
	ArchiveStaleFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByIDs(ctx context.Context, ticketIDs []uint) ([]*ticket.Ticket, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ticketIDs)
	}
	return nil, nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketIDs ...uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketIDs...)
	}
	return nil
}

func (m *mockTicketRepository) UpdateStatus(ctx context.Context, ticketIDs []uint, status vo.TicketStatus, changedBy uint) (int64, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, ticketIDs, status, changedBy)
	}
	return int64(len(ticketIDs)), nil
}

func (m *mockTicketRepository) ArchiveStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.ArchiveStaleFunc != nil {
		return m.ArchiveStaleFunc(ctx, cutoff)
	}
	return 0, nil
}

type mockMessageRepository struct {
	CreateFunc       func(ctx context.Context, m *ticket.Message) error
	UpdateFunc       func(ctx context.Context, m *ticket.Message) error
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.Message, error)
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *ticket.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) Update(ctx context.Context, msg *ticket.Message) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockQueryRepository struct {
	ListFunc          func(ctx context.Context, scope visibility.Scope, params query.Params) ([]*ticket.Ticket, int64, error)
	IDsFunc           func(ctx context.Context, scope visibility.Scope, params query.Params) ([]uint, error)
	CountByStatusFunc func(ctx context.Context, scope visibility.Scope) ([]ticket.StatusCount, error)
	SearchFunc        func(ctx context.Context, scope visibility.Scope, text string) ([]*ticket.Ticket, error)
	GetVisibleFunc    func(ctx context.Context, scope visibility.Scope, ticketID uint) (*ticket.Ticket, error)
}

func (m *mockQueryRepository) List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, params)
	}
	return nil, 0, nil
}

func (m *mockQueryRepository) IDs(ctx context.Context, scope visibility.Scope, params query.Params) ([]uint, error) {
	if m.IDsFunc != nil {
		return m.IDsFunc(ctx, scope, params)
	}
	return nil, nil
}

func (m *mockQueryRepository) CountByStatus(ctx context.Context, scope visibility.Scope) ([]ticket.StatusCount, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, scope)
	}
	return nil, nil
}

func (m *mockQueryRepository) Search(ctx context.Context, scope visibility.Scope, text string) ([]*ticket.Ticket, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, scope, text)
	}
	return nil, nil
}

func (m *mockQueryRepository) GetVisible(ctx context.Context, scope visibility.Scope, ticketID uint) (*ticket.Ticket, error) {
	if m.GetVisibleFunc != nil {
		return m.GetVisibleFunc(ctx, scope, ticketID)
	}
	return nil, nil
}

type mockReadRepository struct {
	MarkTicketReadFunc       func(ctx context.Context, actorID, ticketID uint) (int64, error)
	CountTicketUnreadFunc    func(ctx context.Context, actorID, ticketID uint) (int64, error)
	CountUnreadByTicketsFunc func(ctx context.Context, actorID uint, ticketIDs []uint) (map[uint]int64, error)
	CountUnreadForScopeFunc  func(ctx context.Context, scope visibility.Scope) (readtracker.Summary, error)
}

func (m *mockReadRepository) MarkTicketRead(ctx context.Context, actorID, ticketID uint) (int64, error) {
	if m.MarkTicketReadFunc != nil {
		return m.MarkTicketReadFunc(ctx, actorID, ticketID)
	}
	return 0, nil
}

func (m *mockReadRepository) MarkTopicRead(ctx context.Context, actorID, topicID uint) (int64, error) {
	return 0, nil
}

func (m *mockReadRepository) MarkConversationRead(ctx context.Context, actorID, conversationID uint) error {
	return nil
}

func (m *mockReadRepository) CountTicketUnread(ctx context.Context, actorID, ticketID uint) (int64, error) {
	if m.CountTicketUnreadFunc != nil {
		return m.CountTicketUnreadFunc(ctx, actorID, ticketID)
	}
	return 0, nil
}

func (m *mockReadRepository) CountTopicUnread(ctx context.Context, actorID, topicID uint) (int64, error) {
	return 0, nil
}

func (m *mockReadRepository) CountUnreadByTickets(ctx context.Context, actorID uint, ticketIDs []uint) (map[uint]int64, error) {
	if m.CountUnreadByTicketsFunc != nil {
		return m.CountUnreadByTicketsFunc(ctx, actorID, ticketIDs)
	}
	return map[uint]int64{}, nil
}

func (m *mockReadRepository) CountUnreadByTopics(ctx context.Context, actorID uint, topicIDs []uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (m *mockReadRepository) CountUnreadForScope(ctx context.Context, scope visibility.Scope) (readtracker.Summary, error) {
	if m.CountUnreadForScopeFunc != nil {
		return m.CountUnreadForScopeFunc(ctx, scope)
	}
	return readtracker.Summary{}, nil
}

func (m *mockReadRepository) CountUnreadFromPartner(ctx context.Context, me, partnerID uint) (int64, error) {
	return 0, nil
}

func (m *mockReadRepository) CountUnreadAddressedTo(ctx context.Context, me uint) (int64, error) {
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

type fakeFileStore struct {
	renamed []string
}

func (f *fakeFileStore) Save(ctx context.Context, name string, r io.Reader) (shared.Attachment, error) {
	return shared.Attachment{Kind: shared.AttachmentFile, Name: name}, nil
}

func (f *fakeFileStore) Rename(ctx context.Context, name string, containerID uint) (string, error) {
	f.renamed = append(f.renamed, name)
	return shared.StoredName(containerID, name), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name)
	}
	return out
}

func newMember(id uint) *directory.Actor {
	a, err := directory.ReconstructActor(id, directory.ActorParams{
		Username: "member",
		Role:     directory.RoleTeamMember,
		UserType: directory.UserTypeProd,
	}, directory.ActivityOnline, "active", true, "", time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return a
}

func existingTicket(id, owner uint) *ticket.Ticket {
	t, err := ticket.ReconstructTicket(ticket.Snapshot{
		ID:     id,
		UserID: owner,
		Content: ticket.Content{
			Subject:  "printer on fire",
			Severity: vo.SeverityMajor,
		},
		Status:    vo.StatusOpen,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	})
	if err != nil {
		panic(err)
	}
	return t
}

func resolverFor(actors ...*directory.Actor) (*common.ScopeResolver, *mockActorFinder) {
	finder := &mockActorFinder{actors: map[uint]*directory.Actor{}}
	for _, a := range actors {
		finder.actors[a.ID()] = a
	}
	return common.NewScopeResolver(finder), finder
}
