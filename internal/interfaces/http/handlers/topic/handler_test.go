package topic

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/application/topic/usecases"
	"github.com/deskhub/deskhub/internal/interfaces/http/handlers/testutil"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type mockLister struct {
	got usecases.ListTopicsQuery
}

func (m *mockLister) Execute(ctx context.Context, q usecases.ListTopicsQuery) (*dto.TopicListDTO, error) {
	m.got = q
	items := []*dto.TopicDTO{{ID: 1}, {ID: 2}, {ID: 3}}
	return &dto.TopicListDTO{Items: items, TotalCount: 3, Page: 1, PageSize: 3}, nil
}

func (m *mockLister) Search(ctx context.Context, q usecases.SearchTopicsQuery) ([]*dto.TopicDTO, error) {
	return nil, errors.NewValidationError("search text is required")
}

type mockSender struct {
	got *usecases.SendConversationCommand
}

func (m *mockSender) Execute(ctx context.Context, cmd usecases.SendConversationCommand) (*dto.ConversationDTO, error) {
	m.got = &cmd
	return &dto.ConversationDTO{ID: 11, TopicID: cmd.TopicID, Msg: cmd.Msg}, nil
}

type mockPartners struct{}

func (mockPartners) Partners(ctx context.Context, caller common.Caller) ([]*dto.PartnerDTO, error) {
	return []*dto.PartnerDTO{{ID: 2, Name: "Ana", Unread: 1}}, nil
}

func (mockPartners) Unread(ctx context.Context, caller common.Caller) (int64, error) {
	if caller.ActorID == 0 {
		return 0, errors.NewForbiddenError("an actor account is required")
	}
	return 6, nil
}

func TestListTopics_Unpaginated(t *testing.T) {
	lister := &mockLister{}
	h := NewTopicHandler(UseCases{List: lister}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/topics", nil)
	testutil.SetAuthContext(c, 1, "TeamMember")
	h.ListTopics(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, lister.got.Params.Paginated())

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 3, data.PageSize)
	assert.Equal(t, 1, data.TotalPages)
}

func TestSearchTopics_RequiresText(t *testing.T) {
	h := NewTopicHandler(UseCases{List: &mockLister{}}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/topics/search", nil)
	testutil.SetAuthContext(c, 1, "TeamMember")
	h.SearchTopics(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendConversation(t *testing.T) {
	sender := &mockSender{}
	h := NewTopicHandler(UseCases{Send: sender}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/topics/4/conversations", map[string]any{"msg": "file:plan.pdf"})
	testutil.SetAuthContext(c, 1, "TeamMember")
	testutil.SetURLParam(c, "id", "4")
	h.SendConversation(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, sender.got)
	assert.Equal(t, uint(4), sender.got.TopicID)
	assert.Equal(t, uint(1), sender.got.Caller.ActorID)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/topics/4/conversations", map[string]any{})
	testutil.SetAuthContext(c, 1, "TeamMember")
	testutil.SetURLParam(c, "id", "4")
	h.SendConversation(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConversationCounters(t *testing.T) {
	h := NewTopicHandler(UseCases{Partners: mockPartners{}}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/conversations/unread", nil)
	testutil.SetAuthContext(c, 1, "TeamMember")
	h.UnreadCount(c)
	assert.JSONEq(t, `{"success":true,"data":{"count":6}}`, w.Body.String())

	c, w = testutil.NewTestContext(http.MethodGet, "/api/conversations/unread", nil)
	testutil.SetAuthContext(c, 0, "admin")
	h.UnreadCount(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/conversations/partners", nil)
	testutil.SetAuthContext(c, 1, "TeamMember")
	h.ChatPartners(c)
	assert.Contains(t, w.Body.String(), `"name":"Ana"`)
}
