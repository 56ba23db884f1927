package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/directory/dto"
	"github.com/deskhub/deskhub/internal/application/directory/usecases"
	domain "github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/interfaces/http/handlers/testutil"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type stubCurrent struct{}

func (stubCurrent) Execute(ctx context.Context, actorID uint) (*dto.ActorDTO, error) {
	return &dto.ActorDTO{ID: actorID, Name: "Amal", Role: "TeamLeader", Activity: "ONLINE"}, nil
}

type stubPresence struct {
	got *usecases.UpdatePresenceCommand
}

func (s *stubPresence) Execute(ctx context.Context, cmd usecases.UpdatePresenceCommand) (*usecases.PresenceResult, error) {
	s.got = &cmd
	return &usecases.PresenceResult{Activity: domain.NextActivity(domain.ActivityOnline, cmd.Signal), Changed: true}, nil
}

type stubConns []uint

func (s stubConns) IsOnline(actorID uint) bool {
	for _, id := range s {
		if id == actorID {
			return true
		}
	}
	return false
}

func (s stubConns) OnlineActors() []uint { return s }

func TestGetMe(t *testing.T) {
	h := NewDirectoryHandler(stubCurrent{}, &stubPresence{}, stubConns{}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/actors/me", nil)
	testutil.SetAuthContext(c, 12, "TeamLeader")
	h.GetMe(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":12`)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/actors/me", nil)
	testutil.SetAuthContext(c, 0, "admin")
	h.GetMe(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateActivity(t *testing.T) {
	presence := &stubPresence{}
	h := NewDirectoryHandler(stubCurrent{}, presence, stubConns{}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/actors/me/activity", map[string]any{"event": "user-away", "type": "click"})
	testutil.SetAuthContext(c, 12, "TeamLeader")
	h.UpdateActivity(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, presence.got)
	assert.Equal(t, uint(12), presence.got.ActorID)
	assert.Contains(t, w.Body.String(), `"activity":"AWAY"`)

	c, w = testutil.NewTestContext(http.MethodPut, "/api/actors/me/activity", map[string]any{"activity": "BUSY"})
	testutil.SetAuthContext(c, 12, "TeamLeader")
	h.UpdateActivity(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOnline_Paginates(t *testing.T) {
	h := NewDirectoryHandler(stubCurrent{}, &stubPresence{}, stubConns{3, 5, 8, 13, 21}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/actors/online", nil)
	testutil.SetAuthContext(c, 12, "TeamLeader")
	testutil.SetQueryParams(c, map[string]string{"page": "2", "size": "2"})
	h.ListOnline(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	var ids []uint
	require.NoError(t, json.Unmarshal(list.Items, &ids))

	assert.Equal(t, []uint{8, 13}, ids)
	assert.EqualValues(t, 5, list.Total)
	assert.Equal(t, 3, list.TotalPages)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/actors/online", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "nope"})
	h.ListOnline(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnected(t *testing.T) {
	h := NewDirectoryHandler(stubCurrent{}, &stubPresence{}, stubConns{5}, logger.NewNop())

	for id, want := range map[string]string{"5": `"connected":true`, "6": `"connected":false`} {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/actors/"+id+"/connected", nil)
		testutil.SetURLParam(c, "id", id)
		h.Connected(c)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), want)
	}
}
