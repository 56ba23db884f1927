package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/shared/errors"
)

var ticketFields = map[string]Field{
	"status":      {Column: "tickets.status", Kind: KindString},
	"target_team": {Column: "tickets.target_team_id", Kind: KindUint},
	"pinned":      {Column: "tickets.pinned", Kind: KindBool},
}

func TestParams_WireShape(t *testing.T) {
	body := `{"filter":{"status":"Open","target_team":{"id":3}},"pageNumber":2,"pageSize":5,
		"sortField":"updatedAt","sortOrder":"asc","access_entity":[1,2],"access_team":[4],
		"read":7,"typeUser":"SUPPORT","assigned_to":7}`

	var p Params
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, 2, p.Page())
	assert.Equal(t, 5, p.Size())
	assert.False(t, p.Descending())
	assert.Equal(t, []uint{1, 2}, p.AccessEntity)
	assert.Equal(t, uint(7), p.Read)
	assert.Equal(t, "SUPPORT", p.TypeUser)
	require.NotNil(t, p.AssignedTo)
	assert.Equal(t, uint(7), *p.AssignedTo)

	conds, err := p.Conditions(ticketFields)
	require.NoError(t, err)
	assert.Equal(t, []Condition{
		{Column: "tickets.status", Value: "Open"},
		{Column: "tickets.target_team_id", Value: uint(3)},
	}, conds)
}

func TestParams_Defaults(t *testing.T) {
	var p Params
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 10, p.Size())
	assert.True(t, p.Descending())
	assert.False(t, p.Paginated())

	p.PageSize = 10000
	assert.Equal(t, 100, p.Size())
}

func TestParams_ConditionsSkipsEmptyValues(t *testing.T) {
	p := Params{Filter: map[string]any{
		"status":      "",
		"target_team": float64(0),
		"pinned":      false,
		"unknown":     "x",
	}}

	conds, err := p.Conditions(ticketFields)
	require.NoError(t, err)
	assert.Empty(t, conds)
}

func TestParams_ConditionsRejectsBadValues(t *testing.T) {
	p := Params{Filter: map[string]any{"target_team": "abc"}}

	_, err := p.Conditions(ticketFields)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestParams_OrderBy(t *testing.T) {
	allowed := map[string]string{"updatedAt": "tickets.updated_at"}

	assert.Equal(t, "tickets.updated_at DESC", Params{SortField: "updatedAt"}.OrderBy(allowed, "x"))
	assert.Equal(t, "tickets.updated_at ASC", Params{SortField: "updatedAt", SortOrder: "ASC"}.OrderBy(allowed, "x"))
	assert.Equal(t, "fallback", Params{SortField: "password; drop"}.OrderBy(allowed, "fallback"))
}

func TestParams_ConditionsInLists(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(`{"filter":{"target_team":["In",[1,2]],"status":["Open","Closed"]}}`), &p))

	conds, err := p.Conditions(ticketFields)
	require.NoError(t, err)
	assert.Equal(t, []Condition{
		{Column: "tickets.status", Value: []any{"Open", "Closed"}, In: true},
		{Column: "tickets.target_team_id", Value: []any{uint(1), uint(2)}, In: true},
	}, conds)

	p = Params{Filter: map[string]any{"target_team": []any{}}}
	conds, err = p.Conditions(ticketFields)
	require.NoError(t, err)
	assert.Empty(t, conds)
}
