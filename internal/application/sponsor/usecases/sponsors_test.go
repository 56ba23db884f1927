package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type actorFinder map[uint]*directory.Actor

func (f actorFinder) GetByID(ctx context.Context, id uint) (*directory.Actor, error) {
	return f[id], nil
}

func (f actorFinder) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Actor, error) {
	out := make([]*directory.Actor, 0, len(ids))
	for _, id := range ids {
		if a, ok := f[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func agent(id uint, entityID *uint, accessEntity ...uint) *directory.Actor {
	a, err := directory.ReconstructActor(id, directory.ActorParams{
		Username:     fmt.Sprintf("agent%d", id),
		Role:         directory.RoleTeamMember,
		UserType:     directory.UserTypeProd,
		EntityID:     entityID,
		AccessEntity: accessEntity,
	}, directory.ActivityOnline, "active", true, "", time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return a
}

func uintPtr(v uint) *uint { return &v }

type stubSponsors struct {
	sponsor.Repository
	byID      map[uint]*sponsor.Sponsor
	filter    []uint
	filtered  bool
	createErr error
}

func (s *stubSponsors) GetByID(ctx context.Context, id uint) (*sponsor.Sponsor, error) {
	return s.byID[id], nil
}

func (s *stubSponsors) ListActiveByEntities(ctx context.Context, entityIDs []uint) ([]*sponsor.Sponsor, error) {
	s.filter, s.filtered = entityIDs, true
	return []*sponsor.Sponsor{}, nil
}

func (s *stubSponsors) Create(ctx context.Context, sp *sponsor.Sponsor) error {
	if s.createErr != nil {
		return s.createErr
	}
	return sp.SetID(1)
}

func login() sponsor.Login {
	return sponsor.Login{LoginLink: "https://p/login", LoginSelector: "#u", PasswordSelector: "#p", SubmitSelector: "#s", Password: "pw"}
}

func newUseCase(repo *stubSponsors, actors ...*directory.Actor) *SponsorUseCase {
	finder := actorFinder{}
	for _, a := range actors {
		finder[a.ID()] = a
	}
	return NewSponsorUseCase(repo, common.NewScopeResolver(finder), logger.NewNop())
}

func TestSponsorUseCase_LoginRequiresGrantedEntity(t *testing.T) {
	north := sponsor.ReconstructSponsor(7, "north", login(), []uint{1}, sponsor.StatusActive, time.Now(), time.Now())
	retired := sponsor.ReconstructSponsor(8, "retired", login(), []uint{1}, sponsor.StatusInactive, time.Now(), time.Now())
	repo := &stubSponsors{byID: map[uint]*sponsor.Sponsor{7: north, 8: retired}}
	uc := newUseCase(repo, agent(1, uintPtr(1)), agent(2, uintPtr(2)), agent(3, uintPtr(2), 1))
	ctx := context.Background()

	got, err := uc.Login(ctx, common.Caller{ActorID: 1}, 7)
	require.NoError(t, err)
	assert.Equal(t, "pw", got.Password)

	_, err = uc.Login(ctx, common.Caller{ActorID: 2}, 7)
	assert.True(t, errors.IsNotFoundError(err))

	// access_entity grants entity 1 to an actor of entity 2
	_, err = uc.Login(ctx, common.Caller{ActorID: 3}, 7)
	assert.NoError(t, err)

	_, err = uc.Login(ctx, common.Caller{ActorID: 1}, 8)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSponsorUseCase_ListForCallerFiltersByGrantedEntities(t *testing.T) {
	ctx := context.Background()

	repo := &stubSponsors{}
	uc := newUseCase(repo, agent(1, uintPtr(2), 4, 5), agent(2, nil))
	_, err := uc.ListForCaller(ctx, common.Caller{ActorID: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 5}, repo.filter)

	repo.filtered = false
	list, err := uc.ListForCaller(ctx, common.Caller{ActorID: 2})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.False(t, repo.filtered)

	_, err = uc.ListForCaller(ctx, common.Caller{ActorID: 99, Admin: true})
	require.NoError(t, err)
	assert.True(t, repo.filtered)
	assert.Nil(t, repo.filter)
}

func TestSponsorUseCase_CreateMapsDuplicateToConflict(t *testing.T) {
	repo := &stubSponsors{createErr: fmt.Errorf("failed to create sponsor: %w", fmt.Errorf("UNIQUE constraint failed: sponsors.name"))}
	uc := newUseCase(repo)

	_, err := uc.Create(context.Background(), SponsorCommand{Name: "acme", Login: login()})
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)

	_, err = uc.Create(context.Background(), SponsorCommand{Name: "", Login: login()})
	assert.True(t, errors.IsValidationError(err))
}

func TestSponsorUseCase_SetStatusValidates(t *testing.T) {
	uc := newUseCase(&stubSponsors{})
	_, err := uc.SetStatus(context.Background(), BulkStatusCommand{IDs: []uint{1}, Status: "gone"})
	assert.True(t, errors.IsValidationError(err))
	_, err = uc.SetStatus(context.Background(), BulkStatusCommand{Status: "active"})
	assert.True(t, errors.IsValidationError(err))
}
