package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/topic"
)

// partnerCountLimit bounds the concurrent unread counts per request.
const partnerCountLimit = 4

type ChatPartnersUseCase struct {
	conversations topic.ConversationRepository
	reads         readtracker.Repository
	actors        common.ActorFinder
}

func NewChatPartnersUseCase(
	conversations topic.ConversationRepository,
	reads readtracker.Repository,
	actors common.ActorFinder,
) *ChatPartnersUseCase {
	return &ChatPartnersUseCase{conversations: conversations, reads: reads, actors: actors}
}

// Partners returns my distinct chat counterparts, each with the number of
// their messages to me I have not read.
func (uc *ChatPartnersUseCase) Partners(ctx context.Context, caller common.Caller) ([]*dto.PartnerDTO, error) {
	if err := requireActor(caller); err != nil {
		return nil, err
	}
	ids, err := uc.conversations.Partners(ctx, caller.ActorID)
	if err != nil {
		return nil, err
	}
	actors, err := uc.actors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PartnerDTO, len(actors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(partnerCountLimit)
	for i, a := range actors {
		g.Go(func() error {
			unread, err := uc.reads.CountUnreadFromPartner(gctx, caller.ActorID, a.ID())
			if err != nil {
				return err
			}
			result[i] = dto.ToPartnerDTO(a, unread)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Unread counts every conversation addressed to me that I have not read.
func (uc *ChatPartnersUseCase) Unread(ctx context.Context, caller common.Caller) (int64, error) {
	if err := requireActor(caller); err != nil {
		return 0, err
	}
	return uc.reads.CountUnreadAddressedTo(ctx, caller.ActorID)
}
