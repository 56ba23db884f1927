package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/shared/logger"
)

func TestArchiveStaleTicketsUseCase_CutoffIsTwoMonthsBack(t *testing.T) {
	var got time.Time
	repo := &mockTicketRepository{
		ArchiveStaleFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			got = cutoff
			return 3, nil
		},
	}
	uc := NewArchiveStaleTicketsUseCase(repo, 0, logger.NewNop())
	uc.now = func() time.Time { return time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC) }

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	// AddDate normalizes 30 February to 2 March
	assert.Equal(t, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), got)
}

func TestArchiveStaleTicketsUseCase_PropagatesErrors(t *testing.T) {
	repo := &mockTicketRepository{
		ArchiveStaleFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, fmt.Errorf("db gone")
		},
	}
	uc := NewArchiveStaleTicketsUseCase(repo, 6, logger.NewNop())

	n, err := uc.Execute(context.Background())
	assert.Error(t, err)
	assert.Zero(t, n)
}
