package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/shared/logger"
)

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.runs.Add(1)
	return 1, nil
}

func TestSchedulerManager_ArchiveJobRunsImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, m.RegisterArchiveJob(job, time.Hour))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "ticket-archive", m.Jobs()[0].Name())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return job.runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, m.IsStarted())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.False(t, m.IsStarted())
}
