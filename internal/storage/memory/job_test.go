package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/storage/storetest"
)

func TestJobStore(t *testing.T) {
	storetest.Run(t, func(*testing.T) job.Store { return NewJobStore() })
}

func TestJobStoreTieBreaksOnID(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewJobStore().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Insert(ctx, uuid.New(), domain.JobFields{Title: "t", JobType: domain.JobTypeFullTime})
		require.NoError(t, err)
	}

	first, err := store.List(ctx)
	require.NoError(t, err)
	second, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestJobStoreConcurrentInserts(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	owner := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Insert(ctx, owner, domain.JobFields{Title: "t", JobType: domain.JobTypeFullTime})
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	jobs, err := store.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, jobs, 50)
}
