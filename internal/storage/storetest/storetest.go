// Package storetest holds behaviour checks shared by every job.Store implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// Run exercises store. newStore must return an empty store for each call.
func Run(t *testing.T, newStore func(t *testing.T) job.Store) {
	t.Run("InsertAndFind", func(t *testing.T) { testInsertAndFind(t, newStore(t)) })
	t.Run("ListNewestFirst", func(t *testing.T) { testListNewestFirst(t, newStore(t)) })
	t.Run("ListByOwner", func(t *testing.T) { testListByOwner(t, newStore(t)) })
	t.Run("UpdateOwned", func(t *testing.T) { testUpdateOwned(t, newStore(t)) })
	t.Run("UpdateWrongOwner", func(t *testing.T) { testUpdateWrongOwner(t, newStore(t)) })
	t.Run("DeleteOwned", func(t *testing.T) { testDeleteOwned(t, newStore(t)) })
}

func sampleFields(title string) domain.JobFields {
	return domain.JobFields{
		Title:       title,
		Company:     "Acme",
		Location:    "NYC",
		Description: "Ship things",
		JobType:     domain.JobTypeFullTime,
	}
}

func testInsertAndFind(t *testing.T, store job.Store) {
	ctx := context.Background()
	owner := uuid.New()

	created, err := store.Insert(ctx, owner, sampleFields("Engineer"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, owner, created.OwnerID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Engineer", got.Title)
	assert.Equal(t, domain.JobTypeFullTime, got.JobType)

	_, err = store.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func testListNewestFirst(t *testing.T, store job.Store) {
	ctx := context.Background()
	owner := uuid.New()

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.Insert(ctx, owner, sampleFields(title))
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "c", jobs[0].Title)
	assert.Equal(t, "a", jobs[2].Title)
	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i-1].CreatedAt.Before(jobs[i].CreatedAt))
	}
}

func testListByOwner(t *testing.T, store job.Store) {
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_, err := store.Insert(ctx, alice, sampleFields("alice"))
	require.NoError(t, err)
	_, err = store.Insert(ctx, bob, sampleFields("bob"))
	require.NoError(t, err)

	jobs, err := store.ListByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "alice", jobs[0].Title)

	none, err := store.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testUpdateOwned(t *testing.T, store job.Store) {
	ctx := context.Background()
	owner := uuid.New()

	created, err := store.Insert(ctx, owner, sampleFields("Engineer"))
	require.NoError(t, err)

	title := "Staff Engineer"
	contract := domain.JobTypeContract
	updated, err := store.UpdateOwned(ctx, created.ID, owner, domain.JobPatch{Title: &title, JobType: &contract})
	require.NoError(t, err)

	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, domain.JobTypeContract, updated.JobType)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, created.OwnerID, updated.OwnerID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	got, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.Title)
}

func testUpdateWrongOwner(t *testing.T, store job.Store) {
	ctx := context.Background()
	owner := uuid.New()

	created, err := store.Insert(ctx, owner, sampleFields("Engineer"))
	require.NoError(t, err)

	title := "X"
	_, err = store.UpdateOwned(ctx, created.ID, uuid.New(), domain.JobPatch{Title: &title})
	assert.ErrorIs(t, err, job.ErrNotFound)

	_, err = store.UpdateOwned(ctx, uuid.New(), owner, domain.JobPatch{Title: &title})
	assert.ErrorIs(t, err, job.ErrNotFound)

	got, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Title)
}

func testDeleteOwned(t *testing.T, store job.Store) {
	ctx := context.Background()
	owner := uuid.New()

	created, err := store.Insert(ctx, owner, sampleFields("Engineer"))
	require.NoError(t, err)

	deleted, err := store.DeleteOwned(ctx, created.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = store.DeleteOwned(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteOwned(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, job.ErrNotFound)
}
