package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

var _ job.Store = (*JobStore)(nil)

// JobStore keeps jobs in process memory. Used for local development and tests.
type JobStore struct {
	mu    sync.RWMutex
	jobs  map[domain.JobID]domain.Job
	clock func() time.Time
}

// NewJobStore creates an empty store
func NewJobStore() *JobStore {
	return &JobStore{
		jobs:  make(map[domain.JobID]domain.Job),
		clock: time.Now,
	}
}

// WithClock replaces the timestamp source
func (s *JobStore) WithClock(clock func() time.Time) *JobStore {
	s.clock = clock
	return s
}

func (s *JobStore) List(_ context.Context) ([]domain.Job, error) {
	return s.collect(func(domain.Job) bool { return true }), nil
}

func (s *JobStore) ListByOwner(_ context.Context, owner domain.UserID) ([]domain.Job, error) {
	return s.collect(func(j domain.Job) bool { return j.OwnerID == owner }), nil
}

func (s *JobStore) FindByID(_ context.Context, id domain.JobID) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (s *JobStore) Insert(_ context.Context, owner domain.UserID, fields domain.JobFields) (domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock().UTC()
	j := domain.Job{
		ID:          uuid.New(),
		OwnerID:     owner,
		Title:       fields.Title,
		Company:     fields.Company,
		Location:    fields.Location,
		Description: fields.Description,
		JobType:     fields.JobType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.jobs[j.ID] = j
	return j, nil
}

func (s *JobStore) UpdateOwned(_ context.Context, id domain.JobID, owner domain.UserID, patch domain.JobPatch) (domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok || j.OwnerID != owner {
		return domain.Job{}, job.ErrNotFound
	}

	j = patch.Apply(j)
	j.UpdatedAt = s.clock().UTC()
	s.jobs[id] = j
	return j, nil
}

func (s *JobStore) DeleteOwned(_ context.Context, id domain.JobID, owner domain.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok || j.OwnerID != owner {
		return false, nil
	}
	delete(s.jobs, id)
	return true, nil
}

// collect returns matching jobs newest first
func (s *JobStore) collect(match func(domain.Job) bool) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if match(j) {
			out = append(out, j)
		}
	}

	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID.String() < out[b].ID.String()
	})
	return out
}
