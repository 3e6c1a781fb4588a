package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Service mediates every read and write of jobs, enforcing identity and ownership.
// Each method issues exactly one Store call and never retries.
type Service interface {
	ListAll(ctx context.Context) ([]domain.Job, error)
	ListMine(ctx context.Context, sess *domain.Session) ([]domain.Job, error)
	GetByID(ctx context.Context, id domain.JobID) (domain.Job, bool, error)
	Create(ctx context.Context, sess *domain.Session, fields domain.JobFields) (domain.Job, error)
	Update(ctx context.Context, sess *domain.Session, id domain.JobID, patch domain.JobPatch) (domain.Job, error)
	Delete(ctx context.Context, sess *domain.Session, id domain.JobID) error
}

// Option configures Service
type Option func(*config)

type config struct {
	store     Store
	publisher Publisher
	logger    *logging.Logger
	clock     func() time.Time
}

// WithStore sets the Record Store
func WithStore(store Store) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithPublisher sets the lifecycle event publisher
func WithPublisher(p Publisher) Option {
	return func(c *config) {
		c.publisher = p
	}
}

// WithLogger sets the logger used for best-effort failures
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock sets a custom clock for event timestamps
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		publisher: NopPublisher{},
		logger:    logging.NewNop(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.store == nil {
		return nil, fmt.Errorf("job.Service: store is required")
	}
	if cfg.publisher == nil {
		cfg.publisher = NopPublisher{}
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		store:     cfg.store,
		publisher: cfg.publisher,
		logger:    cfg.logger,
		clock:     cfg.clock,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(store Store, publisher Publisher, logger *logging.Logger) (Service, error) {
	return NewService(
		WithStore(store),
		WithPublisher(publisher),
		WithLogger(logger),
	)
}

type service struct {
	store     Store
	publisher Publisher
	logger    *logging.Logger
	clock     func() time.Time
}

func (s *service) ListAll(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.store.List(ctx)
	if err != nil {
		return nil, storeErr("list", err)
	}
	return jobs, nil
}

func (s *service) ListMine(ctx context.Context, sess *domain.Session) ([]domain.Job, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthenticated
	}

	jobs, err := s.store.ListByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, storeErr("list by owner", err)
	}
	return jobs, nil
}

func (s *service) GetByID(ctx context.Context, id domain.JobID) (domain.Job, bool, error) {
	j, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return domain.Job{}, false, nil
	}
	if err != nil {
		return domain.Job{}, false, storeErr("get", err)
	}
	return j, true, nil
}

func (s *service) Create(ctx context.Context, sess *domain.Session, fields domain.JobFields) (domain.Job, error) {
	if !sess.Authenticated() {
		return domain.Job{}, ErrUnauthenticated
	}

	fields, err := PrepareFields(fields)
	if err != nil {
		return domain.Job{}, err
	}

	j, err := s.store.Insert(ctx, sess.UserID, fields)
	if err != nil {
		return domain.Job{}, storeErr("insert", err)
	}

	s.publish(ctx, EventCreated, j.ID, sess.UserID, &j)
	return j, nil
}

func (s *service) Update(ctx context.Context, sess *domain.Session, id domain.JobID, patch domain.JobPatch) (domain.Job, error) {
	if !sess.Authenticated() {
		return domain.Job{}, ErrUnauthenticated
	}

	patch, err := PreparePatch(patch)
	if err != nil {
		return domain.Job{}, err
	}

	j, err := s.store.UpdateOwned(ctx, id, sess.UserID, patch)
	if err != nil {
		return domain.Job{}, storeErr("update", err)
	}

	s.publish(ctx, EventUpdated, j.ID, sess.UserID, &j)
	return j, nil
}

func (s *service) Delete(ctx context.Context, sess *domain.Session, id domain.JobID) error {
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}

	deleted, err := s.store.DeleteOwned(ctx, id, sess.UserID)
	if err != nil {
		return storeErr("delete", err)
	}

	if deleted {
		s.publish(ctx, EventDeleted, id, sess.UserID, nil)
	}
	return nil
}

// publish is best effort; a failed event never fails the mutation
func (s *service) publish(ctx context.Context, typ EventType, id domain.JobID, owner domain.UserID, j *domain.Job) {
	evt := Event{
		Type:       typ,
		JobID:      id,
		OwnerID:    owner,
		Job:        j,
		OccurredAt: s.clock().UTC(),
	}

	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("failed to publish job event", "type", typ, "job_id", id, "err", err)
	}
}
