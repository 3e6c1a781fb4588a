package job

import (
	"context"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Store is the Record Store boundary. Every method is a single round trip.
type Store interface {
	// List returns every job, newest first
	List(ctx context.Context) ([]domain.Job, error)

	// ListByOwner returns the jobs created by owner, newest first
	ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.Job, error)

	// FindByID returns ErrNotFound when no row matches
	FindByID(ctx context.Context, id domain.JobID) (domain.Job, error)

	// Insert assigns id and timestamps and returns the persisted row
	Insert(ctx context.Context, owner domain.UserID, fields domain.JobFields) (domain.Job, error)

	// UpdateOwned updates the row matching both id and owner and returns it.
	// ErrNotFound when zero rows match.
	UpdateOwned(ctx context.Context, id domain.JobID, owner domain.UserID, patch domain.JobPatch) (domain.Job, error)

	// DeleteOwned deletes the row matching both id and owner and reports whether one was removed.
	// Zero rows is not an error.
	DeleteOwned(ctx context.Context, id domain.JobID, owner domain.UserID) (bool, error)
}
