package job

import (
	"context"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// EventType names a job lifecycle change
type EventType string

const (
	EventCreated EventType = "job.created"
	EventUpdated EventType = "job.updated"
	EventDeleted EventType = "job.deleted"
)

// Event is emitted after a successful mutation. Job is empty for deletions.
type Event struct {
	Type       EventType     `json:"type"`
	JobID      domain.JobID  `json:"job_id"`
	OwnerID    domain.UserID `json:"owner_id"`
	Job        *domain.Job   `json:"job,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// Publisher delivers lifecycle events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
