package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// NATSPublisher publishes job events on <prefix>.<event type>, e.g. jobs.job.created
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

var _ job.Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to url
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("jobboard"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, prefix: prefix}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, evt job.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.nc.Publish(Subject(p.prefix, evt.Type), body)
}

func (p *NATSPublisher) Close(_ context.Context) error {
	return p.nc.Drain()
}
