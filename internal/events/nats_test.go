package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain/job"
)

func TestNATSPublisherIntegration(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL not set")
	}

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	t.Cleanup(sub.Close)

	msgs := make(chan *nats.Msg, 1)
	s, err := sub.ChanSubscribe("test-jobs.job.>", msgs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Unsubscribe() })
	require.NoError(t, sub.Flush())

	pub, err := NewNATSPublisher(url, "test-jobs")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close(context.Background()) })

	evt := job.Event{Type: job.EventDeleted, JobID: uuid.New(), OwnerID: uuid.New(), OccurredAt: time.Now().UTC()}
	require.NoError(t, pub.Publish(context.Background(), evt))

	select {
	case msg := <-msgs:
		assert.Equal(t, "test-jobs.job.deleted", msg.Subject)
		var got job.Event
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, evt.JobID, got.JobID)
		assert.Nil(t, got.Job)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}
