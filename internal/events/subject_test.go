package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/jobboard/internal/domain/job"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "jobs.job.created", Subject("jobs", job.EventCreated))
	assert.Equal(t, "job.deleted", Subject("", job.EventDeleted))
}
