package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

func TestStopRunsEveryTargetInOrder(t *testing.T) {
	var order []string
	boom := errors.New("boom")

	err := Stop(time.Second, logging.NewNop(),
		Func(func(context.Context) error {
			order = append(order, "http")
			return boom
		}),
		nil,
		Func(func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			order = append(order, "store")
			return nil
		}),
	)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"http", "store"}, order)
}

func TestStopWithoutTargets(t *testing.T) {
	assert.NoError(t, Stop(time.Second, logging.NewNop()))
}
