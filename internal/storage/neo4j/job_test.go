package neo4j

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/storage/storetest"
	pkgneo4j "github.com/honeycarbs/jobboard/pkg/neo4j"
)

func TestJobRepositoryIntegration(t *testing.T) {
	uri := os.Getenv("TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("TEST_NEO4J_URI not set")
	}

	ctx := context.Background()
	client, err := pkgneo4j.NewClient(ctx, pkgneo4j.Config{
		URI:      uri,
		Username: os.Getenv("TEST_NEO4J_USERNAME"),
		Password: os.Getenv("TEST_NEO4J_PASSWORD"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(ctx) })

	repo := NewJobRepository(client)
	require.NoError(t, repo.EnsureSchema(ctx))

	storetest.Run(t, func(t *testing.T) job.Store {
		require.NoError(t, client.Exec(ctx, "MATCH (n) WHERE n:Job OR n:User DETACH DELETE n"))
		return repo
	})
}
