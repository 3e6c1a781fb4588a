package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/storage/storetest"
	pkgpostgres "github.com/honeycarbs/jobboard/pkg/postgres"
)

// testRepository connects to TEST_DATABASE_URL, applies the schema and empties the table.
func testRepository(t *testing.T) (*JobRepository, *pgxpool.Pool) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pkgpostgres.NewPool(ctx, pkgpostgres.Config{URL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewJobRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	_, err = pool.Exec(ctx, "TRUNCATE jobs")
	require.NoError(t, err)
	return repo, pool
}

// Superusers bypass row-level security here; policy_test.go checks the policies under a restricted role.
func TestJobRepositoryIntegration(t *testing.T) {
	repo, pool := testRepository(t)

	storetest.Run(t, func(t *testing.T) job.Store {
		_, err := pool.Exec(context.Background(), "TRUNCATE jobs")
		require.NoError(t, err)
		return repo
	})
}
