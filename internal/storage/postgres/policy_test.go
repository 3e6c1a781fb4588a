package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// policyRole is a NOLOGIN role without BYPASSRLS, so the policies apply even when
// the test connects as a superuser.
const policyRole = "jobs_policy_check"

func ensurePolicyRole(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = '`+policyRole+`') THEN
        CREATE ROLE `+policyRole+` NOLOGIN;
    END IF;
END
$$`)
	if err != nil {
		t.Skipf("cannot create %s role: %v", policyRole, err)
	}
	if _, err = pool.Exec(ctx, `GRANT `+policyRole+` TO CURRENT_USER`); err != nil {
		t.Skipf("cannot join %s role: %v", policyRole, err)
	}
	_, err = pool.Exec(ctx, `GRANT SELECT, INSERT, UPDATE, DELETE ON jobs TO `+policyRole)
	require.NoError(t, err)
}

// asRole runs fn inside a rolled back transaction as policyRole acting for user.
func asRole(t *testing.T, pool *pgxpool.Pool, user string, fn func(tx pgx.Tx) error) error {
	t.Helper()

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `SET LOCAL ROLE `+policyRole)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `SELECT set_config('app.current_user', $1, true)`, user)
	require.NoError(t, err)

	return fn(tx)
}

func seedJob(t *testing.T, repo *JobRepository, owner domain.UserID) domain.Job {
	t.Helper()

	j, err := repo.Insert(context.Background(), owner, domain.JobFields{
		Title:       "Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Description: "Build things",
		JobType:     domain.JobTypeFullTime,
	})
	require.NoError(t, err)
	return j
}

func TestPoliciesHideForeignRowsFromMutations(t *testing.T) {
	repo, pool := testRepository(t)
	ensurePolicyRole(t, pool)

	owner := uuid.New()
	stranger := uuid.New()
	seeded := seedJob(t, repo, owner)
	ctx := context.Background()

	for _, user := range []string{stranger.String(), ""} {
		err := asRole(t, pool, user, func(tx pgx.Tx) error {
			var visible int
			require.NoError(t, tx.QueryRow(ctx, `SELECT count(*) FROM jobs`).Scan(&visible))
			assert.Equal(t, 1, visible)

			tag, err := tx.Exec(ctx, `UPDATE jobs SET title = 'Hijacked'`)
			require.NoError(t, err)
			assert.Zero(t, tag.RowsAffected())

			tag, err = tx.Exec(ctx, `DELETE FROM jobs`)
			require.NoError(t, err)
			assert.Zero(t, tag.RowsAffected())
			return nil
		})
		require.NoError(t, err)
	}

	stored, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", stored.Title)
}

func TestPoliciesRejectInsertForAnotherOwner(t *testing.T) {
	_, pool := testRepository(t)
	ensurePolicyRole(t, pool)

	owner := uuid.New()
	ctx := context.Background()

	err := asRole(t, pool, uuid.NewString(), func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO jobs (owner_id, title, company, location, description, job_type)
			VALUES ($1, 'Engineer', 'Acme', 'Remote', 'Build things', 'Full-Time')`, owner)
		return err
	})

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "expected a postgres error, got %v", err)
	assert.Equal(t, "42501", pgErr.Code)
}

func TestTouchTriggerKeepsIdentityColumns(t *testing.T) {
	repo, pool := testRepository(t)
	ensurePolicyRole(t, pool)

	owner := uuid.New()
	seeded := seedJob(t, repo, owner)
	ctx := context.Background()

	err := asRole(t, pool, owner.String(), func(tx pgx.Tx) error {
		var (
			gotOwner  uuid.UUID
			title     string
			createdAt time.Time
			updatedAt time.Time
		)
		err := tx.QueryRow(ctx, `UPDATE jobs
			SET owner_id = $2, created_at = '2000-01-01T00:00:00Z', updated_at = '2000-01-01T00:00:00Z', title = 'Renamed'
			WHERE id = $1
			RETURNING owner_id, title, created_at, updated_at`, seeded.ID, uuid.New()).
			Scan(&gotOwner, &title, &createdAt, &updatedAt)
		require.NoError(t, err)

		assert.Equal(t, owner, gotOwner)
		assert.Equal(t, "Renamed", title)
		assert.True(t, createdAt.Equal(seeded.CreatedAt), "created_at changed to %v", createdAt)
		assert.False(t, updatedAt.Before(seeded.UpdatedAt), "updated_at moved back to %v", updatedAt)
		return nil
	})
	require.NoError(t, err)
}
