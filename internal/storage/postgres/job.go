package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

//go:embed schema.sql
var schema string

const jobColumns = `id, owner_id, title, company, location, description, job_type, created_at, updated_at`

// Ensure JobRepository implements job.Store
var _ job.Store = (*JobRepository)(nil)

// JobRepository implements job.Store with PostgreSQL. Mutations run with
// app.current_user set so the row-level security policies see the caller.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a JobRepository with a pgx pool
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// EnsureSchema creates the jobs table, trigger and policies if missing
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply jobs schema: %w", err)
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs by owner: %w", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) FindByID(ctx context.Context, id domain.JobID) (domain.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Job{}, job.ErrNotFound
	}
	if err != nil {
		return domain.Job{}, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) Insert(ctx context.Context, owner domain.UserID, fields domain.JobFields) (domain.Job, error) {
	query := `INSERT INTO jobs (owner_id, title, company, location, description, job_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + jobColumns

	var j domain.Job
	err := r.asOwner(ctx, owner, func(br pgx.BatchResults) error {
		var err error
		j, err = scanJob(br.QueryRow())
		return err
	}, query, owner, fields.Title, fields.Company, fields.Location, fields.Description, string(fields.JobType))
	if err != nil {
		return domain.Job{}, fmt.Errorf("failed to insert job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) UpdateOwned(ctx context.Context, id domain.JobID, owner domain.UserID, patch domain.JobPatch) (domain.Job, error) {
	query := `UPDATE jobs
		SET title = COALESCE($3, title),
		    company = COALESCE($4, company),
		    location = COALESCE($5, location),
		    description = COALESCE($6, description),
		    job_type = COALESCE($7, job_type)
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + jobColumns

	var jobType *string
	if patch.JobType != nil {
		v := string(*patch.JobType)
		jobType = &v
	}

	var j domain.Job
	err := r.asOwner(ctx, owner, func(br pgx.BatchResults) error {
		var err error
		j, err = scanJob(br.QueryRow())
		return err
	}, query, id, owner, patch.Title, patch.Company, patch.Location, patch.Description, jobType)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Job{}, job.ErrNotFound
	}
	if err != nil {
		return domain.Job{}, fmt.Errorf("failed to update job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) DeleteOwned(ctx context.Context, id domain.JobID, owner domain.UserID) (bool, error) {
	var affected int64
	err := r.asOwner(ctx, owner, func(br pgx.BatchResults) error {
		tag, err := br.Exec()
		affected = tag.RowsAffected()
		return err
	}, `DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return affected > 0, nil
}

// asOwner pipelines set_config and the statement in one batch. The batch runs in an
// implicit transaction, so the setting is local to this statement.
func (r *JobRepository) asOwner(ctx context.Context, owner domain.UserID, read func(pgx.BatchResults) error, query string, args ...any) error {
	batch := &pgx.Batch{}
	batch.Queue(`SELECT set_config('app.current_user', $1, true)`, owner.String())
	batch.Queue(query, args...)

	br := r.pool.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()

	if _, err := br.Exec(); err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	if err := read(br); err != nil {
		return err
	}
	return br.Close()
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var (
		j       domain.Job
		jobType string
	)
	err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Company, &j.Location, &j.Description,
		&jobType, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return domain.Job{}, err
	}
	j.JobType = domain.JobType(jobType)
	return j, nil
}
