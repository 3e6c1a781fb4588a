package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/jobboard/pkg/neo4j"
)

// Ensure JobRepository implements job.Store
var _ job.Store = (*JobRepository)(nil)

// JobRepository implements job.Store with Neo4j. Ownership is the
// (:User)-[:POSTED]->(:Job) relationship; mutations only match through it.
type JobRepository struct {
	client *pkgneo4j.Client
	clock  func() time.Time
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
		clock:  time.Now,
	}
}

// EnsureSchema creates the uniqueness constraint and owner index
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	err := r.client.Exec(ctx,
		`CREATE CONSTRAINT job_id_unique IF NOT EXISTS FOR (j:Job) REQUIRE j.id IS UNIQUE`,
		`CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
		`CREATE INDEX job_created_at IF NOT EXISTS FOR (j:Job) ON (j.createdAt)`,
	)
	if err != nil {
		return fmt.Errorf("failed to apply neo4j schema: %w", err)
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context) ([]domain.Job, error) {
	query := `
		MATCH (j:Job)
		RETURN j
		ORDER BY j.createdAt DESC, j.id
	`
	return r.readJobs(ctx, query, nil)
}

func (r *JobRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.Job, error) {
	query := `
		MATCH (:User {id: $owner})-[:POSTED]->(j:Job)
		RETURN j
		ORDER BY j.createdAt DESC, j.id
	`
	return r.readJobs(ctx, query, map[string]any{"owner": owner.String()})
}

func (r *JobRepository) FindByID(ctx context.Context, id domain.JobID) (domain.Job, error) {
	query := `
		MATCH (j:Job {id: $id})
		RETURN j
	`
	jobs, err := r.readJobs(ctx, query, map[string]any{"id": id.String()})
	if err != nil {
		return domain.Job{}, err
	}
	if len(jobs) == 0 {
		return domain.Job{}, job.ErrNotFound
	}
	return jobs[0], nil
}

func (r *JobRepository) Insert(ctx context.Context, owner domain.UserID, fields domain.JobFields) (domain.Job, error) {
	query := `
		MERGE (u:User {id: $owner})
		CREATE (u)-[:POSTED]->(j:Job {
			id: $id,
			ownerId: $owner,
			title: $title,
			company: $company,
			location: $location,
			description: $description,
			jobType: $jobType,
			createdAt: $now,
			updatedAt: $now
		})
		RETURN j
	`
	params := map[string]any{
		"id":          uuid.NewString(),
		"owner":       owner.String(),
		"title":       fields.Title,
		"company":     fields.Company,
		"location":    fields.Location,
		"description": fields.Description,
		"jobType":     string(fields.JobType),
		"now":         r.clock().UTC(),
	}

	jobs, err := r.writeJobs(ctx, query, params)
	if err != nil {
		return domain.Job{}, err
	}
	if len(jobs) == 0 {
		return domain.Job{}, fmt.Errorf("insert returned no job")
	}
	return jobs[0], nil
}

func (r *JobRepository) UpdateOwned(ctx context.Context, id domain.JobID, owner domain.UserID, patch domain.JobPatch) (domain.Job, error) {
	query := `
		MATCH (:User {id: $owner})-[:POSTED]->(j:Job {id: $id})
		SET j.title = coalesce($title, j.title),
		    j.company = coalesce($company, j.company),
		    j.location = coalesce($location, j.location),
		    j.description = coalesce($description, j.description),
		    j.jobType = coalesce($jobType, j.jobType),
		    j.updatedAt = $now
		RETURN j
	`
	params := map[string]any{
		"id":          id.String(),
		"owner":       owner.String(),
		"title":       optional(patch.Title),
		"company":     optional(patch.Company),
		"location":    optional(patch.Location),
		"description": optional(patch.Description),
		"jobType":     nil,
		"now":         r.clock().UTC(),
	}
	if patch.JobType != nil {
		params["jobType"] = string(*patch.JobType)
	}

	jobs, err := r.writeJobs(ctx, query, params)
	if err != nil {
		return domain.Job{}, err
	}
	if len(jobs) == 0 {
		return domain.Job{}, job.ErrNotFound
	}
	return jobs[0], nil
}

func (r *JobRepository) DeleteOwned(ctx context.Context, id domain.JobID, owner domain.UserID) (bool, error) {
	query := `
		MATCH (:User {id: $owner})-[:POSTED]->(j:Job {id: $id})
		DETACH DELETE j
	`

	deleted, err := pkgneo4j.Write(ctx, r.client, func(tx neo4j.ManagedTransaction) (int, error) {
		result, err := tx.Run(ctx, query, map[string]any{"id": id.String(), "owner": owner.String()})
		if err != nil {
			return 0, err
		}
		summary, err := result.Consume(ctx)
		if err != nil {
			return 0, err
		}
		return summary.Counters().NodesDeleted(), nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return deleted > 0, nil
}

func (r *JobRepository) readJobs(ctx context.Context, query string, params map[string]any) ([]domain.Job, error) {
	jobs, err := pkgneo4j.Read(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Job, error) {
		return collectJobs(ctx, tx, query, params)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) writeJobs(ctx context.Context, query string, params map[string]any) ([]domain.Job, error) {
	jobs, err := pkgneo4j.Write(ctx, r.client, func(tx neo4j.ManagedTransaction) ([]domain.Job, error) {
		return collectJobs(ctx, tx, query, params)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write job: %w", err)
	}
	return jobs, nil
}

func collectJobs(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]any) ([]domain.Job, error) {
	records, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, 0)
	for records.Next(ctx) {
		record := records.Record()

		jobVal, ok := record.Get("j")
		if !ok {
			continue
		}
		jobNode, ok := jobVal.(neo4j.Node)
		if !ok {
			continue
		}

		j, err := nodeToJob(jobNode)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	if err := records.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func nodeToJob(node neo4j.Node) (domain.Job, error) {
	props := node.Props

	id, err := uuid.Parse(stringProp(props, "id"))
	if err != nil {
		return domain.Job{}, fmt.Errorf("job node has invalid id: %w", err)
	}
	owner, err := uuid.Parse(stringProp(props, "ownerId"))
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s has invalid owner: %w", id, err)
	}

	return domain.Job{
		ID:          id,
		OwnerID:     owner,
		Title:       stringProp(props, "title"),
		Company:     stringProp(props, "company"),
		Location:    stringProp(props, "location"),
		Description: stringProp(props, "description"),
		JobType:     domain.JobType(stringProp(props, "jobType")),
		CreatedAt:   timeProp(props, "createdAt"),
		UpdatedAt:   timeProp(props, "updatedAt"),
	}, nil
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func timeProp(props map[string]any, key string) time.Time {
	switch v := props[key].(type) {
	case time.Time:
		return v.UTC()
	case neo4j.LocalDateTime:
		return v.Time()
	default:
		return time.Time{}
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
