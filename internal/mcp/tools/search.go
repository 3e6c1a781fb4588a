package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	Search   string `json:"search,omitempty" jsonschema:"Case-insensitive text matched against title, company and description"`
	Location string `json:"location,omitempty" jsonschema:"Exact location, or all"`
	JobType  string `json:"job_type,omitempty" jsonschema:"Full-Time, Part-Time, Contract, or all"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of jobs to return, 0 for all"`
}

// JobSearchResult is the structured response of job_search
type JobSearchResult struct {
	Jobs   []domain.Job `json:"jobs"`
	Count  int          `json:"count"`
	Total  int          `json:"total"`
	Facets job.Facets   `json:"facets"`
}

// JobGetParams defines the arguments for the job_get tool
type JobGetParams struct {
	ID string `json:"id" jsonschema:"Job identifier"`
}

type jobSearchTool struct {
	jobs   job.Service
	logger *logging.Logger
}

// WithJobSearch registers the job_search tool over the public listing
func WithJobSearch(jobs job.Service) Option {
	return func(reg *registry) {
		handler := jobSearchTool{jobs: jobs, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "List public job postings newest first, narrowed by search text, location and job type",
		}, handler.handle)
		reg.add("job_search")
	}
}

func (t jobSearchTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &JobSearchParams{}
	}

	all, err := t.jobs.ListAll(ctx)
	if err != nil {
		t.logger.Error("job_search: listing failed", "err", err)
		return nil, nil, fmt.Errorf("job search failed: %w", err)
	}

	filters := job.Filters{Search: params.Search, Location: params.Location, JobType: params.JobType}
	filtered := job.Apply(all, filters)

	result := JobSearchResult{
		Jobs:   filtered,
		Count:  len(filtered),
		Total:  len(all),
		Facets: job.FacetsOf(all),
	}
	if params.Limit > 0 && len(result.Jobs) > params.Limit {
		result.Jobs = result.Jobs[:params.Limit]
	}

	t.logger.Info("job_search completed", "count", result.Count, "total", result.Total)
	return textResult(formatJobs(result)), result, nil
}

func formatJobs(result JobSearchResult) string {
	if result.Count == 0 {
		if result.Total == 0 {
			return "[job_search] No jobs available."
		}
		return fmt.Sprintf("[job_search] No jobs match your search criteria (0 of %d).", result.Total)
	}

	var b strings.Builder
	if shown := len(result.Jobs); shown < result.Count {
		fmt.Fprintf(&b, "[job_search] Showing first %d of %d matching jobs (%d total)\n", shown, result.Count, result.Total)
	} else {
		fmt.Fprintf(&b, "[job_search] Showing %d of %d jobs\n", result.Count, result.Total)
	}
	for _, j := range result.Jobs {
		fmt.Fprintf(&b, "\n- %s at %s (%s, %s) id=%s", j.Title, j.Company, j.Location, j.JobType, j.ID)
	}
	return b.String()
}

type jobGetTool struct {
	jobs   job.Service
	logger *logging.Logger
}

// WithJobGet registers the job_get tool
func WithJobGet(jobs job.Service) Option {
	return func(reg *registry) {
		handler := jobGetTool{jobs: jobs, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_get",
			Description: "Fetch a single job posting by id",
		}, handler.handle)
		reg.add("job_get")
	}
}

func (t jobGetTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *JobGetParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.ID == "" {
		return nil, nil, fmt.Errorf("id is required")
	}

	id, err := uuid.Parse(params.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid job id %q", params.ID)
	}

	j, found, err := t.jobs.GetByID(ctx, id)
	if err != nil {
		t.logger.Error("job_get: lookup failed", "job_id", id, "err", err)
		return nil, nil, fmt.Errorf("job lookup failed: %w", err)
	}
	if !found {
		return textResult(fmt.Sprintf("[job_get] Job %s does not exist", id)), nil, nil
	}

	msg := fmt.Sprintf("[job_get] %s at %s\nLocation: %s\nType: %s\n\n%s", j.Title, j.Company, j.Location, j.JobType, j.Description)
	return textResult(msg), j, nil
}
