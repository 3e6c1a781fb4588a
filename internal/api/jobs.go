package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// JobHandler serves the job listing and CRUD endpoints
type JobHandler struct {
	jobs   job.Service
	logger *logging.Logger
}

// NewJobHandler creates a JobHandler
func NewJobHandler(jobs job.Service, logger *logging.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

// ListResponse is a filtered listing plus the facet choices of the full listing
type ListResponse struct {
	Jobs    []domain.Job `json:"jobs"`
	Count   int          `json:"count"`
	Total   int          `json:"total"`
	Filters job.Filters  `json:"filters"`
	Facets  job.Facets   `json:"facets"`
}

func newListResponse(all []domain.Job, filters job.Filters) ListResponse {
	filtered := job.Apply(all, filters)
	return ListResponse{
		Jobs:    filtered,
		Count:   len(filtered),
		Total:   len(all),
		Filters: filters.Normalized(),
		Facets:  job.FacetsOf(all),
	}
}

// ListJobs handles GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filters job.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filters", "details": err.Error()})
		return
	}

	jobs, err := h.jobs.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(jobs, filters))
}

// ListMyJobs handles GET /api/v1/me/jobs
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	var filters job.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filters", "details": err.Error()})
		return
	}

	jobs, err := h.jobs.ListMine(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(jobs, filters))
}

// GetJob handles GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	j, found, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found", "code": "NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": j})
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req domain.JobFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	j, err := h.jobs.Create(c.Request.Context(), sessionFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job": j})
}

// UpdateJob handles PATCH /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	var req domain.JobPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	j, err := h.jobs.Update(c.Request.Context(), sessionFrom(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": j})
}

// DeleteJob handles DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), sessionFrom(c), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseJobID(c *gin.Context) (domain.JobID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id", "code": "INVALID_ID"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *JobHandler) fail(c *gin.Context, err error) {
	var verrs job.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": verrs,
		})
	case errors.Is(err, job.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated", "code": "UNAUTHENTICATED"})
	case errors.Is(err, job.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found", "code": "NOT_FOUND"})
	default:
		h.logger.Error("job request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process job request", "code": "STORE_ERROR"})
	}
}
