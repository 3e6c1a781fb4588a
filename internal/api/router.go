package api

import (
	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobboard/internal/auth"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// RouterConfig tunes the HTTP API
type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the gin engine serving /api/v1
func NewRouter(jobs job.Service, authn *auth.Authenticator, logger *logging.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	h := NewJobHandler(jobs, logger)
	requireSession := RequireSession(authn, logger)

	v1 := r.Group("/api/v1")
	v1.GET("/jobs", h.ListJobs)
	v1.GET("/jobs/:id", h.GetJob)

	owned := v1.Group("", requireSession)
	owned.GET("/me/jobs", h.ListMyJobs)

	mutating := owned.Group("")
	if cfg.RateLimitRPS > 0 {
		mutating.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	mutating.POST("/jobs", h.CreateJob)
	mutating.PATCH("/jobs/:id", h.UpdateJob)
	mutating.DELETE("/jobs/:id", h.DeleteJob)

	return r
}
