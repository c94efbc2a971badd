package handlers

import (
	"fmt"
	"net/http"

	"github.com/anonto42/pegawe/backend/internal/metrics"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// JobHandler handles HTTP requests related to job postings
type JobHandler struct {
	jobRepository repositories.JobRepository
	metrics       *metrics.Metrics
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobRepo repositories.JobRepository, m *metrics.Metrics) *JobHandler {
	return &JobHandler{
		jobRepository: jobRepo,
		metrics:       m,
	}
}

// RegisterJobRoutes registers the public listing and the admin-only mutations
func (h *JobHandler) RegisterJobRoutes(g *echo.Group, requireAdmin echo.MiddlewareFunc) {
	g.GET("/jobs", h.ListJobs)
	g.GET("/jobs/:id", h.GetJob)
	g.POST("/jobs", h.CreateJob, requireAdmin)
	g.PUT("/jobs/:id", h.UpdateJob, requireAdmin)
	g.DELETE("/jobs/:id", h.DeleteJob, requireAdmin)

	g.GET("/admin/jobs", h.ListAllJobs, requireAdmin)
	g.POST("/admin/jobs/bulk-update", h.BulkUpdateJobs, requireAdmin)
}

// ListJobs returns active jobs narrowed by the category, type, search and
// location query parameters
func (h *JobHandler) ListJobs(c echo.Context) error {
	var filter models.JobFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	jobs, err := h.jobRepository.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(jobs))
}

// GetJob retrieves a job by ID
func (h *JobHandler) GetJob(c echo.Context) error {
	id, err := parseID(c.Param("id"), "job ID")
	if err != nil {
		return err
	}
	job, err := h.jobRepository.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// CreateJob posts a new job
func (h *JobHandler) CreateJob(c echo.Context) error {
	var req models.CreateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	job := req.ToJob()
	if err := h.jobRepository.Create(c.Request().Context(), job); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// UpdateJob applies a partial update
func (h *JobHandler) UpdateJob(c echo.Context) error {
	id, err := parseID(c.Param("id"), "job ID")
	if err != nil {
		return err
	}
	var patch models.JobPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}
	job, err := h.jobRepository.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// DeleteJob removes a job and everything attached to it
func (h *JobHandler) DeleteJob(c echo.Context) error {
	id, err := parseID(c.Param("id"), "job ID")
	if err != nil {
		return err
	}
	if err := h.jobRepository.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Job deleted successfully"})
}

// ListAllJobs returns every job for the back office, inactive ones included
func (h *JobHandler) ListAllJobs(c echo.Context) error {
	jobs, err := h.jobRepository.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(jobs))
}

// BulkUpdateJobs patches every job the selector matches. Explicit jobIds
// take precedence over the filter fields.
func (h *JobHandler) BulkUpdateJobs(c echo.Context) error {
	var req models.BulkUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.jobRepository.BulkUpdate(c.Request().Context(), req.Selector(), req.Patch())
	if err != nil {
		return err
	}
	h.metrics.JobsBulkUpdated(updated)

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"updatedCount": updated,
		"message":      fmt.Sprintf("Successfully updated %d jobs", updated),
	})
}

// nonNil keeps empty lists encoded as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
