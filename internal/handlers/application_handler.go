package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/pegawe/backend/internal/metrics"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ApplicationHandler handles job applications for seekers and the back office
type ApplicationHandler struct {
	applicationRepository repositories.ApplicationRepository
	metrics               *metrics.Metrics
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(appRepo repositories.ApplicationRepository, m *metrics.Metrics) *ApplicationHandler {
	return &ApplicationHandler{
		applicationRepository: appRepo,
		metrics:               m,
	}
}

// RegisterApplicationRoutes registers application routes
func (h *ApplicationHandler) RegisterApplicationRoutes(g *echo.Group, requireUser, requireAdmin echo.MiddlewareFunc) {
	g.POST("/applications", h.SubmitApplication, requireUser)
	g.GET("/applications", h.ListMyApplications, requireUser)

	g.GET("/admin/applications", h.ListAllApplications, requireAdmin)
	g.PUT("/admin/applications/:id/status", h.UpdateApplicationStatus, requireAdmin)
}

// SubmitApplication applies the signed-in user to a job
func (h *ApplicationHandler) SubmitApplication(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	var req models.CreateApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app := &models.Application{
		JobID:       req.JobID,
		UserID:      userID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	}
	if err := h.applicationRepository.Submit(c.Request().Context(), app); err != nil {
		if errors.Is(err, repositories.ErrDuplicateApplication) {
			h.metrics.DuplicateApplication()
		}
		return err
	}
	h.metrics.ApplicationSubmitted()

	return c.JSON(http.StatusCreated, app)
}

// ListMyApplications returns the signed-in user's applications with their jobs
func (h *ApplicationHandler) ListMyApplications(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	apps, err := h.applicationRepository.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(apps))
}

// ListAllApplications returns every application with job and applicant
func (h *ApplicationHandler) ListAllApplications(c echo.Context) error {
	apps, err := h.applicationRepository.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(apps))
}

// UpdateApplicationStatus moves an application to another status
func (h *ApplicationHandler) UpdateApplicationStatus(c echo.Context) error {
	id, err := parseID(c.Param("id"), "application ID")
	if err != nil {
		return err
	}
	var req models.UpdateApplicationStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	app, err := h.applicationRepository.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}
