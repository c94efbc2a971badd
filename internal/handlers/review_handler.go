package handlers

import (
	"net/http"

	"github.com/anonto42/pegawe/backend/internal/metrics"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReviewHandler handles job ratings
type ReviewHandler struct {
	reviewRepository repositories.ReviewRepository
	metrics          *metrics.Metrics
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewRepo repositories.ReviewRepository, m *metrics.Metrics) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository: reviewRepo,
		metrics:          m,
	}
}

// RegisterReviewRoutes registers review routes. Reading reviews is public.
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group, requireUser echo.MiddlewareFunc) {
	g.POST("/reviews", h.SubmitReview, requireUser)
	g.GET("/reviews", h.GetReviews)
}

// SubmitReview creates the user's review of a job or replaces it.
// 201 means a new review, 200 an update.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	var req models.CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, created, err := h.reviewRepository.Submit(c.Request().Context(), req.JobID, userID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	h.metrics.ReviewSubmitted(created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, review)
}

// GetReviews returns a job's reviews with the average rating
func (h *ReviewHandler) GetReviews(c echo.Context) error {
	raw := c.QueryParam("jobId")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Job ID is required")
	}
	jobID, err := parseID(raw, "job ID")
	if err != nil {
		return err
	}
	summary, err := h.reviewRepository.ListForJob(c.Request().Context(), jobID)
	if err != nil {
		return err
	}
	summary.Reviews = nonNil(summary.Reviews)
	return c.JSON(http.StatusOK, summary)
}
