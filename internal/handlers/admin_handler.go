package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/pegawe/backend/internal/export"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the back office dashboard, exports and broadcasts
type AdminHandler struct {
	jobRepository          repositories.JobRepository
	applicationRepository  repositories.ApplicationRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	statsRepository        repositories.StatsRepository
	logger                 *slog.Logger
	now                    func() time.Time
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	statsRepo repositories.StatsRepository,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		jobRepository:          jobRepo,
		applicationRepository:  appRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
		statsRepository:        statsRepo,
		logger:                 logger,
		now:                    time.Now,
	}
}

// RegisterAdminRoutes registers the admin-only dashboard routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group, requireAdmin echo.MiddlewareFunc) {
	g.GET("/admin/stats", h.GetStats, requireAdmin)
	g.POST("/admin/export", h.Export, requireAdmin)
	g.POST("/admin/notifications", h.Broadcast, requireAdmin)
}

// GetStats returns the dashboard totals
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.statsRepository.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

type exportRequest struct {
	Format string `json:"format" validate:"required"`
}

// Export returns active jobs, their applications or their applicants as a
// CSV attachment
func (h *AdminHandler) Export(c echo.Context) error {
	var req exportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format")
	}

	var buf bytes.Buffer
	if err := h.writeExport(c.Request().Context(), &buf, format); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename(format, h.now())))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *AdminHandler) writeExport(ctx context.Context, buf *bytes.Buffer, format export.Format) error {
	switch format {
	case export.FormatJobs:
		jobs, err := h.jobRepository.List(ctx, models.JobFilter{})
		if err != nil {
			return err
		}
		return export.WriteJobs(buf, jobs)
	case export.FormatApplications:
		apps, err := h.applicationRepository.ListForActiveJobs(ctx)
		if err != nil {
			return err
		}
		return export.WriteApplications(buf, apps)
	default:
		users, err := h.userRepository.ListApplicants(ctx)
		if err != nil {
			return err
		}
		return export.WriteUsers(buf, users)
	}
}

// Broadcast resolves the recipient list and records that the message went
// out. Delivery itself is left to an external mailer.
func (h *AdminHandler) Broadcast(c echo.Context) error {
	var req models.BroadcastRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	recipients, err := h.recipients(ctx, req)
	if err != nil {
		return err
	}

	count := len(recipients)
	if _, err := h.notificationRepository.Append(ctx,
		"Email Notification Sent",
		fmt.Sprintf("Email sent to %d recipients", count),
		models.NotificationSuccess,
	); err != nil {
		return err
	}
	h.logger.Info("Broadcast recorded",
		slog.String("type", req.Type),
		slog.String("subject", req.Subject),
		slog.Int("recipients", count))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Email sent successfully to %d recipients", count),
		"count":   count,
	})
}

// recipients returns the audience for a broadcast. "all" lists each applicant
// once, "applicants" once per application.
func (h *AdminHandler) recipients(ctx context.Context, req models.BroadcastRequest) ([]string, error) {
	switch req.Type {
	case "custom":
		if len(req.Recipients) == 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Recipients are required for custom notifications")
		}
		return req.Recipients, nil
	case "applicants":
		return h.userRepository.ApplicantEmails(ctx, false)
	default:
		emails, err := h.userRepository.ApplicantEmails(ctx, false)
		if err != nil {
			return nil, err
		}
		return uniqueEmails(emails), nil
	}
}

func uniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		key := strings.ToLower(email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, email)
	}
	return out
}
