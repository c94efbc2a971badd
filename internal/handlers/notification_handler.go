package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the back office notification feed
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, requireAdmin echo.MiddlewareFunc) {
	g.GET("/notifications", h.GetNotifications, requireAdmin)
	g.PUT("/notifications", h.MarkNotificationsRead, requireAdmin)
}

// GetNotifications returns the newest notifications, at most 50.
// An optional limit query parameter narrows the page.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	limit := repositories.MaxRecentNotifications
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = n
	}

	notifications, err := h.notificationRepository.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(notifications))
}

// MarkNotificationsRead flags the given ids as read. Repeating the call is harmless.
func (h *NotificationHandler) MarkNotificationsRead(c echo.Context) error {
	var req models.MarkReadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.notificationRepository.MarkRead(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Notifications marked as read",
		"updated": updated,
	})
}
