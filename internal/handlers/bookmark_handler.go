package handlers

import (
	"net/http"

	"github.com/anonto42/pegawe/backend/internal/metrics"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles saved jobs
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	metrics            *metrics.Metrics
}

func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, m *metrics.Metrics) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		metrics:            m,
	}
}

func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group, requireUser echo.MiddlewareFunc) {
	g.POST("/bookmarks", h.ToggleBookmark, requireUser)
	g.GET("/bookmarks", h.ListBookmarks, requireUser)
}

// ToggleBookmark flips the bookmark and reports the resulting state
func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	var req models.ToggleBookmarkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bookmarked, err := h.bookmarkRepository.Toggle(c.Request().Context(), req.JobID, userID)
	if err != nil {
		return err
	}
	h.metrics.BookmarkToggled(bookmarked)
	return c.JSON(http.StatusOK, echo.Map{"bookmarked": bookmarked})
}

func (h *BookmarkHandler) ListBookmarks(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	bookmarks, err := h.bookmarkRepository.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(bookmarks))
}
