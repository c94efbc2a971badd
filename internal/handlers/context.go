package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pegawe/backend/internal/middleware"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func getClaims(c echo.Context) (*models.JwtCustomClaims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return claims, nil
}

// getUserIDFromContext returns the job seeker id placed by the auth middleware
func getUserIDFromContext(c echo.Context) (uint, error) {
	claims, err := getClaims(c)
	if err != nil {
		return 0, err
	}
	if claims.Role != models.RoleUser || claims.UserID == 0 {
		return 0, echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
	}
	return claims.UserID, nil
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// bindAndValidate decodes the request into req and runs its validate tags
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
