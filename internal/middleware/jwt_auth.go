package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/pegawe/backend/internal/auth"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// ClaimsKey is the context key holding *models.JwtCustomClaims
const ClaimsKey = "user"

// JWTAuthMiddleware checks for a valid JWT and stores its claims in the context.
// The token is read from the Authorization header ("Bearer <token>") or, when
// the header is absent, from the named cookie.
func JWTAuthMiddleware(tokens *auth.TokenIssuer, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c, cookieName)
			if err != nil {
				return err
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

func extractToken(c echo.Context, cookieName string) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
}

// RequireRole rejects authenticated callers whose token carries another role.
// It must run after JWTAuthMiddleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*models.JwtCustomClaims)
			if !ok || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
			}
			return next(c)
		}
	}
}

// Authenticated chains JWTAuthMiddleware and RequireRole for one role, reading
// the role's session cookie.
func Authenticated(tokens *auth.TokenIssuer, role string) echo.MiddlewareFunc {
	cookie := auth.UserCookie
	if role == models.RoleAdmin {
		cookie = auth.AdminCookie
	}
	verify := JWTAuthMiddleware(tokens, cookie)
	guard := RequireRole(role)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(guard(next))
	}
}
