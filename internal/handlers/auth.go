package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/pegawe/backend/internal/auth"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/anonto42/pegawe/backend/pkg/config"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles job seeker and admin sessions
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *auth.TokenIssuer
	admin          *auth.Admin
	cfg            config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenIssuer, admin *auth.Admin, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
		admin:          admin,
		cfg:            cfg,
	}
}

// RegisterAuthRoutes registers session routes. requireUser guards the profile.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireUser echo.MiddlewareFunc) {
	g.POST("/auth", h.Login)
	g.GET("/auth", h.Me, requireUser)
	g.PUT("/auth/profile", h.UpdateProfile, requireUser)
	g.POST("/auth/logout", h.Logout)

	g.POST("/admin/login", h.AdminLogin)
	g.POST("/admin/logout", h.AdminLogout)
}

type userResponse struct {
	ID         uint     `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	ResumeURL  string   `json:"resumeUrl,omitempty"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
}

func newUserResponse(user *models.User) userResponse {
	skills := user.SkillList()
	if skills == nil {
		skills = []string{}
	}
	return userResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		ResumeURL:  user.ResumeURL,
		Skills:     skills,
		Experience: user.Experience,
		Education:  user.Education,
	}
}

// Login finds or creates the user by email and starts a session
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userRepository.UpsertByEmail(c.Request().Context(), req.Email, req.Name, req.Phone)
	if err != nil {
		return err
	}

	token, expires, err := h.tokens.IssueUser(user, h.cfg.UserTokenTTL)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(auth.UserCookie, token, expires, h.cfg.UserTokenTTL))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"phone": user.Phone,
		},
	})
}

// Me returns the signed-in user's profile
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateProfile changes the supplied profile fields
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.userRepository.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout clears the user session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.expiredCookie(auth.UserCookie))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}

// AdminLogin checks the configured back office credentials
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if !h.admin.Verify(req.Username, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Username atau password salah")
	}

	token, expires, err := h.tokens.IssueAdmin(h.admin.Username(), h.cfg.AdminTokenTTL)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(auth.AdminCookie, token, expires, h.cfg.AdminTokenTTL))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"user": echo.Map{
			"username": h.admin.Username(),
			"role":     models.RoleAdmin,
		},
	})
}

// AdminLogout clears the admin session cookie
func (h *AuthHandler) AdminLogout(c echo.Context) error {
	c.SetCookie(h.expiredCookie(auth.AdminCookie))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}

func (h *AuthHandler) sessionCookie(name, value string, expires time.Time, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
