package router

import (
	"log/slog"

	"github.com/anonto42/pegawe/backend/internal/auth"
	"github.com/anonto42/pegawe/backend/internal/handlers"
	"github.com/anonto42/pegawe/backend/internal/metrics"
	"github.com/anonto42/pegawe/backend/internal/middleware"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/anonto42/pegawe/backend/pkg/config"
	"github.com/anonto42/pegawe/backend/validators"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Deps carries what the routes need from the process
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Tokens  *auth.TokenIssuer
	Admin   *auth.Admin
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) {
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)
	e.Use(eMiddleware.Recover())
	e.Use(config.RequestIDMiddleware())
	e.Use(config.RequestLoggerMiddleware(logger))
	e.Use(m.Middleware())
	e.Use(config.CORSMiddleware(cfg))
	logger.Debug("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	health := handlers.NewHealthHandler(deps.DB)
	e.GET("/health", health.HealthCheck)

	// --- Initialize Repositories ---
	jobRepo := repositories.NewPostgresJobRepository(deps.DB)
	appRepo := repositories.NewPostgresApplicationRepository(deps.DB)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(deps.DB)
	reviewRepo := repositories.NewPostgresReviewRepository(deps.DB)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.DB)
	userRepo := repositories.NewPostgresUserRepository(deps.DB)
	statsRepo := repositories.NewPostgresStatsRepository(deps.DB)

	requireUser := middleware.Authenticated(deps.Tokens, models.RoleUser)
	requireAdmin := middleware.Authenticated(deps.Tokens, models.RoleAdmin)

	api := e.Group("/api/v1")
	api.GET("/health", health.HealthCheck)

	handlers.NewAuthHandler(userRepo, deps.Tokens, deps.Admin, deps.Config.Auth).
		RegisterAuthRoutes(api, requireUser)
	handlers.NewJobHandler(jobRepo, deps.Metrics).
		RegisterJobRoutes(api, requireAdmin)
	handlers.NewApplicationHandler(appRepo, deps.Metrics).
		RegisterApplicationRoutes(api, requireUser, requireAdmin)
	handlers.NewBookmarkHandler(bookmarkRepo, deps.Metrics).
		RegisterBookmarkRoutes(api, requireUser)
	handlers.NewReviewHandler(reviewRepo, deps.Metrics).
		RegisterReviewRoutes(api, requireUser)
	handlers.NewNotificationHandler(notificationRepo).
		RegisterNotificationRoutes(api, requireAdmin)
	handlers.NewAdminHandler(jobRepo, appRepo, userRepo, notificationRepo, statsRepo, deps.Logger).
		RegisterAdminRoutes(api, requireAdmin)

	deps.Logger.Info("Routes configured", slog.Int("count", len(e.Routes())))
}

// New builds a fully wired Echo instance
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	SetupMiddleware(e, deps.Config, deps.Logger, deps.Metrics)
	SetupRoutes(e, deps)
	return e
}
