package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/gorm"
)

// ApplicationRepository defines the interface for job application operations
type ApplicationRepository interface {
	Submit(ctx context.Context, app *models.Application) error
	ListForUser(ctx context.Context, userID uint) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) (*models.Application, error)
	ListAll(ctx context.Context) ([]models.Application, error)
	ListForActiveJobs(ctx context.Context) ([]models.Application, error)
}

// PostgresApplicationRepository implements ApplicationRepository
type PostgresApplicationRepository struct {
	db *gorm.DB
}

func NewPostgresApplicationRepository(db *gorm.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Submit stores a pending application and records an admin notification in
// the same transaction. The (job, user) unique index decides duplicates.
func (r *PostgresApplicationRepository) Submit(ctx context.Context, app *models.Application) error {
	app.ID = 0
	app.Status = models.ApplicationStatusPending

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Job", "User").Create(app).Error; err != nil {
			switch {
			case isDuplicateKey(err):
				return ErrDuplicateApplication
			case isForeignKeyViolation(err):
				return notFound("job")
			}
			return fmt.Errorf("create application: %w", err)
		}

		notif := &models.Notification{
			Title:   "New Job Application",
			Message: fmt.Sprintf("A new application has been submitted for job ID: %d", app.JobID),
			Type:    models.NotificationInfo,
		}
		if err := tx.Create(notif).Error; err != nil {
			return fmt.Errorf("create application notification: %w", err)
		}
		return nil
	})
}

// ListForUser returns the user's applications with their jobs, newest first
func (r *PostgresApplicationRepository) ListForUser(ctx context.Context, userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list user applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus sets the application's status. Any status may follow any other.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) (*models.Application, error) {
	if !validStatus(status) {
		return nil, invalid(fmt.Sprintf("unknown application status %q", status))
	}

	db := r.db.WithContext(ctx)
	res := db.Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update application status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("application")
	}

	var app models.Application
	if err := db.Preload("Job").Preload("User").First(&app, id).Error; err != nil {
		return nil, fmt.Errorf("reload application: %w", err)
	}
	return &app, nil
}

// ListAll returns every application with its job and applicant, newest first
func (r *PostgresApplicationRepository) ListAll(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").Preload("User").
		Order("created_at DESC").Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ListForActiveJobs returns applications whose job is still active, used by exports
func (r *PostgresApplicationRepository) ListForActiveJobs(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").Preload("User").
		Joins("JOIN jobs ON jobs.id = applications.job_id AND jobs.is_active = ?", true).
		Order("applications.created_at DESC").Order("applications.id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications for active jobs: %w", err)
	}
	return apps, nil
}

func validStatus(status models.ApplicationStatus) bool {
	for _, s := range models.ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
