package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/gorm"
)

// JobRepository defines the interface for job posting operations
type JobRepository interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	ListAll(ctx context.Context) ([]models.Job, error)
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, id uint, patch models.JobPatch) (*models.Job, error)
	Delete(ctx context.Context, id uint) error
	BulkUpdate(ctx context.Context, selector models.JobSelector, patch models.JobPatch) (int64, error)
}

// PostgresJobRepository implements JobRepository over GORM
type PostgresJobRepository struct {
	db *gorm.DB
}

// NewPostgresJobRepository creates a new PostgresJobRepository
func NewPostgresJobRepository(db *gorm.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// List returns active jobs matching the filter, newest first
func (r *PostgresJobRepository) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	var jobs []models.Job
	query := r.db.WithContext(ctx).Model(&models.Job{}).Where("is_active = ?", true)
	query = applyJobFilter(query, filter)
	if err := query.Order("created_at DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// ListAll returns every job including inactive ones, newest first
func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list all jobs: %w", err)
	}
	return jobs, nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("job")
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// Create inserts a new job
func (r *PostgresJobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Update merges the non-nil patch fields into the job and returns the stored row
func (r *PostgresJobRepository) Update(ctx context.Context, id uint, patch models.JobPatch) (*models.Job, error) {
	values := patch.Updates()
	if len(values) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return nil, fmt.Errorf("update job: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, notFound("job")
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a job together with its applications, bookmarks and reviews
func (r *PostgresJobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&models.Application{}, &models.Bookmark{}, &models.Review{}} {
			if err := tx.Where("job_id = ?", id).Delete(dependent).Error; err != nil {
				return fmt.Errorf("delete job dependents: %w", err)
			}
		}
		res := tx.Delete(&models.Job{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete job: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("job")
		}
		return nil
	})
}

// BulkUpdate applies patch to every job the selector matches and records a
// notification summarizing the batch. An empty selector matches every job.
func (r *PostgresJobRepository) BulkUpdate(ctx context.Context, selector models.JobSelector, patch models.JobPatch) (int64, error) {
	values := patch.Updates()
	if len(values) == 0 {
		return 0, invalid("no fields to update")
	}

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := applyJobSelector(tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Model(&models.Job{}), selector)
		res := query.Updates(values)
		if res.Error != nil {
			return fmt.Errorf("bulk update jobs: %w", res.Error)
		}
		affected = res.RowsAffected

		notif := &models.Notification{
			Title:   "Bulk Update Jobs",
			Message: fmt.Sprintf("Successfully updated %d jobs", affected),
			Type:    models.NotificationSuccess,
		}
		if err := tx.Create(notif).Error; err != nil {
			return fmt.Errorf("create bulk update notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func applyJobFilter(db *gorm.DB, filter models.JobFilter) *gorm.DB {
	f := filter.Normalized()
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		db = db.Where(
			"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(company) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern,
		)
	}
	if f.Location != "" {
		db = db.Where("LOWER(location) LIKE ? ESCAPE '\\'", likePattern(f.Location))
	}
	return db
}

func applyJobSelector(db *gorm.DB, selector models.JobSelector) *gorm.DB {
	if len(selector.IDs) > 0 {
		return db.Where("id IN ?", selector.IDs)
	}
	f := models.JobFilter{
		Category: selector.Category,
		Type:     selector.Type,
		Location: selector.Location,
	}.Normalized()
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Location != "" {
		db = db.Where("LOWER(location) LIKE ? ESCAPE '\\'", likePattern(f.Location))
	}
	if selector.IsActive != nil {
		db = db.Where("is_active = ?", *selector.IsActive)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern lowercases s and wraps it for a substring LIKE match
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
