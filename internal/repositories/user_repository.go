package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	UpsertByEmail(ctx context.Context, email, name, phone string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, req models.UpdateProfileRequest) (*models.User, error)
	ApplicantEmails(ctx context.Context, activeJobsOnly bool) ([]string, error)
	ListApplicants(ctx context.Context) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertByEmail returns the user with the email, creating it on first contact.
// A non-empty name or phone overwrites the stored value.
func (r *PostgresUserRepository) UpsertByEmail(ctx context.Context, email, name, phone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalid("email is required")
	}
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := &models.User{Email: email, Name: name, Phone: phone}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(insert).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return fmt.Errorf("get user by email: %w", err)
		}

		updates := map[string]any{}
		if name != "" && name != user.Name {
			updates["name"] = name
		}
		if phone != "" && phone != user.Phone {
			updates["phone"] = phone
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies the provided profile fields and returns the stored user
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uint, req models.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.ResumeURL != nil {
		updates["resume_url"] = *req.ResumeURL
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if req.Education != nil {
		updates["education"] = *req.Education
	}
	if req.Skills != nil {
		skills, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, fmt.Errorf("encode skills: %w", err)
		}
		updates["skills"] = datatypes.JSON(skills)
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, notFound("user")
		}
	}
	return r.GetByID(ctx, id)
}

// ApplicantEmails returns one email per application, optionally restricted to
// applications for active jobs. Duplicates are kept; callers dedupe as needed.
func (r *PostgresUserRepository) ApplicantEmails(ctx context.Context, activeJobsOnly bool) ([]string, error) {
	query := r.db.WithContext(ctx).
		Table("applications").
		Joins("JOIN users ON users.id = applications.user_id")
	if activeJobsOnly {
		query = query.Joins("JOIN jobs ON jobs.id = applications.job_id").Where("jobs.is_active = ?", true)
	}

	var emails []string
	if err := query.Order("applications.id").Pluck("users.email", &emails).Error; err != nil {
		return nil, fmt.Errorf("list applicant emails: %w", err)
	}
	return emails, nil
}

// ListApplicants returns each user who applied to an active job, once, oldest first
func (r *PostgresUserRepository) ListApplicants(ctx context.Context) ([]models.User, error) {
	active := r.db.Table("applications").
		Select("applications.user_id").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.is_active = ?", true)

	var users []models.User
	err := r.db.WithContext(ctx).
		Where("id IN (?)", active).
		Order("created_at").Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return users, nil
}
