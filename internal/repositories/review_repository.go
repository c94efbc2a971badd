package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines the interface for job review operations
type ReviewRepository interface {
	Submit(ctx context.Context, jobID, userID uint, rating int, comment string) (*models.Review, bool, error)
	ListForJob(ctx context.Context, jobID uint) (*models.ReviewSummary, error)
}

// PostgresReviewRepository implements ReviewRepository
type PostgresReviewRepository struct {
	db *gorm.DB
}

func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// Submit creates the user's review of the job, or rewrites the rating and
// comment of the existing one. The bool result reports whether a row was created.
func (r *PostgresReviewRepository) Submit(ctx context.Context, jobID, userID uint, rating int, comment string) (*models.Review, bool, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, false, invalid(fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating))
	}

	var (
		review  models.Review
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("job_id = ? AND user_id = ?", jobID, userID).First(&review).Error
		switch {
		case err == nil:
			res := tx.Model(&review).Updates(map[string]any{"rating": rating, "comment": comment})
			if res.Error != nil {
				return fmt.Errorf("update review: %w", res.Error)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{JobID: jobID, UserID: userID, Rating: rating, Comment: comment}
			// A concurrent insert for the same pair converges on one row.
			err := tx.Omit("Job", "User").Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "job_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
			}).Create(&review).Error
			if err != nil {
				if isForeignKeyViolation(err) {
					return notFound("job")
				}
				return fmt.Errorf("create review: %w", err)
			}
			created = true
		default:
			return fmt.Errorf("find review: %w", err)
		}

		review = models.Review{}
		if err := tx.Where("job_id = ? AND user_id = ?", jobID, userID).First(&review).Error; err != nil {
			return fmt.Errorf("reload review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &review, created, nil
}

// ListForJob returns the job's reviews, newest first, with their mean rating
func (r *PostgresReviewRepository) ListForJob(ctx context.Context, jobID uint) (*models.ReviewSummary, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("job_id = ?", jobID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	summary := &models.ReviewSummary{
		Reviews:      make([]models.ReviewWithAuthor, 0, len(reviews)),
		TotalReviews: len(reviews),
	}
	ratings := make([]int, 0, len(reviews))
	for _, review := range reviews {
		item := models.ReviewWithAuthor{Review: review}
		if review.User != nil {
			item.User = review.User.ToCompact()
		}
		item.Review.User = nil
		summary.Reviews = append(summary.Reviews, item)
		ratings = append(ratings, review.Rating)
	}
	summary.AverageRating = models.AverageRating(ratings)
	return summary, nil
}
