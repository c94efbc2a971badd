package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	Toggle(ctx context.Context, jobID, userID uint) (bool, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Bookmark, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// Toggle flips the bookmark for the pair and reports whether it is now set.
// Removing first means no read decides the branch: a deleted row means the job
// was bookmarked, otherwise the insert runs and a unique violation from a
// concurrent toggle still leaves it bookmarked.
func (r *PostgresBookmarkRepository) Toggle(ctx context.Context, jobID, userID uint) (bool, error) {
	db := r.db.WithContext(ctx)

	res := db.Where("job_id = ? AND user_id = ?", jobID, userID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return false, fmt.Errorf("delete bookmark: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	bookmark := &models.Bookmark{JobID: jobID, UserID: userID}
	if err := db.Omit("Job", "User").Create(bookmark).Error; err != nil {
		switch {
		case isDuplicateKey(err):
			return true, nil
		case isForeignKeyViolation(err):
			return false, notFound("job")
		}
		return false, fmt.Errorf("create bookmark: %w", err)
	}
	return true, nil
}

// ListForUser returns the user's bookmarks with their jobs, newest first
func (r *PostgresBookmarkRepository) ListForUser(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}
