package repositories

import (
	"context"
	"fmt"
	"math"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/gorm"
)

// StatsRepository aggregates the admin dashboard figures
type StatsRepository interface {
	Overview(ctx context.Context) (*models.Stats, error)
}

// PostgresStatsRepository implements StatsRepository
type PostgresStatsRepository struct {
	db *gorm.DB
}

func NewPostgresStatsRepository(db *gorm.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

// Overview counts the stored rows. Categories are reported in their canonical
// order with a percentage of all jobs, rounded to one decimal.
func (r *PostgresStatsRepository) Overview(ctx context.Context) (*models.Stats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.Stats{
		ApplicationsByStatus: make(map[models.ApplicationStatus]int64, len(models.ApplicationStatuses)),
	}

	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"jobs", db.Model(&models.Job{}), &stats.TotalJobs},
		{"active jobs", db.Model(&models.Job{}).Where("is_active = ?", true), &stats.ActiveJobs},
		{"applications", db.Model(&models.Application{}), &stats.TotalApplications},
		{"users", db.Model(&models.User{}), &stats.TotalUsers},
		{"bookmarks", db.Model(&models.Bookmark{}), &stats.TotalBookmarks},
		{"unread notifications", db.Model(&models.Notification{}).Where("is_read = ?", false), &stats.UnreadNotifications},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
	}

	var byStatus []struct {
		Status models.ApplicationStatus
		Count  int64
	}
	if err := db.Model(&models.Application{}).Select("status, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	for _, s := range models.ApplicationStatuses {
		stats.ApplicationsByStatus[s] = 0
	}
	for _, row := range byStatus {
		stats.ApplicationsByStatus[row.Status] = row.Count
	}

	var byCategory []struct {
		Category models.JobCategory
		Count    int64
	}
	if err := db.Model(&models.Job{}).Select("category, COUNT(*) AS count").Group("category").Scan(&byCategory).Error; err != nil {
		return nil, fmt.Errorf("count jobs by category: %w", err)
	}
	found := make(map[models.JobCategory]int64, len(byCategory))
	for _, row := range byCategory {
		found[row.Category] = row.Count
	}
	stats.JobsByCategory = make([]models.CategoryCount, 0, len(found))
	for _, category := range models.Categories {
		if n, ok := found[category]; ok {
			stats.JobsByCategory = append(stats.JobsByCategory, categoryCount(category, n, stats.TotalJobs))
			delete(found, category)
		}
	}
	// Categories written outside the known set still show up.
	for category, n := range found {
		stats.JobsByCategory = append(stats.JobsByCategory, categoryCount(category, n, stats.TotalJobs))
	}

	return stats, nil
}

func categoryCount(category models.JobCategory, n, total int64) models.CategoryCount {
	cc := models.CategoryCount{Category: category, Count: n}
	if total > 0 {
		cc.Percentage = math.Round(float64(n)*1000/float64(total)) / 10
	}
	return cc
}
