package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/gorm"
)

// MaxRecentNotifications caps ListRecent
const MaxRecentNotifications = 50

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Append(ctx context.Context, title, message string, typ models.NotificationType) (*models.Notification, error)
	ListRecent(ctx context.Context, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, ids []uint) (int64, error)
	UnreadCount(ctx context.Context) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Append(ctx context.Context, title, message string, typ models.NotificationType) (*models.Notification, error) {
	notif := &models.Notification{Title: title, Message: message, Type: typ}
	if err := r.db.WithContext(ctx).Create(notif).Error; err != nil {
		return nil, fmt.Errorf("append notification: %w", err)
	}
	return notif, nil
}

// ListRecent returns the newest notifications. A limit outside 1..50 means 50.
func (r *postgresNotificationRepository) ListRecent(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > MaxRecentNotifications {
		limit = MaxRecentNotifications
	}
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags the given notifications as read. Unknown ids are ignored.
func (r *postgresNotificationRepository) MarkRead(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id IN ?", ids).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *postgresNotificationRepository) UnreadCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("is_read = ?", false).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
