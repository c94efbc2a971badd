package models

import "time"

// NotificationType is the severity shown in the admin feed
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification represents an admin-facing event. Rows are append-only except
// for IsRead, which only ever goes from false to true.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Title     string           `json:"title" gorm:"not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	Type      NotificationType `json:"type" gorm:"size:20;not null;index"`
	IsRead    bool             `json:"isRead" gorm:"not null;index"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
}

// MarkReadRequest defines the request body for marking notifications read
type MarkReadRequest struct {
	IDs []uint `json:"ids" validate:"required"`
}

// BroadcastRequest defines the request body for the admin email broadcast
type BroadcastRequest struct {
	Type       string   `json:"type" validate:"required,oneof=all applicants custom"`
	Recipients []string `json:"recipients,omitempty" validate:"omitempty,dive,email"`
	Subject    string   `json:"subject" validate:"required,max=200"`
	Message    string   `json:"message" validate:"required"`
}
