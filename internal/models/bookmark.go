package models

import "time"

// Bookmark represents a job saved for later by a user
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JobID     uint      `json:"jobId" gorm:"not null;index;uniqueIndex:idx_bookmark_job_user"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_bookmark_job_user"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`

	Job  *Job  `json:"job,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User *User `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ToggleBookmarkRequest defines the request body for saving/unsaving a job
type ToggleBookmarkRequest struct {
	JobID uint `json:"jobId" validate:"required"`
}
