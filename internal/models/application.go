package models

import "time"

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// Application is a user's submitted interest in a job. At most one row exists
// per (job, user) pair.
type Application struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	JobID       uint              `json:"jobId" gorm:"not null;index;uniqueIndex:idx_application_job_user"`
	UserID      uint              `json:"userId" gorm:"not null;index;uniqueIndex:idx_application_job_user"`
	Status      ApplicationStatus `json:"status" gorm:"size:20;not null;index"`
	CoverLetter string            `json:"coverLetter,omitempty" gorm:"type:text"`
	ResumeURL   string            `json:"resumeUrl,omitempty"`
	CreatedAt   time.Time         `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	Job  *Job  `json:"job,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User *User `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreateApplicationRequest defines the request body for applying to a job
type CreateApplicationRequest struct {
	JobID       uint   `json:"jobId" validate:"required"`
	CoverLetter string `json:"coverLetter,omitempty" validate:"omitempty,max=5000"`
	ResumeURL   string `json:"resumeUrl,omitempty" validate:"omitempty,url"`
}

// UpdateApplicationStatusRequest defines the request body for an admin status change
type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
}
