package models

import "time"

// Rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a job. A repeat submission for the same pair
// updates the existing row.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JobID     uint      `json:"jobId" gorm:"not null;index;uniqueIndex:idx_review_job_user"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_review_job_user"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Job  *Job  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User *User `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreateReviewRequest defines the request body for rating a job
type CreateReviewRequest struct {
	JobID   uint   `json:"jobId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ReviewWithAuthor is a review plus the reviewer's display name
type ReviewWithAuthor struct {
	Review
	User UserCompact `json:"user"`
}

// ReviewSummary is the per-job review listing with its aggregate
type ReviewSummary struct {
	Reviews       []ReviewWithAuthor `json:"reviews"`
	AverageRating float64            `json:"averageRating"`
	TotalReviews  int                `json:"totalReviews"`
}

// AverageRating returns the arithmetic mean of the ratings, 0 for none
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
