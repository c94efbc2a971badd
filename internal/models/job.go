package models

import "time"

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeFullTime JobType = "full-time"
	JobTypePartTime JobType = "part-time"
	JobTypeContract JobType = "contract"
	JobTypeRemote   JobType = "remote"
)

// JobCategory groups postings on the board
type JobCategory string

const (
	CategoryTechnology JobCategory = "technology"
	CategoryDesign     JobCategory = "design"
	CategoryMarketing  JobCategory = "marketing"
	CategorySales      JobCategory = "sales"
	CategoryFinance    JobCategory = "finance"
	CategoryHR         JobCategory = "hr"
	CategoryOperations JobCategory = "operations"
)

// Categories lists every category in display order
var Categories = []JobCategory{
	CategoryTechnology,
	CategoryDesign,
	CategoryMarketing,
	CategorySales,
	CategoryFinance,
	CategoryHR,
	CategoryOperations,
}

// Job represents a posted position
type Job struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Title        string      `json:"title" gorm:"not null"`
	Company      string      `json:"company" gorm:"not null"`
	Location     string      `json:"location" gorm:"not null"`
	Type         JobType     `json:"type" gorm:"size:20;not null;index"`
	Salary       string      `json:"salary,omitempty"`
	Description  string      `json:"description" gorm:"type:text;not null"`
	Requirements string      `json:"requirements,omitempty" gorm:"type:text"`
	Benefits     string      `json:"benefits,omitempty" gorm:"type:text"`
	Email        string      `json:"email,omitempty"`    // contact address for applying by mail
	ApplyURL     string      `json:"applyUrl,omitempty"` // external apply link
	Category     JobCategory `json:"category" gorm:"size:30;not null;index"`
	ImageURL     string      `json:"imageUrl,omitempty"`
	IsActive     bool        `json:"isActive" gorm:"not null;index"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CreateJobRequest defines the request body for posting a job
type CreateJobRequest struct {
	Title        string      `json:"title" validate:"required,max=200"`
	Company      string      `json:"company" validate:"required,max=200"`
	Location     string      `json:"location" validate:"required,max=200"`
	Type         JobType     `json:"type" validate:"required,oneof=full-time part-time contract remote"`
	Salary       string      `json:"salary,omitempty" validate:"omitempty,max=100"`
	Description  string      `json:"description" validate:"required"`
	Requirements string      `json:"requirements,omitempty"`
	Benefits     string      `json:"benefits,omitempty"`
	Email        string      `json:"email,omitempty" validate:"omitempty,email"`
	ApplyURL     string      `json:"applyUrl,omitempty" validate:"omitempty,url"`
	Category     JobCategory `json:"category,omitempty" validate:"omitempty,oneof=technology design marketing sales finance hr operations"`
	ImageURL     string      `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive     *bool       `json:"isActive,omitempty"`
}

// ToJob builds a Job, applying the defaults for omitted fields
func (r CreateJobRequest) ToJob() *Job {
	job := &Job{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Type:         r.Type,
		Salary:       r.Salary,
		Description:  r.Description,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
		Email:        r.Email,
		ApplyURL:     r.ApplyURL,
		Category:     r.Category,
		ImageURL:     r.ImageURL,
		IsActive:     true,
	}
	if job.Category == "" {
		job.Category = CategoryTechnology
	}
	if r.IsActive != nil {
		job.IsActive = *r.IsActive
	}
	return job
}

// JobPatch carries a partial update. Nil fields keep their stored value.
type JobPatch struct {
	Title        *string      `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Company      *string      `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	Location     *string      `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Type         *JobType     `json:"type,omitempty" validate:"omitempty,oneof=full-time part-time contract remote"`
	Salary       *string      `json:"salary,omitempty" validate:"omitempty,max=100"`
	Description  *string      `json:"description,omitempty" validate:"omitempty,min=1"`
	Requirements *string      `json:"requirements,omitempty"`
	Benefits     *string      `json:"benefits,omitempty"`
	Email        *string      `json:"email,omitempty" validate:"omitempty,email"`
	ApplyURL     *string      `json:"applyUrl,omitempty" validate:"omitempty,url"`
	Category     *JobCategory `json:"category,omitempty" validate:"omitempty,oneof=technology design marketing sales finance hr operations"`
	ImageURL     *string      `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive     *bool        `json:"isActive,omitempty"`
}

// Updates returns the column assignments for the non-nil fields
func (p JobPatch) Updates() map[string]any {
	values := make(map[string]any)
	setString := func(column string, v *string) {
		if v != nil {
			values[column] = *v
		}
	}
	setString("title", p.Title)
	setString("company", p.Company)
	setString("location", p.Location)
	setString("salary", p.Salary)
	setString("description", p.Description)
	setString("requirements", p.Requirements)
	setString("benefits", p.Benefits)
	setString("email", p.Email)
	setString("apply_url", p.ApplyURL)
	setString("image_url", p.ImageURL)
	if p.Type != nil {
		values["type"] = *p.Type
	}
	if p.Category != nil {
		values["category"] = *p.Category
	}
	if p.IsActive != nil {
		values["is_active"] = *p.IsActive
	}
	return values
}

// IsEmpty reports whether the patch would change nothing
func (p JobPatch) IsEmpty() bool {
	return len(p.Updates()) == 0
}

// JobSelector picks the rows a bulk update applies to. When IDs is non-empty
// the remaining fields are ignored.
type JobSelector struct {
	IDs      []uint
	Category string
	Type     string
	Location string
	IsActive *bool
}

// BulkUpdateRequest defines the request body for the admin bulk update
type BulkUpdateRequest struct {
	JobIDs   []uint   `json:"jobIds,omitempty"`
	Category string   `json:"category,omitempty"`
	Type     string   `json:"type,omitempty"`
	Location string   `json:"location,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
	Set      JobPatch `json:"set"`
}

// Selector extracts the row selection part of the request
func (r BulkUpdateRequest) Selector() JobSelector {
	return JobSelector{
		IDs:      r.JobIDs,
		Category: r.Category,
		Type:     r.Type,
		Location: r.Location,
		IsActive: r.IsActive,
	}
}

// Patch returns the field patch. Requests that only carry isActive patch the
// active flag, which is how the admin dashboard activates and deactivates jobs.
func (r BulkUpdateRequest) Patch() JobPatch {
	if r.Set.IsEmpty() && r.IsActive != nil {
		active := *r.IsActive
		return JobPatch{IsActive: &active}
	}
	return r.Set
}
