package models

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/datatypes"
)

// User is a job seeker. Rows are created on first login and keyed by email.
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Email      string         `json:"email" gorm:"uniqueIndex;not null"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone"`
	ResumeURL  string         `json:"resumeUrl,omitempty"`
	Skills     datatypes.JSON `json:"skills,omitempty"` // JSON array of strings
	Experience string         `json:"experience,omitempty" gorm:"type:text"`
	Education  string         `json:"education,omitempty" gorm:"type:text"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// SkillList decodes Skills. A missing or malformed value yields nil.
func (u *User) SkillList() []string {
	if len(u.Skills) == 0 {
		return nil
	}
	var skills []string
	if err := json.Unmarshal(u.Skills, &skills); err != nil {
		return nil
	}
	return skills
}

// UserCompact is the public subset shown next to reviews
type UserCompact struct {
	Name string `json:"name"`
}

// ToCompact converts a User to UserCompact
func (u *User) ToCompact() UserCompact {
	return UserCompact{Name: u.Name}
}

// LoginRequest defines the request body for the job seeker login
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateProfileRequest defines the request body for updating the own profile
type UpdateProfileRequest struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone      *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	ResumeURL  *string  `json:"resumeUrl,omitempty" validate:"omitempty,url"`
	Skills     []string `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Experience *string  `json:"experience,omitempty"`
	Education  *string  `json:"education,omitempty"`
}

// AdminLoginRequest defines the request body for the back office login
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Roles carried in session tokens
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
