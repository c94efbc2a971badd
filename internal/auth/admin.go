package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/anonto42/pegawe/backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// Admin verifies the single back office account
type Admin struct {
	username string
	hash     []byte
}

// NewAdmin builds the verifier from configuration. A configured bcrypt hash
// wins over a plain password, which is hashed once here.
func NewAdmin(cfg config.AuthConfig) (*Admin, error) {
	if cfg.AdminUsername == "" {
		return nil, errors.New("admin username is required")
	}
	if cfg.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		return &Admin{username: cfg.AdminUsername, hash: []byte(cfg.AdminPasswordHash)}, nil
	}
	if cfg.AdminPassword == "" {
		return nil, errors.New("admin password is required")
	}
	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	return &Admin{username: cfg.AdminUsername, hash: []byte(hash)}, nil
}

// Username returns the configured admin name
func (a *Admin) Username() string {
	return a.username
}

// Verify reports whether the credentials belong to the admin
func (a *Admin) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	return userOK && passOK
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
