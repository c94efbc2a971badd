// Package testutil provides a throwaway SQLite database for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/pkg/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in t.TempDir and closes it on cleanup
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "pegawe.db")
	db, err := config.OpenSQLite(dbPath, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// BaseTime is a fixed instant tests build creation times from
var BaseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// CreateJob inserts a job with sensible defaults; mutate overrides fields
func CreateJob(t testing.TB, db *gorm.DB, mutate func(*models.Job)) *models.Job {
	t.Helper()
	job := &models.Job{
		Title:       "Software Engineer",
		Company:     "Acme",
		Location:    "Jakarta Selatan",
		Type:        models.JobTypeFullTime,
		Description: "Build things",
		Category:    models.CategoryTechnology,
		IsActive:    true,
		CreatedAt:   BaseTime,
	}
	if mutate != nil {
		mutate(job)
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

// CreateUser inserts a user with the given email
func CreateUser(t testing.TB, db *gorm.DB, email, name string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: name}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
