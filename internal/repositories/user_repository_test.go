package repositories

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UpsertByEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	created, err := repo.UpsertByEmail(ctx, "John@Example.com ", "John Doe", "+62 812")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", created.Email)

	again, err := repo.UpsertByEmail(ctx, "john@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "John Doe", again.Name, "empty name keeps the stored one")

	renamed, err := repo.UpsertByEmail(ctx, "JOHN@example.com", "Johnny", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, renamed.ID)
	assert.Equal(t, "Johnny", renamed.Name)
	assert.Equal(t, "+62 812", renamed.Phone)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = repo.UpsertByEmail(ctx, "  ", "x", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	resume := "https://example.com/john.pdf"
	experience := "5 years of Go"
	updated, err := repo.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{
		ResumeURL:  &resume,
		Experience: &experience,
		Skills:     []string{"Go", "PostgreSQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", updated.Name)
	assert.Equal(t, resume, updated.ResumeURL)
	assert.Equal(t, experience, updated.Experience)

	var skills []string
	require.NoError(t, json.Unmarshal(updated.Skills, &skills))
	assert.Equal(t, []string{"Go", "PostgreSQL"}, skills)

	_, err = repo.UpdateProfile(ctx, user.ID+10, models.UpdateProfileRequest{Experience: &experience})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Applicants(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresUserRepository(db)
	apps := NewPostgresApplicationRepository(db)
	ctx := context.Background()

	open := testutil.CreateJob(t, db, nil)
	other := testutil.CreateJob(t, db, nil)
	closed := testutil.CreateJob(t, db, func(j *models.Job) { j.IsActive = false })
	john := testutil.CreateUser(t, db, "john@example.com", "John Doe")
	jane := testutil.CreateUser(t, db, "jane@example.com", "Jane Smith")
	testutil.CreateUser(t, db, "idle@example.com", "Idle")

	require.NoError(t, apps.Submit(ctx, &models.Application{JobID: open.ID, UserID: john.ID}))
	require.NoError(t, apps.Submit(ctx, &models.Application{JobID: other.ID, UserID: john.ID}))
	require.NoError(t, apps.Submit(ctx, &models.Application{JobID: closed.ID, UserID: jane.ID}))

	emails, err := repo.ApplicantEmails(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"john@example.com", "john@example.com", "jane@example.com"}, emails)

	emails, err = repo.ApplicantEmails(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"john@example.com", "john@example.com"}, emails)

	users, err := repo.ListApplicants(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, john.ID, users[0].ID)
}
