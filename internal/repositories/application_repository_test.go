package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_SubmitCreatesPendingAndNotifies(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	job := testutil.CreateJob(t, db, nil)
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	app := &models.Application{
		JobID:       job.ID,
		UserID:      user.ID,
		Status:      models.ApplicationStatusAccepted,
		CoverLetter: "I am interested",
	}
	require.NoError(t, repo.Submit(context.Background(), app))
	assert.NotZero(t, app.ID)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	var notifs []models.Notification
	require.NoError(t, db.Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, "New Job Application", notifs[0].Title)
	assert.Equal(t, "A new application has been submitted for job ID: 1", notifs[0].Message)
	assert.Equal(t, models.NotificationInfo, notifs[0].Type)
}

func TestApplicationRepository_SubmitDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	ctx := context.Background()
	job := testutil.CreateJob(t, db, nil)
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	require.NoError(t, repo.Submit(ctx, &models.Application{JobID: job.ID, UserID: user.ID}))
	err := repo.Submit(ctx, &models.Application{JobID: job.ID, UserID: user.ID})
	assert.ErrorIs(t, err, ErrDuplicateApplication)
	assert.ErrorIs(t, err, ErrDuplicate)

	var apps, notifs int64
	require.NoError(t, db.Model(&models.Application{}).Count(&apps).Error)
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifs).Error)
	assert.Equal(t, int64(1), apps)
	assert.Equal(t, int64(1), notifs, "failed submit must not notify")
}

func TestApplicationRepository_ConcurrentSubmitKeepsOneRow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	job := testutil.CreateJob(t, db, nil)
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Submit(context.Background(), &models.Application{JobID: job.ID, UserID: user.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateApplication)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplicationRepository_SubmitUnknownJob(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	err := repo.Submit(context.Background(), &models.Application{JobID: 99, UserID: user.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationRepository_SubmitInactiveJobAccepted(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	job := testutil.CreateJob(t, db, func(j *models.Job) { j.IsActive = false })
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	assert.NoError(t, repo.Submit(context.Background(), &models.Application{JobID: job.ID, UserID: user.ID}))
}

func TestApplicationRepository_ListForUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	ctx := context.Background()
	first := testutil.CreateJob(t, db, func(j *models.Job) { j.Title = "First" })
	second := testutil.CreateJob(t, db, func(j *models.Job) { j.Title = "Second" })
	john := testutil.CreateUser(t, db, "john@example.com", "John Doe")
	jane := testutil.CreateUser(t, db, "jane@example.com", "Jane Smith")

	require.NoError(t, repo.Submit(ctx, &models.Application{JobID: first.ID, UserID: john.ID}))
	require.NoError(t, repo.Submit(ctx, &models.Application{JobID: second.ID, UserID: john.ID}))
	require.NoError(t, repo.Submit(ctx, &models.Application{JobID: first.ID, UserID: jane.ID}))

	apps, err := repo.ListForUser(ctx, john.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	require.NotNil(t, apps[0].Job)
	assert.Equal(t, "Second", apps[0].Job.Title)
	assert.Equal(t, "First", apps[1].Job.Title)
	for _, app := range apps {
		assert.Equal(t, john.ID, app.UserID)
	}
}

func TestApplicationRepository_UpdateStatus(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	ctx := context.Background()
	job := testutil.CreateJob(t, db, nil)
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")
	app := &models.Application{JobID: job.ID, UserID: user.ID}
	require.NoError(t, repo.Submit(ctx, app))

	// Any status may follow any other.
	for _, status := range []models.ApplicationStatus{
		models.ApplicationStatusRejected,
		models.ApplicationStatusPending,
		models.ApplicationStatusAccepted,
		models.ApplicationStatusReviewed,
	} {
		updated, err := repo.UpdateStatus(ctx, app.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		require.NotNil(t, updated.User)
		assert.Equal(t, "john@example.com", updated.User.Email)
	}

	_, err := repo.UpdateStatus(ctx, app.ID+1, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.UpdateStatus(ctx, app.ID, "hired")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApplicationRepository_ListForActiveJobs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresApplicationRepository(db)
	ctx := context.Background()
	open := testutil.CreateJob(t, db, nil)
	closed := testutil.CreateJob(t, db, func(j *models.Job) { j.IsActive = false })
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	require.NoError(t, repo.Submit(ctx, &models.Application{JobID: open.ID, UserID: user.ID}))
	require.NoError(t, repo.Submit(ctx, &models.Application{JobID: closed.ID, UserID: user.ID}))

	apps, err := repo.ListForActiveJobs(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, open.ID, apps[0].JobID)
	require.NotNil(t, apps[0].User)
	assert.Equal(t, "John Doe", apps[0].User.Name)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
