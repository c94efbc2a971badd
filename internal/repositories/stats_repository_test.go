package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_Overview(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	tech := testutil.CreateJob(t, db, nil)
	testutil.CreateJob(t, db, nil)
	testutil.CreateJob(t, db, func(j *models.Job) {
		j.Category = models.CategoryDesign
		j.IsActive = false
	})
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	apps := NewPostgresApplicationRepository(db)
	app := &models.Application{JobID: tech.ID, UserID: user.ID}
	require.NoError(t, apps.Submit(ctx, app))
	_, err := apps.UpdateStatus(ctx, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	_, err = NewPostgresBookmarkRepository(db).Toggle(ctx, tech.ID, user.ID)
	require.NoError(t, err)

	stats, err := NewPostgresStatsRepository(db).Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalJobs)
	assert.Equal(t, int64(2), stats.ActiveJobs)
	assert.Equal(t, int64(1), stats.TotalApplications)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalBookmarks)
	assert.Equal(t, int64(1), stats.UnreadNotifications)
	assert.Equal(t, int64(1), stats.ApplicationsByStatus[models.ApplicationStatusAccepted])
	assert.Equal(t, int64(0), stats.ApplicationsByStatus[models.ApplicationStatusPending])
	assert.Len(t, stats.ApplicationsByStatus, len(models.ApplicationStatuses))

	assert.Equal(t, []models.CategoryCount{
		{Category: models.CategoryTechnology, Count: 2, Percentage: 66.7},
		{Category: models.CategoryDesign, Count: 1, Percentage: 33.3},
	}, stats.JobsByCategory)
}
