package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedBoard(t *testing.T, db *gorm.DB) (frontend, designer, inactive *models.Job) {
	t.Helper()
	frontend = testutil.CreateJob(t, db, func(j *models.Job) {
		j.Title = "Senior Frontend Developer"
		j.Company = "TechCorp Indonesia"
		j.Location = "Jakarta Selatan"
		j.Description = "Build modern web applications with React"
		j.CreatedAt = testutil.BaseTime.Add(2 * time.Hour)
	})
	designer = testutil.CreateJob(t, db, func(j *models.Job) {
		j.Title = "Product Designer"
		j.Company = "Creative Studio"
		j.Location = "Bandung"
		j.Type = models.JobTypeContract
		j.Category = models.CategoryDesign
		j.Description = "Design user experiences"
		j.CreatedAt = testutil.BaseTime.Add(time.Hour)
	})
	inactive = testutil.CreateJob(t, db, func(j *models.Job) {
		j.Title = "Frontend Intern"
		j.Description = "Frontend work, closed"
		j.IsActive = false
		j.CreatedAt = testutil.BaseTime.Add(3 * time.Hour)
	})
	return frontend, designer, inactive
}

func jobIDs(jobs []models.Job) []uint {
	ids := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func TestJobRepository_ListOrdersNewestFirstAndSkipsInactive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	frontend, designer, _ := seedBoard(t, db)

	jobs, err := repo.List(context.Background(), models.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uint{frontend.ID, designer.ID}, jobIDs(jobs))
}

func TestJobRepository_ListNeverReturnsInactive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	_, _, inactive := seedBoard(t, db)

	filters := []models.JobFilter{
		{},
		{Search: "Intern"},
		{Search: "frontend"},
		{Category: "all", Type: "all"},
		{Category: string(models.CategoryTechnology)},
		{Location: "jakarta"},
	}
	for _, f := range filters {
		jobs, err := repo.List(context.Background(), f)
		require.NoError(t, err)
		assert.NotContains(t, jobIDs(jobs), inactive.ID, "filter %+v", f)
	}
}

func TestJobRepository_ListSearch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	frontend, designer, _ := seedBoard(t, db)

	tests := []struct {
		name   string
		filter models.JobFilter
		want   []uint
	}{
		{"title match", models.JobFilter{Search: "Frontend"}, []uint{frontend.ID}},
		{"case insensitive", models.JobFilter{Search: "fRoNtEnD"}, []uint{frontend.ID}},
		{"company match", models.JobFilter{Search: "creative"}, []uint{designer.ID}},
		{"description match", models.JobFilter{Search: "react"}, []uint{frontend.ID}},
		{"no match", models.JobFilter{Search: "Accountant"}, []uint{}},
		{"wildcards are literal", models.JobFilter{Search: "%"}, []uint{}},
		{"underscore is literal", models.JobFilter{Search: "_"}, []uint{}},
		{"category", models.JobFilter{Category: "design"}, []uint{designer.ID}},
		{"category all", models.JobFilter{Category: "ALL"}, []uint{frontend.ID, designer.ID}},
		{"type", models.JobFilter{Type: "contract"}, []uint{designer.ID}},
		{"location substring", models.JobFilter{Location: "selatan"}, []uint{frontend.ID}},
		{"combined", models.JobFilter{Search: "design", Type: "full-time"}, []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, jobIDs(jobs))
		})
	}
}

func TestJobRepository_ListAgreesWithInMemoryFilter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	seedBoard(t, db)
	testutil.CreateJob(t, db, func(j *models.Job) {
		j.Title = "Marketing Lead"
		j.Category = models.CategoryMarketing
		j.Type = models.JobTypeRemote
		j.Location = "Remote"
	})

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	filters := []models.JobFilter{
		{},
		{Search: "frontend"},
		{Search: "studio", Category: "design"},
		{Type: "remote"},
		{Location: "REMOTE"},
		{Category: "technology", Location: "jakarta"},
		{Search: "  lead  "},
	}
	for _, f := range filters {
		var want []uint
		for _, job := range all {
			if job.IsActive && f.Matches(job) {
				want = append(want, job.ID)
			}
		}
		got, err := repo.List(context.Background(), f)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, jobIDs(got), "filter %+v", f)
	}
}

func TestJobRepository_GetByIDNotFound(t *testing.T) {
	repo := NewPostgresJobRepository(testutil.NewDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobRepository_UpdateKeepsUnspecifiedFields(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	job := testutil.CreateJob(t, db, func(j *models.Job) { j.Salary = "Rp 10.000.000" })

	title := "Staff Engineer"
	inactive := false
	updated, err := repo.Update(context.Background(), job.ID, models.JobPatch{Title: &title, IsActive: &inactive})
	require.NoError(t, err)

	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.False(t, updated.IsActive)
	assert.Equal(t, job.Company, updated.Company)
	assert.Equal(t, "Rp 10.000.000", updated.Salary)

	_, err = repo.Update(context.Background(), job.ID+100, models.JobPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	ctx := context.Background()

	job := testutil.CreateJob(t, db, nil)
	other := testutil.CreateJob(t, db, nil)
	user := testutil.CreateUser(t, db, "john@example.com", "John Doe")

	require.NoError(t, NewPostgresApplicationRepository(db).Submit(ctx, &models.Application{JobID: job.ID, UserID: user.ID}))
	require.NoError(t, NewPostgresApplicationRepository(db).Submit(ctx, &models.Application{JobID: other.ID, UserID: user.ID}))
	_, err := NewPostgresBookmarkRepository(db).Toggle(ctx, job.ID, user.ID)
	require.NoError(t, err)
	_, _, err = NewPostgresReviewRepository(db).Submit(ctx, job.ID, user.ID, 5, "great")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, job.ID))

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Bookmark{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Application{}).Where("job_id = ?", other.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, repo.Delete(ctx, job.ID), ErrNotFound)
}

func TestJobRepository_BulkUpdateExplicitIDsIgnoreFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	ctx := context.Background()

	a := testutil.CreateJob(t, db, nil)
	b := testutil.CreateJob(t, db, nil)
	c := testutil.CreateJob(t, db, func(j *models.Job) { j.IsActive = false })

	active := false
	salary := "Negotiable"
	n, err := repo.BulkUpdate(ctx, models.JobSelector{
		IDs:      []uint{a.ID, c.ID},
		Category: "design",
		Type:     "remote",
		Location: "nowhere",
		IsActive: &active,
	}, models.JobPatch{Salary: &salary})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for id, want := range map[uint]string{a.ID: "Negotiable", b.ID: "", c.ID: "Negotiable"} {
		job, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, job.Salary, "job %d", id)
	}

	var notif models.Notification
	require.NoError(t, db.Order("id DESC").First(&notif).Error)
	assert.Equal(t, "Bulk Update Jobs", notif.Title)
	assert.Equal(t, "Successfully updated 2 jobs", notif.Message)
	assert.Equal(t, models.NotificationSuccess, notif.Type)
	assert.False(t, notif.IsRead)
}

func TestJobRepository_BulkUpdateBySelector(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	ctx := context.Background()

	design := testutil.CreateJob(t, db, func(j *models.Job) {
		j.Category = models.CategoryDesign
		j.IsActive = false
	})
	testutil.CreateJob(t, db, func(j *models.Job) { j.IsActive = false })
	testutil.CreateJob(t, db, func(j *models.Job) { j.Category = models.CategoryDesign })

	inactive, activate := false, true
	n, err := repo.BulkUpdate(ctx,
		models.JobSelector{Category: "design", IsActive: &inactive},
		models.JobPatch{IsActive: &activate})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	job, err := repo.GetByID(ctx, design.ID)
	require.NoError(t, err)
	assert.True(t, job.IsActive)
}

func TestJobRepository_BulkUpdateEmptySelectorMatchesAll(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	testutil.CreateJob(t, db, nil)
	testutil.CreateJob(t, db, nil)

	inactive := false
	n, err := repo.BulkUpdate(context.Background(), models.JobSelector{}, models.JobPatch{IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestJobRepository_BulkUpdateEmptyPatch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresJobRepository(db)
	testutil.CreateJob(t, db, nil)

	_, err := repo.BulkUpdate(context.Background(), models.JobSelector{}, models.JobPatch{})
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%frontend%`, likePattern("Frontend"))
	assert.Equal(t, `%100\%\_x\\%`, likePattern(`100%_X\`))
}
