package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_AppendAndListRecent(t *testing.T) {
	repo := NewPostgresNotificationRepository(testutil.NewDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n, err := repo.Append(ctx, fmt.Sprintf("event %d", i), "message", models.NotificationInfo)
		require.NoError(t, err)
		assert.False(t, n.IsRead)
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "event 2", recent[0].Title)
	assert.Equal(t, "event 1", recent[1].Title)
}

func TestNotificationRepository_ListRecentCapped(t *testing.T) {
	repo := NewPostgresNotificationRepository(testutil.NewDB(t))
	ctx := context.Background()

	for i := 0; i < MaxRecentNotifications+5; i++ {
		_, err := repo.Append(ctx, "event", "message", models.NotificationSuccess)
		require.NoError(t, err)
	}

	for _, limit := range []int{0, -1, 500} {
		recent, err := repo.ListRecent(ctx, limit)
		require.NoError(t, err)
		assert.Len(t, recent, MaxRecentNotifications, "limit %d", limit)
	}
}

func TestNotificationRepository_MarkReadIdempotent(t *testing.T) {
	repo := NewPostgresNotificationRepository(testutil.NewDB(t))
	ctx := context.Background()

	a, err := repo.Append(ctx, "a", "m", models.NotificationInfo)
	require.NoError(t, err)
	b, err := repo.Append(ctx, "b", "m", models.NotificationWarning)
	require.NoError(t, err)
	c, err := repo.Append(ctx, "c", "m", models.NotificationError)
	require.NoError(t, err)

	ids := []uint{a.ID, b.ID, 9999}
	for i := 0; i < 2; i++ {
		_, err := repo.MarkRead(ctx, ids)
		require.NoError(t, err)

		recent, err := repo.ListRecent(ctx, 0)
		require.NoError(t, err)
		for _, n := range recent {
			assert.Equal(t, n.ID != c.ID, n.IsRead, "notification %s", n.Title)
		}
	}

	unread, err := repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	n, err := repo.MarkRead(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
