package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

func TestFindOpenAtRequiresDateRangeAndFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackPeriodRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	open := models.FeedbackPeriod{Name: "Open", StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: true}
	flagged := models.FeedbackPeriod{Name: "Flagged Off", StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: false}
	ended := models.FeedbackPeriod{Name: "Ended", StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour), IsActive: true}
	require.NoError(t, repo.Create(ctx, &open))
	require.NoError(t, repo.Create(ctx, &flagged))
	require.NoError(t, repo.Create(ctx, &ended))

	found, err := repo.FindOpenAt(ctx, now)
	require.NoError(t, err)
	require.Equal(t, "Open", found.Name)

	// Boundaries are inclusive.
	found, err = repo.FindOpenAt(ctx, open.StartDate)
	require.NoError(t, err)
	require.Equal(t, "Open", found.Name)

	found, err = repo.FindOpenAt(ctx, open.EndDate)
	require.NoError(t, err)
	require.Equal(t, "Open", found.Name)

	_, err = repo.FindOpenAt(ctx, now.Add(200*time.Hour))
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindLatestEndedOrdersByEndDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackPeriodRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	older := models.FeedbackPeriod{Name: "Fall 2025", StartDate: now.Add(-4000 * time.Hour), EndDate: now.Add(-3000 * time.Hour)}
	newer := models.FeedbackPeriod{Name: "Winter 2025", StartDate: now.Add(-2000 * time.Hour), EndDate: now.Add(-1000 * time.Hour)}
	upcoming := models.FeedbackPeriod{Name: "Winter 2026", StartDate: now.Add(700 * time.Hour), EndDate: now.Add(1400 * time.Hour)}
	require.NoError(t, repo.Create(ctx, &older))
	require.NoError(t, repo.Create(ctx, &newer))
	require.NoError(t, repo.Create(ctx, &upcoming))

	found, err := repo.FindLatestEnded(ctx, now)
	require.NoError(t, err)
	require.Equal(t, "Winter 2025", found.Name, "an upcoming period must never win the ended-period lookup")
}

func TestFindLatestEndedIgnoresOnlyUpcoming(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackPeriodRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	upcoming := models.FeedbackPeriod{Name: "Winter 2026", StartDate: now.Add(700 * time.Hour), EndDate: now.Add(1400 * time.Hour)}
	require.NoError(t, repo.Create(ctx, &upcoming))

	_, err := repo.FindLatestEnded(ctx, now)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPeriodListPaginates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackPeriodRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		period := models.FeedbackPeriod{
			Name:      "Period",
			StartDate: now.Add(time.Duration(-i*100) * time.Hour),
			EndDate:   now.Add(time.Duration(-i*100+50) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, &period))
	}

	periods, total, err := repo.List(ctx, FeedbackPeriodFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, periods, 2)

	periods, _, err = repo.List(ctx, FeedbackPeriodFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, periods, 1)
}
