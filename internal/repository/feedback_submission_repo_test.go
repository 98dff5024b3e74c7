package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClaimRejectsSecondAttempt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackSubmissionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Claim(ctx, 1, 100))
	require.ErrorIs(t, repo.Claim(ctx, 1, 100), ErrAlreadyClaimed)

	// Other pairs are unaffected.
	require.NoError(t, repo.Claim(ctx, 1, 101))
	require.NoError(t, repo.Claim(ctx, 2, 100))
}

func TestClaimConcurrentExactlyOneWins(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewFeedbackSubmissionRepository(db)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Claim(ctx, 1, 100)
		}()
	}
	wg.Wait()
	close(errs)

	won, lost := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrAlreadyClaimed):
			lost++
		default:
			require.NoError(t, err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, workers-1, lost)

	records, err := repo.ListByStudentAndAssignments(ctx, 1, []uint{100})
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestListByStudentAndAssignments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackSubmissionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Claim(ctx, 1, 100))
	require.NoError(t, repo.Claim(ctx, 1, 101))
	require.NoError(t, repo.Claim(ctx, 2, 100))

	records, err := repo.ListByStudentAndAssignments(ctx, 1, []uint{100, 101, 102})
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = repo.ListByStudentAndAssignments(ctx, 1, nil)
	require.NoError(t, err)
	require.Empty(t, records)
}
