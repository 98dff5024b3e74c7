package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/feedback-go-api/internal/dto"
	"github.com/noah-isme/feedback-go-api/internal/models"
)

type ratingFixture struct {
	faculty     *facultyRepoStub
	parameters  *parameterRepoStub
	periods     *periodRepoStub
	assignments *assignmentRepoStub
	aggregates  *aggregateRepoStub
	now         time.Time
}

func newRatingFixture() *ratingFixture {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	return &ratingFixture{
		faculty:    &facultyRepoStub{items: map[uint]models.Faculty{7: {ID: 7, Name: "Dr. Rao"}}},
		parameters: &parameterRepoStub{catalog: fiveParameterCatalog()},
		periods: &periodRepoStub{periods: []models.FeedbackPeriod{{
			ID:        1,
			Name:      "Spring 2026",
			StartDate: now.Add(-72 * time.Hour),
			EndDate:   now.Add(72 * time.Hour),
			IsActive:  true,
		}}},
		assignments: &assignmentRepoStub{items: []models.TeachingAssignment{{
			ID: 100, FacultyID: 7, SubjectID: 3, ClassID: 10, FeedbackPeriodID: 1,
			Subject: models.Subject{ID: 3, SubjectCode: "CS401", SubjectName: "Compilers"},
			Class:   models.Class{ID: 10, Name: "CSE-4A"},
		}}},
		aggregates: newAggregateRepoStub(),
		now:        now,
	}
}

func (f *ratingFixture) build(cache *redis.Client) *ratingService {
	svc := NewRatingService(
		f.faculty, f.parameters, f.periods, f.assignments, f.aggregates,
		cache, time.Minute, testLogger(),
	).(*ratingService)
	svc.now = func() time.Time { return f.now }
	return svc
}

func TestFacultyRatingsMeanAndNoData(t *testing.T) {
	fixture := newRatingFixture()
	require.NoError(t, fixture.aggregates.Fold(context.Background(), 100, 1, 5))
	require.NoError(t, fixture.aggregates.Fold(context.Background(), 100, 1, 4))
	require.NoError(t, fixture.aggregates.Fold(context.Background(), 100, 2, 3))

	svc := fixture.build(nil)

	response, err := svc.FacultyRatings(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Equal(t, "Dr. Rao", response.Faculty.Name)
	require.Equal(t, "Spring 2026", response.FeedbackPeriod.Name)
	require.Equal(t, string(models.PeriodStatusActive), response.FeedbackPeriod.Status)
	require.Len(t, response.Ratings, 1)

	block := response.Ratings[0]
	require.Equal(t, uint(100), block.AssignmentID)
	require.Equal(t, "CS401", block.Subject.SubjectCode)
	require.Len(t, block.Ratings, models.ActiveParameterCount)

	byParameter := make(map[string]dto.ParameterRatingResponse, len(block.Ratings))
	for _, rating := range block.Ratings {
		byParameter[rating.Parameter] = rating
	}

	require.Equal(t, "4.50", byParameter["PUNCTUALITY"].AverageRating)
	require.Equal(t, int64(2), byParameter["PUNCTUALITY"].TotalResponses)
	require.Equal(t, "3.00", byParameter["KNOWLEDGE"].AverageRating)
	require.Equal(t, dto.NoDataDisplay, byParameter["ENGAGEMENT"].AverageRating)
	require.Zero(t, byParameter["ENGAGEMENT"].TotalResponses)
}

func TestFacultyRatingsCacheReadThrough(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	fixture := newRatingFixture()
	require.NoError(t, fixture.aggregates.Fold(context.Background(), 100, 1, 5))
	svc := fixture.build(cache)

	first, err := svc.FacultyRatings(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Len(t, first.Ratings, 1)

	// A fresh fold must not be visible until the cache entry expires.
	require.NoError(t, fixture.aggregates.Fold(context.Background(), 100, 1, 1))

	cached, err := svc.FacultyRatings(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Equal(t, first.Ratings[0].Ratings, cached.Ratings[0].Ratings)

	server.FastForward(2 * time.Minute)

	refreshed, err := svc.FacultyRatings(context.Background(), 7, nil)
	require.NoError(t, err)
	require.NotEqual(t, first.Ratings[0].Ratings, refreshed.Ratings[0].Ratings)
}

func TestFacultyRatingsFallsBackToLatestEndedPeriod(t *testing.T) {
	fixture := newRatingFixture()
	fixture.periods.periods = []models.FeedbackPeriod{
		{ID: 1, Name: "Fall 2025", StartDate: fixture.now.Add(-200 * 24 * time.Hour), EndDate: fixture.now.Add(-150 * 24 * time.Hour), IsActive: false},
		{ID: 2, Name: "Winter 2025", StartDate: fixture.now.Add(-100 * 24 * time.Hour), EndDate: fixture.now.Add(-50 * 24 * time.Hour), IsActive: false},
		{ID: 3, Name: "Winter 2026", StartDate: fixture.now.Add(30 * 24 * time.Hour), EndDate: fixture.now.Add(60 * 24 * time.Hour), IsActive: false},
	}
	fixture.assignments.items[0].FeedbackPeriodID = 2

	svc := fixture.build(nil)

	response, err := svc.FacultyRatings(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Equal(t, "Winter 2025", response.FeedbackPeriod.Name)
	require.Equal(t, string(models.PeriodStatusClosed), response.FeedbackPeriod.Status)
	require.Len(t, response.Ratings, 1)
}

func TestFacultyRatingsUnknownFaculty(t *testing.T) {
	fixture := newRatingFixture()
	svc := fixture.build(nil)

	_, err := svc.FacultyRatings(context.Background(), 99, nil)
	require.ErrorIs(t, err, ErrFacultyNotFound)
}

func TestFacultyRatingsUnknownPeriod(t *testing.T) {
	fixture := newRatingFixture()
	svc := fixture.build(nil)

	_, err := svc.FacultyRatings(context.Background(), 7, uintPtr(42))
	require.ErrorIs(t, err, ErrPeriodNotFound)
}
