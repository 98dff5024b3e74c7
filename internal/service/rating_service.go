package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/dto"
	"github.com/noah-isme/feedback-go-api/internal/models"
	"github.com/noah-isme/feedback-go-api/internal/repository"
)

// RatingService serves the aggregated ratings projection for an
// instructor. Reads hit only the aggregate cells; there is nothing
// else to read.
type RatingService interface {
	FacultyRatings(ctx context.Context, facultyID uint, periodID *uint) (dto.FacultyRatingsResponse, error)
}

type ratingService struct {
	faculty     repository.FacultyRepository
	parameters  repository.RatingParameterRepository
	periods     repository.FeedbackPeriodRepository
	assignments repository.TeachingAssignmentRepository
	aggregates  repository.AggregatedRatingRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewRatingService constructs a RatingService instance. The redis
// client may be nil to disable caching.
func NewRatingService(
	faculty repository.FacultyRepository,
	parameters repository.RatingParameterRepository,
	periods repository.FeedbackPeriodRepository,
	assignments repository.TeachingAssignmentRepository,
	aggregates repository.AggregatedRatingRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) RatingService {
	return &ratingService{
		faculty:     faculty,
		parameters:  parameters,
		periods:     periods,
		assignments: assignments,
		aggregates:  aggregates,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "rating_service").Logger(),
		now:         time.Now,
	}
}

func (s *ratingService) FacultyRatings(ctx context.Context, facultyID uint, periodID *uint) (dto.FacultyRatingsResponse, error) {
	period, err := s.resolvePeriod(ctx, periodID)
	if err != nil {
		return dto.FacultyRatingsResponse{}, err
	}

	cacheKey := fmt.Sprintf("ratings:faculty:%d:period:%d", facultyID, period.ID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.FacultyRatingsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("faculty_id", facultyID).Msg("faculty ratings cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read ratings cache")
		}
	}

	faculty, err := s.faculty.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FacultyRatingsResponse{}, ErrFacultyNotFound
		}
		return dto.FacultyRatingsResponse{}, err
	}

	assignments, err := s.assignments.ListByFacultyAndPeriod(ctx, facultyID, period.ID)
	if err != nil {
		return dto.FacultyRatingsResponse{}, err
	}

	catalog, err := s.parameters.ListActive(ctx)
	if err != nil {
		return dto.FacultyRatingsResponse{}, err
	}

	cells, err := s.aggregates.ListByAssignments(ctx, assignmentIDs(assignments))
	if err != nil {
		return dto.FacultyRatingsResponse{}, err
	}

	response := dto.FacultyRatingsResponse{
		Faculty: dto.FacultyLite{ID: faculty.ID, Name: faculty.Name},
		FeedbackPeriod: dto.PeriodLite{
			ID:     period.ID,
			Name:   period.Name,
			Status: string(period.Status(s.now())),
		},
		Ratings: buildAssignmentRatings(assignments, catalog, cells),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store ratings cache")
			}
		}
	}

	return response, nil
}

// resolvePeriod picks the requested period, the one open now, or the
// most recently ended one, in that order.
func (s *ratingService) resolvePeriod(ctx context.Context, periodID *uint) (models.FeedbackPeriod, error) {
	if periodID != nil {
		period, err := s.periods.GetByID(ctx, *periodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.FeedbackPeriod{}, ErrPeriodNotFound
			}
			return models.FeedbackPeriod{}, err
		}
		return period, nil
	}

	period, err := s.periods.FindOpenAt(ctx, s.now())
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.FeedbackPeriod{}, err
	}

	period, err = s.periods.FindLatestEnded(ctx, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FeedbackPeriod{}, ErrPeriodNotFound
		}
		return models.FeedbackPeriod{}, err
	}

	return period, nil
}

func buildAssignmentRatings(assignments []models.TeachingAssignment, catalog []models.RatingParameter, cells []models.AggregatedRating) []dto.AssignmentRatingsResponse {
	type cellKey struct {
		assignmentID uint
		parameterID  uint
	}

	index := make(map[cellKey]models.AggregatedRating, len(cells))
	for _, cell := range cells {
		index[cellKey{cell.TeachingAssignmentID, cell.RatingParameterID}] = cell
	}

	blocks := make([]dto.AssignmentRatingsResponse, 0, len(assignments))
	for _, assignment := range assignments {
		ratings := make([]dto.ParameterRatingResponse, 0, len(catalog))
		for _, parameter := range catalog {
			var cellRef *models.AggregatedRating
			if cell, ok := index[cellKey{assignment.ID, parameter.ID}]; ok {
				cellRef = &cell
			}
			ratings = append(ratings, dto.NewParameterRatingResponse(parameter, cellRef))
		}

		blocks = append(blocks, dto.AssignmentRatingsResponse{
			AssignmentID: assignment.ID,
			Subject: dto.SubjectLite{
				ID:          assignment.SubjectID,
				SubjectCode: assignment.Subject.SubjectCode,
				SubjectName: assignment.Subject.SubjectName,
			},
			Class: dto.ClassLite{
				ID:   assignment.ClassID,
				Name: assignment.Class.Name,
			},
			Ratings: ratings,
		})
	}

	return blocks
}
