package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/dto"
	"github.com/noah-isme/feedback-go-api/internal/models"
	"github.com/noah-isme/feedback-go-api/internal/repository"
)

// PeriodService manages feedback period records for administrators.
// Lifecycle status is derived on every read; only the date range and
// the admin flag are stored.
type PeriodService interface {
	Create(ctx context.Context, payload dto.PeriodCreateRequest) (dto.PeriodResponse, error)
	Update(ctx context.Context, id uint, payload dto.PeriodUpdateRequest) (dto.PeriodResponse, error)
	Get(ctx context.Context, id uint) (dto.PeriodResponse, error)
	List(ctx context.Context, payload dto.PeriodListRequest) (dto.PeriodListResponse, error)
}

type periodService struct {
	periods   repository.FeedbackPeriodRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPeriodService constructs a PeriodService instance.
func NewPeriodService(periods repository.FeedbackPeriodRepository, validate *validator.Validate, logger zerolog.Logger) PeriodService {
	return &periodService{
		periods:   periods,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "period_service").Logger(),
		now:       time.Now,
	}
}

func (s *periodService) Create(ctx context.Context, payload dto.PeriodCreateRequest) (dto.PeriodResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PeriodResponse{}, err
	}

	name := strings.TrimSpace(s.sanitizer.Sanitize(payload.Name))
	if name == "" {
		return dto.PeriodResponse{}, errors.New("period name empty after sanitization")
	}

	startDate, err := time.Parse(time.RFC3339, payload.StartDate)
	if err != nil {
		return dto.PeriodResponse{}, errors.New("start date must be a valid RFC 3339 timestamp")
	}
	endDate, err := time.Parse(time.RFC3339, payload.EndDate)
	if err != nil {
		return dto.PeriodResponse{}, errors.New("end date must be a valid RFC 3339 timestamp")
	}
	if !endDate.After(startDate) {
		return dto.PeriodResponse{}, ErrInvalidDateRange
	}

	period := models.FeedbackPeriod{
		Name:      name,
		Semester:  payload.Semester,
		Year:      payload.Year,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if payload.IsActive != nil {
		period.IsActive = *payload.IsActive
	}

	if err := s.periods.Create(ctx, &period); err != nil {
		return dto.PeriodResponse{}, err
	}

	s.logger.Info().Uint("period_id", period.ID).Str("name", period.Name).Msg("feedback period created")

	return dto.NewPeriodResponse(period, s.now()), nil
}

func (s *periodService) Update(ctx context.Context, id uint, payload dto.PeriodUpdateRequest) (dto.PeriodResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PeriodResponse{}, err
	}

	period, err := s.periods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PeriodResponse{}, ErrPeriodNotFound
		}
		return dto.PeriodResponse{}, err
	}

	if payload.Name != nil {
		name := strings.TrimSpace(s.sanitizer.Sanitize(*payload.Name))
		if name == "" {
			return dto.PeriodResponse{}, errors.New("period name empty after sanitization")
		}
		period.Name = name
	}
	if payload.Semester != nil {
		period.Semester = *payload.Semester
	}
	if payload.Year != nil {
		period.Year = *payload.Year
	}
	if payload.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *payload.StartDate)
		if err != nil {
			return dto.PeriodResponse{}, errors.New("start date must be a valid RFC 3339 timestamp")
		}
		period.StartDate = startDate
	}
	if payload.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *payload.EndDate)
		if err != nil {
			return dto.PeriodResponse{}, errors.New("end date must be a valid RFC 3339 timestamp")
		}
		period.EndDate = endDate
	}
	if payload.IsActive != nil {
		period.IsActive = *payload.IsActive
	}

	if !period.EndDate.After(period.StartDate) {
		return dto.PeriodResponse{}, ErrInvalidDateRange
	}

	if err := s.periods.Update(ctx, &period); err != nil {
		return dto.PeriodResponse{}, err
	}

	s.logger.Info().Uint("period_id", period.ID).Bool("is_active", period.IsActive).Msg("feedback period updated")

	return dto.NewPeriodResponse(period, s.now()), nil
}

func (s *periodService) Get(ctx context.Context, id uint) (dto.PeriodResponse, error) {
	period, err := s.periods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PeriodResponse{}, ErrPeriodNotFound
		}
		return dto.PeriodResponse{}, err
	}

	return dto.NewPeriodResponse(period, s.now()), nil
}

func (s *periodService) List(ctx context.Context, payload dto.PeriodListRequest) (dto.PeriodListResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PeriodListResponse{}, err
	}

	page := payload.Page
	if page <= 0 {
		page = 1
	}
	pageSize := payload.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	periods, total, err := s.periods.List(ctx, repository.FeedbackPeriodFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return dto.PeriodListResponse{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return dto.PeriodListResponse{
		Items: dto.NewPeriodResponseSlice(periods, s.now()),
		Pagination: dto.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}
