package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// FeedbackPeriodFilter narrows paginated period listings.
type FeedbackPeriodFilter struct {
	Page     int
	PageSize int
}

// FeedbackPeriodRepository manages feedback period records.
type FeedbackPeriodRepository interface {
	GetByID(ctx context.Context, id uint) (models.FeedbackPeriod, error)
	FindOpenAt(ctx context.Context, now time.Time) (models.FeedbackPeriod, error)
	FindLatestEnded(ctx context.Context, now time.Time) (models.FeedbackPeriod, error)
	List(ctx context.Context, filter FeedbackPeriodFilter) ([]models.FeedbackPeriod, int64, error)
	Create(ctx context.Context, period *models.FeedbackPeriod) error
	Update(ctx context.Context, period *models.FeedbackPeriod) error
}

type feedbackPeriodRepository struct {
	db *gorm.DB
}

// NewFeedbackPeriodRepository instantiates the repository.
func NewFeedbackPeriodRepository(db *gorm.DB) FeedbackPeriodRepository {
	return &feedbackPeriodRepository{db: db}
}

func (r *feedbackPeriodRepository) GetByID(ctx context.Context, id uint) (models.FeedbackPeriod, error) {
	var period models.FeedbackPeriod
	if err := r.db.WithContext(ctx).First(&period, id).Error; err != nil {
		return models.FeedbackPeriod{}, err
	}

	return period, nil
}

// FindOpenAt returns the period whose submission window is open at the
// given instant: the date range contains now and the admin flag is set.
func (r *feedbackPeriodRepository) FindOpenAt(ctx context.Context, now time.Time) (models.FeedbackPeriod, error) {
	var period models.FeedbackPeriod
	if err := r.db.WithContext(ctx).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now).
		Where("is_active = ?", true).
		First(&period).Error; err != nil {
		return models.FeedbackPeriod{}, err
	}

	return period, nil
}

// FindLatestEnded returns the period whose window closed most
// recently. Upcoming periods never qualify; a fallback lookup between
// terms must surface last term, not an empty next one.
func (r *feedbackPeriodRepository) FindLatestEnded(ctx context.Context, now time.Time) (models.FeedbackPeriod, error) {
	var period models.FeedbackPeriod
	if err := r.db.WithContext(ctx).
		Where("end_date < ?", now).
		Order("end_date DESC").
		First(&period).Error; err != nil {
		return models.FeedbackPeriod{}, err
	}

	return period, nil
}

func (r *feedbackPeriodRepository) List(ctx context.Context, filter FeedbackPeriodFilter) ([]models.FeedbackPeriod, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeedbackPeriod{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var periods []models.FeedbackPeriod
	if err := query.Order("start_date DESC").Find(&periods).Error; err != nil {
		return nil, 0, err
	}

	return periods, total, nil
}

func (r *feedbackPeriodRepository) Create(ctx context.Context, period *models.FeedbackPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *feedbackPeriodRepository) Update(ctx context.Context, period *models.FeedbackPeriod) error {
	return r.db.WithContext(ctx).Save(period).Error
}
