package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// RatingParameterRepository reads the fixed evaluation catalog.
type RatingParameterRepository interface {
	ListActive(ctx context.Context) ([]models.RatingParameter, error)
	Count(ctx context.Context) (int64, error)
	CreateAll(ctx context.Context, parameters []models.RatingParameter) error
}

type ratingParameterRepository struct {
	db *gorm.DB
}

// NewRatingParameterRepository instantiates the repository.
func NewRatingParameterRepository(db *gorm.DB) RatingParameterRepository {
	return &ratingParameterRepository{db: db}
}

func (r *ratingParameterRepository) ListActive(ctx context.Context) ([]models.RatingParameter, error) {
	var parameters []models.RatingParameter
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&parameters).Error; err != nil {
		return nil, err
	}

	return parameters, nil
}

func (r *ratingParameterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RatingParameter{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ratingParameterRepository) CreateAll(ctx context.Context, parameters []models.RatingParameter) error {
	return r.db.WithContext(ctx).Create(&parameters).Error
}
