package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// AggregatedRatingRepository maintains the per-cell running totals.
type AggregatedRatingRepository interface {
	Fold(ctx context.Context, assignmentID, parameterID uint, value int) error
	Get(ctx context.Context, assignmentID, parameterID uint) (models.AggregatedRating, error)
	ListByAssignments(ctx context.Context, assignmentIDs []uint) ([]models.AggregatedRating, error)
}

type aggregatedRatingRepository struct {
	db *gorm.DB
}

// NewAggregatedRatingRepository instantiates the repository.
func NewAggregatedRatingRepository(db *gorm.DB) AggregatedRatingRepository {
	return &aggregatedRatingRepository{db: db}
}

// Fold adds one response value to the cell in a single upsert. The
// increment happens inside the database statement; reading the cell,
// adding in memory and writing back would lose updates under
// concurrent submissions, so it is deliberately not done that way.
func (r *aggregatedRatingRepository) Fold(ctx context.Context, assignmentID, parameterID uint, value int) error {
	cell := models.AggregatedRating{
		TeachingAssignmentID: assignmentID,
		RatingParameterID:    parameterID,
		TotalResponses:       1,
		RatingSum:            int64(value),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "teaching_assignment_id"}, {Name: "rating_parameter_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_responses": gorm.Expr("aggregated_ratings.total_responses + 1"),
				"rating_sum":      gorm.Expr("aggregated_ratings.rating_sum + ?", int64(value)),
			}),
		}).
		Create(&cell).Error
}

func (r *aggregatedRatingRepository) Get(ctx context.Context, assignmentID, parameterID uint) (models.AggregatedRating, error) {
	var cell models.AggregatedRating
	if err := r.db.WithContext(ctx).
		Where("teaching_assignment_id = ?", assignmentID).
		Where("rating_parameter_id = ?", parameterID).
		First(&cell).Error; err != nil {
		return models.AggregatedRating{}, err
	}

	return cell, nil
}

func (r *aggregatedRatingRepository) ListByAssignments(ctx context.Context, assignmentIDs []uint) ([]models.AggregatedRating, error) {
	if len(assignmentIDs) == 0 {
		return []models.AggregatedRating{}, nil
	}

	var cells []models.AggregatedRating
	if err := r.db.WithContext(ctx).
		Where("teaching_assignment_id IN ?", assignmentIDs).
		Find(&cells).Error; err != nil {
		return nil, err
	}

	return cells, nil
}
