package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// TeachingAssignmentRepository reads teaching assignments; the tuples
// themselves are managed by the admin tooling.
type TeachingAssignmentRepository interface {
	GetByID(ctx context.Context, id uint) (models.TeachingAssignment, error)
	ListByClassAndPeriod(ctx context.Context, classID, periodID uint) ([]models.TeachingAssignment, error)
	ListByFacultyAndPeriod(ctx context.Context, facultyID, periodID uint) ([]models.TeachingAssignment, error)
}

type teachingAssignmentRepository struct {
	db *gorm.DB
}

// NewTeachingAssignmentRepository instantiates the repository.
func NewTeachingAssignmentRepository(db *gorm.DB) TeachingAssignmentRepository {
	return &teachingAssignmentRepository{db: db}
}

func (r *teachingAssignmentRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.TeachingAssignment{}).
		Preload("Faculty").
		Preload("Subject").
		Preload("Class")
}

func (r *teachingAssignmentRepository) GetByID(ctx context.Context, id uint) (models.TeachingAssignment, error) {
	var assignment models.TeachingAssignment
	if err := r.baseQuery(ctx).First(&assignment, id).Error; err != nil {
		return models.TeachingAssignment{}, err
	}

	return assignment, nil
}

func (r *teachingAssignmentRepository) ListByClassAndPeriod(ctx context.Context, classID, periodID uint) ([]models.TeachingAssignment, error) {
	var assignments []models.TeachingAssignment
	if err := r.baseQuery(ctx).
		Where("class_id = ?", classID).
		Where("feedback_period_id = ?", periodID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *teachingAssignmentRepository) ListByFacultyAndPeriod(ctx context.Context, facultyID, periodID uint) ([]models.TeachingAssignment, error) {
	var assignments []models.TeachingAssignment
	if err := r.baseQuery(ctx).
		Where("faculty_id = ?", facultyID).
		Where("feedback_period_id = ?", periodID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}
