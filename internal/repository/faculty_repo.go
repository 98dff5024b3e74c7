package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// FacultyRepository reads instructor records owned by the user service.
type FacultyRepository interface {
	GetByID(ctx context.Context, id uint) (models.Faculty, error)
}

type facultyRepository struct {
	db *gorm.DB
}

// NewFacultyRepository instantiates the repository.
func NewFacultyRepository(db *gorm.DB) FacultyRepository {
	return &facultyRepository{db: db}
}

func (r *facultyRepository) GetByID(ctx context.Context, id uint) (models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return models.Faculty{}, err
	}

	return faculty, nil
}
