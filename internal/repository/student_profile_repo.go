package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// StudentProfileRepository reads and reconciles student cohort links.
type StudentProfileRepository interface {
	GetByStudentID(ctx context.Context, studentID uint) (models.StudentProfile, error)
	FindResolvedPeer(ctx context.Context, profile models.StudentProfile) (models.StudentProfile, error)
	ResolveClass(ctx context.Context, profileID, classID uint) error
}

type studentProfileRepository struct {
	db *gorm.DB
}

// NewStudentProfileRepository instantiates the repository.
func NewStudentProfileRepository(db *gorm.DB) StudentProfileRepository {
	return &studentProfileRepository{db: db}
}

func (r *studentProfileRepository) GetByStudentID(ctx context.Context, studentID uint) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&profile).Error; err != nil {
		return models.StudentProfile{}, err
	}

	return profile, nil
}

// FindResolvedPeer returns the earliest-created profile in the same
// (branch, semester, section) cohort that already has a class. The
// earliest-created ordering keeps the pick deterministic when several
// peers qualify.
func (r *studentProfileRepository) FindResolvedPeer(ctx context.Context, profile models.StudentProfile) (models.StudentProfile, error) {
	var peer models.StudentProfile
	if err := r.db.WithContext(ctx).
		Where("branch = ?", profile.Branch).
		Where("semester = ?", profile.Semester).
		Where("section = ?", profile.Section).
		Where("pending_mapping = ?", false).
		Where("class_id IS NOT NULL").
		Where("id <> ?", profile.ID).
		Order("created_at ASC").
		First(&peer).Error; err != nil {
		return models.StudentProfile{}, err
	}

	return peer, nil
}

// ResolveClass binds the profile to a class and clears the pending
// flag. Restricting the update to still-pending rows keeps concurrent
// reconciliations of the same student idempotent.
func (r *studentProfileRepository) ResolveClass(ctx context.Context, profileID, classID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Where("id = ?", profileID).
		Where("pending_mapping = ?", true).
		Updates(map[string]interface{}{
			"class_id":        classID,
			"pending_mapping": false,
		}).Error
}
