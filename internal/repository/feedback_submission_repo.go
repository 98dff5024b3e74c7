package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// ErrAlreadyClaimed is returned by Claim when the (student, assignment)
// pair has already been recorded. It is the expected outcome of a
// duplicate submission attempt, not a failure.
var ErrAlreadyClaimed = errors.New("feedback already claimed for this assignment")

// FeedbackSubmissionRepository is the idempotency ledger for completed
// submissions.
type FeedbackSubmissionRepository interface {
	Claim(ctx context.Context, studentID, assignmentID uint) error
	ListByStudentAndAssignments(ctx context.Context, studentID uint, assignmentIDs []uint) ([]models.FeedbackSubmissionStatus, error)
}

type feedbackSubmissionRepository struct {
	db *gorm.DB
}

// NewFeedbackSubmissionRepository instantiates the repository.
func NewFeedbackSubmissionRepository(db *gorm.DB) FeedbackSubmissionRepository {
	return &feedbackSubmissionRepository{db: db}
}

// Claim inserts the ledger row for the pair. The composite unique index
// on (student_id, teaching_assignment_id) makes the insert the
// synchronization point: concurrent claims race at the database and
// exactly one succeeds.
func (r *feedbackSubmissionRepository) Claim(ctx context.Context, studentID, assignmentID uint) error {
	record := models.FeedbackSubmissionStatus{
		StudentID:            studentID,
		TeachingAssignmentID: assignmentID,
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyClaimed
		}
		return err
	}

	return nil
}

func (r *feedbackSubmissionRepository) ListByStudentAndAssignments(ctx context.Context, studentID uint, assignmentIDs []uint) ([]models.FeedbackSubmissionStatus, error) {
	if len(assignmentIDs) == 0 {
		return []models.FeedbackSubmissionStatus{}, nil
	}

	var records []models.FeedbackSubmissionStatus
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("teaching_assignment_id IN ?", assignmentIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
