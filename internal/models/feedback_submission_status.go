package models

import "time"

// FeedbackSubmissionStatus records that a student has completed
// feedback for a teaching assignment. The composite unique index is the
// idempotency gate: concurrent submissions for the same pair race on
// the insert and exactly one wins. Rows are never updated or deleted.
type FeedbackSubmissionStatus struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	StudentID            uint      `gorm:"not null;uniqueIndex:idx_submission_claim" json:"student_id"`
	TeachingAssignmentID uint      `gorm:"not null;uniqueIndex:idx_submission_claim" json:"teaching_assignment_id"`
	CreatedAt            time.Time `json:"created_at"`
}
