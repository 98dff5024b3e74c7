package models

import "time"

// TeachingAssignment is one (faculty, subject, class, period) tuple
// eligible for feedback. Assignment management lives in the admin
// tooling; this service only reads the table.
type TeachingAssignment struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	FacultyID        uint           `gorm:"not null;uniqueIndex:idx_teaching_assignment_tuple" json:"faculty_id"`
	SubjectID        uint           `gorm:"not null;uniqueIndex:idx_teaching_assignment_tuple" json:"subject_id"`
	ClassID          uint           `gorm:"not null;uniqueIndex:idx_teaching_assignment_tuple" json:"class_id"`
	FeedbackPeriodID uint           `gorm:"not null;uniqueIndex:idx_teaching_assignment_tuple" json:"feedback_period_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Faculty          Faculty        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"faculty"`
	Subject          Subject        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject"`
	Class            Class          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"class"`
	FeedbackPeriod   FeedbackPeriod `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"feedback_period"`
}
