package models

import "time"

// StudentProfile links a registered student to a cohort and, once
// resolved, to a concrete class. A profile created before its class
// exists carries PendingMapping until reconciliation copies a peer's
// class; after that the link never reverts to pending.
type StudentProfile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"not null;uniqueIndex" json:"student_id"`
	Branch         string    `gorm:"size:32;not null" json:"branch"`
	Semester       int       `gorm:"not null" json:"semester"`
	Section        string    `gorm:"size:8;not null" json:"section"`
	ClassID        *uint     `json:"class_id"`
	AdmissionYear  int       `gorm:"not null" json:"admission_year"`
	PendingMapping bool      `gorm:"not null;default:true" json:"pending_mapping"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Resolved reports whether the profile is bound to a class.
func (p StudentProfile) Resolved() bool {
	return !p.PendingMapping && p.ClassID != nil
}
