package models

import "time"

// Subject identifies a course offering. Owned by the admin tooling.
type Subject struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectCode string    `gorm:"size:32;uniqueIndex;not null" json:"subject_code"`
	SubjectName string    `gorm:"size:255;not null" json:"subject_name"`
	Branch      string    `gorm:"size:32" json:"branch"`
	Semester    int       `json:"semester"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
