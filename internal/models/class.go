package models

import "time"

// Class is a concrete section of students. Class management is owned by
// the admin tooling; the feedback core reads it for display only.
type Class struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Branch    string    `gorm:"size:32;not null" json:"branch"`
	Semester  int       `gorm:"not null" json:"semester"`
	Section   string    `gorm:"size:8;not null" json:"section"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
