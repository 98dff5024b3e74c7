package models

import "time"

// RatingParameter is one of the five fixed evaluation questions every
// feedback submission must answer. The active set is installed once by
// the seeder and treated as immutable at runtime.
type RatingParameter struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ParameterID  string    `gorm:"size:64;uniqueIndex;not null" json:"parameter_id"`
	QuestionText string    `gorm:"size:512;not null" json:"question_text"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ActiveParameterCount is the cardinality of the rating catalog; a
// submission must cover exactly this many distinct parameters.
const ActiveParameterCount = 5

const (
	// MinRatingValue is the lowest accepted rating for a parameter.
	MinRatingValue = 1
	// MaxRatingValue is the highest accepted rating for a parameter.
	MaxRatingValue = 5
)
