package models

import "time"

// PeriodStatus is derived from the period's date range; it is never
// persisted so stored state cannot drift from wall-clock reality.
type PeriodStatus string

const (
	// PeriodStatusUpcoming means the window has not started yet.
	PeriodStatusUpcoming PeriodStatus = "upcoming"
	// PeriodStatusActive means now falls inside the date range.
	PeriodStatusActive PeriodStatus = "active"
	// PeriodStatusClosed means the window has ended.
	PeriodStatusClosed PeriodStatus = "closed"
)

// FeedbackPeriod bounds when feedback may be recorded. IsActive is an
// administrative override that can shut the window early even while the
// date range still reads active.
type FeedbackPeriod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Semester  int       `gorm:"not null" json:"semester"`
	Year      int       `gorm:"not null" json:"year"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	IsActive  bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status reports the lifecycle phase of the period at the given
// instant. Both boundaries are inclusive of active.
func (p FeedbackPeriod) Status(now time.Time) PeriodStatus {
	if now.Before(p.StartDate) {
		return PeriodStatusUpcoming
	}
	if now.After(p.EndDate) {
		return PeriodStatusClosed
	}
	return PeriodStatusActive
}

// WindowOpen reports whether submissions are accepted at the given
// instant: the date range must read active AND the admin flag must be
// set. Either signal alone is not enough.
func (p FeedbackPeriod) WindowOpen(now time.Time) bool {
	return p.Status(now) == PeriodStatusActive && p.IsActive
}
