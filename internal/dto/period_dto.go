package dto

import (
	"time"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// PeriodCreateRequest is the admin payload for opening a new feedback
// period. Status is never accepted from clients; it is derived.
type PeriodCreateRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=255"`
	Semester  int    `json:"semester" validate:"required,min=1,max=12"`
	Year      int    `json:"year" validate:"required,min=2000"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	IsActive  *bool  `json:"is_active"`
}

// PeriodUpdateRequest carries partial updates to a feedback period.
type PeriodUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=255"`
	Semester  *int    `json:"semester" validate:"omitempty,min=1,max=12"`
	Year      *int    `json:"year" validate:"omitempty,min=2000"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  *bool   `json:"is_active"`
}

// PeriodResponse serializes a feedback period with its derived status.
type PeriodResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Semester  int       `json:"semester"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PeriodListRequest describes pagination for period listings.
type PeriodListRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// Pagination describes the position of a page inside a listing.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PeriodListResponse is a paginated period listing.
type PeriodListResponse struct {
	Items      []PeriodResponse `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// NewPeriodResponse converts a period model into a DTO, deriving the
// lifecycle status at the given instant.
func NewPeriodResponse(model models.FeedbackPeriod, now time.Time) PeriodResponse {
	return PeriodResponse{
		ID:        model.ID,
		Name:      model.Name,
		Semester:  model.Semester,
		Year:      model.Year,
		StartDate: model.StartDate,
		EndDate:   model.EndDate,
		IsActive:  model.IsActive,
		Status:    string(model.Status(now)),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewPeriodResponseSlice converts period models into DTOs.
func NewPeriodResponseSlice(periods []models.FeedbackPeriod, now time.Time) []PeriodResponse {
	responses := make([]PeriodResponse, 0, len(periods))
	for _, period := range periods {
		responses = append(responses, NewPeriodResponse(period, now))
	}

	return responses
}
