package dto

import (
	"fmt"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

// NoDataDisplay is rendered for a cell without responses. Never zero:
// "no feedback yet" and "rated zero" must not be confusable.
const NoDataDisplay = "N/A"

// ParameterRatingResponse is the aggregate view of one criterion for
// one assignment. Only count and mean are exposed; individual values
// are never stored, let alone returned.
type ParameterRatingResponse struct {
	Parameter      string `json:"parameter"`
	AverageRating  string `json:"average_rating"`
	TotalResponses int64  `json:"total_responses"`
}

// AssignmentRatingsResponse groups the five criterion aggregates for
// one teaching assignment.
type AssignmentRatingsResponse struct {
	AssignmentID uint                      `json:"assignment_id"`
	Subject      SubjectLite               `json:"subject"`
	Class        ClassLite                 `json:"class"`
	Ratings      []ParameterRatingResponse `json:"ratings"`
}

// PeriodLite summarizes a feedback period inside ratings responses.
type PeriodLite struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// FacultyRatingsResponse is the full ratings projection for one
// instructor in one period.
type FacultyRatingsResponse struct {
	Faculty        FacultyLite                 `json:"faculty"`
	FeedbackPeriod PeriodLite                  `json:"feedback_period"`
	Ratings        []AssignmentRatingsResponse `json:"ratings"`
}

// NewParameterRatingResponse renders one aggregate cell against its
// catalog entry. A missing or empty cell renders as no data.
func NewParameterRatingResponse(parameter models.RatingParameter, cell *models.AggregatedRating) ParameterRatingResponse {
	response := ParameterRatingResponse{
		Parameter:     parameter.ParameterID,
		AverageRating: NoDataDisplay,
	}

	if cell != nil && cell.HasData() {
		response.AverageRating = fmt.Sprintf("%.2f", cell.Mean())
		response.TotalResponses = cell.TotalResponses
	}

	return response
}
