package dto

import (
	"github.com/noah-isme/feedback-go-api/internal/models"
)

// RatingEntry is one criterion score inside a submission.
type RatingEntry struct {
	RatingParameterID uint `json:"rating_parameter_id" validate:"required,gt=0"`
	Value             int  `json:"value" validate:"required,min=1,max=5"`
}

// FeedbackSubmitRequest is the payload for submitting feedback on a
// teaching assignment. All five catalog parameters must be covered.
type FeedbackSubmitRequest struct {
	TeachingAssignmentID uint          `json:"teaching_assignment_id" validate:"required,gt=0"`
	Ratings              []RatingEntry `json:"ratings" validate:"required,len=5,dive"`
}

// RatingParameterResponse serializes a catalog entry for clients.
type RatingParameterResponse struct {
	ID           uint   `json:"id"`
	ParameterID  string `json:"parameter_id"`
	QuestionText string `json:"question_text"`
	DisplayOrder int    `json:"display_order"`
}

// TeachingAssignmentResponse summarizes an assignment a student can
// still provide feedback on.
type TeachingAssignmentResponse struct {
	ID             uint        `json:"id"`
	Faculty        FacultyLite `json:"faculty"`
	Subject        SubjectLite `json:"subject"`
	Class          ClassLite   `json:"class"`
	FeedbackPeriod uint        `json:"feedback_period_id"`
}

// PendingAssignmentsResponse lists the assignments awaiting feedback
// plus the catalog the form must render.
type PendingAssignmentsResponse struct {
	TeachingAssignments []TeachingAssignmentResponse `json:"teaching_assignments"`
	RatingParameters    []RatingParameterResponse    `json:"rating_parameters"`
}

// SubmissionStatusResponse reports a student's progress for a period.
type SubmissionStatusResponse struct {
	FeedbackPeriod   string `json:"feedback_period"`
	TotalAssignments int    `json:"total_assignments"`
	SubmittedCount   int    `json:"submitted_count"`
	PendingCount     int    `json:"pending_count"`
	Submitted        []uint `json:"submitted"`
}

// FacultyLite summarizes an instructor without profile details.
type FacultyLite struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SubjectLite summarizes a subject for display.
type SubjectLite struct {
	ID          uint   `json:"id"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
}

// ClassLite summarizes a class for display.
type ClassLite struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewRatingParameterResponse converts a catalog model into a DTO.
func NewRatingParameterResponse(model models.RatingParameter) RatingParameterResponse {
	return RatingParameterResponse{
		ID:           model.ID,
		ParameterID:  model.ParameterID,
		QuestionText: model.QuestionText,
		DisplayOrder: model.DisplayOrder,
	}
}

// NewRatingParameterResponseSlice converts catalog models into DTOs.
func NewRatingParameterResponseSlice(parameters []models.RatingParameter) []RatingParameterResponse {
	responses := make([]RatingParameterResponse, 0, len(parameters))
	for _, parameter := range parameters {
		responses = append(responses, NewRatingParameterResponse(parameter))
	}

	return responses
}

// NewTeachingAssignmentResponse converts an assignment model into a DTO.
func NewTeachingAssignmentResponse(model models.TeachingAssignment) TeachingAssignmentResponse {
	return TeachingAssignmentResponse{
		ID: model.ID,
		Faculty: FacultyLite{
			ID:   model.FacultyID,
			Name: model.Faculty.Name,
		},
		Subject: SubjectLite{
			ID:          model.SubjectID,
			SubjectCode: model.Subject.SubjectCode,
			SubjectName: model.Subject.SubjectName,
		},
		Class: ClassLite{
			ID:   model.ClassID,
			Name: model.Class.Name,
		},
		FeedbackPeriod: model.FeedbackPeriodID,
	}
}

// NewTeachingAssignmentResponseSlice converts assignment models into DTOs.
func NewTeachingAssignmentResponseSlice(assignments []models.TeachingAssignment) []TeachingAssignmentResponse {
	responses := make([]TeachingAssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewTeachingAssignmentResponse(assignment))
	}

	return responses
}
