package service

import "errors"

// Sentinel errors surfaced by the feedback services. None of these are
// transient: every one is a definitive answer the caller must act on,
// never retried automatically.
var (
	// ErrStudentProfileNotFound indicates the student has no cohort profile.
	ErrStudentProfileNotFound = errors.New("student profile not found")
	// ErrClassUnresolved indicates the student's class mapping is still pending.
	ErrClassUnresolved = errors.New("student class mapping is still pending")
	// ErrAssignmentNotFound indicates an unknown teaching assignment.
	ErrAssignmentNotFound = errors.New("teaching assignment not found")
	// ErrAssignmentMismatch indicates the assignment does not belong to the student's class.
	ErrAssignmentMismatch = errors.New("teaching assignment does not belong to this student's class")
	// ErrPeriodNotFound indicates no feedback period matched the request.
	ErrPeriodNotFound = errors.New("feedback period not found")
	// ErrPeriodClosed indicates the submission window is not open.
	ErrPeriodClosed = errors.New("feedback period is not accepting submissions")
	// ErrDuplicateSubmission indicates feedback was already submitted for the pair.
	ErrDuplicateSubmission = errors.New("feedback already submitted for this assignment")
	// ErrIncompleteRatings indicates the ratings do not cover the catalog exactly once each.
	ErrIncompleteRatings = errors.New("ratings must include exactly one entry for each rating parameter")
	// ErrFacultyNotFound indicates an unknown instructor.
	ErrFacultyNotFound = errors.New("faculty member not found")
	// ErrInvalidDateRange indicates a period whose end does not follow its start.
	ErrInvalidDateRange = errors.New("end date must be after start date")
)
