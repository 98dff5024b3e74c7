package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/dto"
	"github.com/noah-isme/feedback-go-api/internal/models"
	"github.com/noah-isme/feedback-go-api/internal/observability"
	"github.com/noah-isme/feedback-go-api/internal/repository"
)

// FeedbackService orchestrates the student-facing feedback flows:
// listing pending assignments, submitting feedback and reporting
// submission progress.
type FeedbackService interface {
	PendingAssignments(ctx context.Context, studentID uint) (dto.PendingAssignmentsResponse, error)
	Submit(ctx context.Context, studentID uint, payload dto.FeedbackSubmitRequest) error
	SubmissionStatus(ctx context.Context, studentID uint, periodID *uint) (dto.SubmissionStatusResponse, error)
}

type feedbackService struct {
	parameters  repository.RatingParameterRepository
	periods     repository.FeedbackPeriodRepository
	assignments repository.TeachingAssignmentRepository
	aggregates  repository.AggregatedRatingRepository
	ledger      repository.FeedbackSubmissionRepository
	reconciler  ReconcileService
	validator   *validator.Validate
	events      *nats.Conn
	subject     string
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
	nodeID      string
}

// submissionEvent is the anonymized record published after a
// submission is acknowledged. It deliberately carries no student
// identity and no rating values.
type submissionEvent struct {
	Source       string    `json:"source"`
	AssignmentID uint      `json:"assignment_id"`
	PeriodID     uint      `json:"period_id"`
	SentAt       time.Time `json:"sent_at"`
}

// NewFeedbackService constructs a FeedbackService instance. The NATS
// connection may be nil, in which case event publishing is disabled.
func NewFeedbackService(
	parameters repository.RatingParameterRepository,
	periods repository.FeedbackPeriodRepository,
	assignments repository.TeachingAssignmentRepository,
	aggregates repository.AggregatedRatingRepository,
	ledger repository.FeedbackSubmissionRepository,
	reconciler ReconcileService,
	validate *validator.Validate,
	eventsConn *nats.Conn,
	channelBase string,
	logger zerolog.Logger,
) FeedbackService {
	subject := ""
	if channelBase != "" {
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".feedback.submitted"
	}

	return &feedbackService{
		parameters:  parameters,
		periods:     periods,
		assignments: assignments,
		aggregates:  aggregates,
		ledger:      ledger,
		reconciler:  reconciler,
		validator:   validate,
		events:      eventsConn,
		subject:     subject,
		logger:      logger.With().Str("component", "feedback_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/feedback-go-api/internal/service/feedback"),
		now:         time.Now,
		nodeID:      uuid.NewString(),
	}
}

func (s *feedbackService) PendingAssignments(ctx context.Context, studentID uint) (dto.PendingAssignmentsResponse, error) {
	profile, err := s.reconciler.Reconcile(ctx, studentID)
	if err != nil {
		return dto.PendingAssignmentsResponse{}, err
	}
	if !profile.Resolved() {
		return dto.PendingAssignmentsResponse{}, ErrClassUnresolved
	}

	period, err := s.periods.FindOpenAt(ctx, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PendingAssignmentsResponse{}, ErrPeriodNotFound
		}
		return dto.PendingAssignmentsResponse{}, err
	}

	assignments, err := s.assignments.ListByClassAndPeriod(ctx, *profile.ClassID, period.ID)
	if err != nil {
		return dto.PendingAssignmentsResponse{}, err
	}

	claimed, err := s.ledger.ListByStudentAndAssignments(ctx, studentID, assignmentIDs(assignments))
	if err != nil {
		return dto.PendingAssignmentsResponse{}, err
	}

	claimedSet := make(map[uint]struct{}, len(claimed))
	for _, record := range claimed {
		claimedSet[record.TeachingAssignmentID] = struct{}{}
	}

	pending := make([]models.TeachingAssignment, 0, len(assignments))
	for _, assignment := range assignments {
		if _, done := claimedSet[assignment.ID]; !done {
			pending = append(pending, assignment)
		}
	}

	catalog, err := s.activeCatalog(ctx)
	if err != nil {
		return dto.PendingAssignmentsResponse{}, err
	}

	return dto.PendingAssignmentsResponse{
		TeachingAssignments: dto.NewTeachingAssignmentResponseSlice(pending),
		RatingParameters:    dto.NewRatingParameterResponseSlice(catalog),
	}, nil
}

// Submit runs the submission state machine: validate, claim, fold. The
// ledger claim strictly precedes the folds so a duplicate attempt is
// rejected before any aggregate is touched; a crash between claim and
// the last fold leaves a partially folded submission that can never be
// re-folded, which is the accepted trade-off over double counting.
func (s *feedbackService) Submit(ctx context.Context, studentID uint, payload dto.FeedbackSubmitRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		observability.RejectionsTotal().WithLabelValues("validation").Inc()
		return err
	}

	spanCtx, span := s.tracer.Start(ctx, "feedback.submit", trace.WithAttributes(
		attribute.Int("feedback.assignment_id", int(payload.TeachingAssignmentID)),
	))
	defer span.End()

	profile, err := s.reconciler.Reconcile(spanCtx, studentID)
	if err != nil {
		return s.reject(span, "profile", err)
	}
	if !profile.Resolved() {
		return s.reject(span, "profile", ErrClassUnresolved)
	}

	assignment, err := s.assignments.GetByID(spanCtx, payload.TeachingAssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.reject(span, "assignment", ErrAssignmentNotFound)
		}
		return err
	}
	if assignment.ClassID != *profile.ClassID {
		return s.reject(span, "assignment", ErrAssignmentMismatch)
	}

	period, err := s.periods.GetByID(spanCtx, assignment.FeedbackPeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.reject(span, "period", ErrPeriodNotFound)
		}
		return err
	}
	if !period.WindowOpen(s.now()) {
		return s.reject(span, "period", ErrPeriodClosed)
	}

	catalog, err := s.activeCatalog(spanCtx)
	if err != nil {
		return err
	}
	if err := coversCatalog(payload.Ratings, catalog); err != nil {
		return s.reject(span, "coverage", err)
	}

	if err := s.ledger.Claim(spanCtx, studentID, assignment.ID); err != nil {
		if errors.Is(err, repository.ErrAlreadyClaimed) {
			return s.reject(span, "duplicate", ErrDuplicateSubmission)
		}
		return err
	}

	foldStart := time.Now()
	for _, rating := range payload.Ratings {
		if err := s.aggregates.Fold(spanCtx, assignment.ID, rating.RatingParameterID, rating.Value); err != nil {
			// The claim already landed, so this submission can never be
			// retried into double counting; log loudly and surface.
			s.logger.Error().Err(err).
				Uint("assignment_id", assignment.ID).
				Uint("parameter_id", rating.RatingParameterID).
				Msg("fold failed after claim; aggregates are partial for this submission")
			span.RecordError(err)
			return err
		}
	}
	observability.FoldDuration().Observe(time.Since(foldStart).Seconds())
	observability.SubmissionsTotal().Inc()

	s.publishSubmitted(assignment.ID, period.ID)

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Uint("period_id", period.ID).
		Msg("feedback submission acknowledged")

	return nil
}

func (s *feedbackService) SubmissionStatus(ctx context.Context, studentID uint, periodID *uint) (dto.SubmissionStatusResponse, error) {
	profile, err := s.reconciler.Reconcile(ctx, studentID)
	if err != nil {
		return dto.SubmissionStatusResponse{}, err
	}
	if !profile.Resolved() {
		return dto.SubmissionStatusResponse{}, ErrClassUnresolved
	}

	var period models.FeedbackPeriod
	if periodID != nil {
		period, err = s.periods.GetByID(ctx, *periodID)
	} else {
		period, err = s.periods.FindOpenAt(ctx, s.now())
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionStatusResponse{}, ErrPeriodNotFound
		}
		return dto.SubmissionStatusResponse{}, err
	}

	assignments, err := s.assignments.ListByClassAndPeriod(ctx, *profile.ClassID, period.ID)
	if err != nil {
		return dto.SubmissionStatusResponse{}, err
	}

	claimed, err := s.ledger.ListByStudentAndAssignments(ctx, studentID, assignmentIDs(assignments))
	if err != nil {
		return dto.SubmissionStatusResponse{}, err
	}

	submitted := make([]uint, 0, len(claimed))
	for _, record := range claimed {
		submitted = append(submitted, record.TeachingAssignmentID)
	}

	return dto.SubmissionStatusResponse{
		FeedbackPeriod:   period.Name,
		TotalAssignments: len(assignments),
		SubmittedCount:   len(claimed),
		PendingCount:     len(assignments) - len(claimed),
		Submitted:        submitted,
	}, nil
}

// activeCatalog loads the five active parameters and refuses to operate
// on a catalog of any other size.
func (s *feedbackService) activeCatalog(ctx context.Context) ([]models.RatingParameter, error) {
	catalog, err := s.parameters.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) != models.ActiveParameterCount {
		return nil, fmt.Errorf("expected %d active rating parameters, found %d", models.ActiveParameterCount, len(catalog))
	}

	return catalog, nil
}

func (s *feedbackService) reject(span trace.Span, reason string, err error) error {
	observability.RejectionsTotal().WithLabelValues(reason).Inc()
	span.SetAttributes(attribute.String("feedback.reject_reason", reason))
	return err
}

func (s *feedbackService) publishSubmitted(assignmentID, periodID uint) {
	if s.events == nil || s.subject == "" {
		return
	}

	payload, err := json.Marshal(submissionEvent{
		Source:       s.nodeID,
		AssignmentID: assignmentID,
		PeriodID:     periodID,
		SentAt:       time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := s.events.Publish(s.subject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish submission event")
	}
}

// coversCatalog checks the all-or-nothing criterion rule: one rating
// per active parameter, no duplicates, no unknown ids.
func coversCatalog(ratings []dto.RatingEntry, catalog []models.RatingParameter) error {
	if len(ratings) != len(catalog) {
		return ErrIncompleteRatings
	}

	known := make(map[uint]struct{}, len(catalog))
	for _, parameter := range catalog {
		known[parameter.ID] = struct{}{}
	}

	seen := make(map[uint]struct{}, len(ratings))
	for _, rating := range ratings {
		if _, ok := known[rating.RatingParameterID]; !ok {
			return ErrIncompleteRatings
		}
		if _, dup := seen[rating.RatingParameterID]; dup {
			return ErrIncompleteRatings
		}
		seen[rating.RatingParameterID] = struct{}{}
	}

	return nil
}

func assignmentIDs(assignments []models.TeachingAssignment) []uint {
	ids := make([]uint, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.ID)
	}

	return ids
}
