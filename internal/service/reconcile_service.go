package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
	"github.com/noah-isme/feedback-go-api/internal/observability"
	"github.com/noah-isme/feedback-go-api/internal/repository"
)

// ReconcileService resolves pending student-to-class mappings by
// copying the class of an already-resolved cohort peer. It runs at
// cheap integration points (the start of student feedback requests)
// rather than as a scheduled job, and converges over repeated calls:
// no peer yet means try again next time.
type ReconcileService interface {
	Reconcile(ctx context.Context, studentID uint) (models.StudentProfile, error)
}

type reconcileService struct {
	profiles repository.StudentProfileRepository
	logger   zerolog.Logger
}

// NewReconcileService constructs a ReconcileService instance.
func NewReconcileService(profiles repository.StudentProfileRepository, logger zerolog.Logger) ReconcileService {
	return &reconcileService{
		profiles: profiles,
		logger:   logger.With().Str("component", "reconcile_service").Logger(),
	}
}

// Reconcile returns the student's profile, resolving its class first if
// the mapping is still pending and a resolved peer exists. It does not
// validate the peer's assignment; a cohort is expected to share one
// class by construction upstream.
func (s *reconcileService) Reconcile(ctx context.Context, studentID uint) (models.StudentProfile, error) {
	profile, err := s.profiles.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudentProfile{}, ErrStudentProfileNotFound
		}
		return models.StudentProfile{}, err
	}

	if !profile.PendingMapping {
		return profile, nil
	}

	peer, err := s.profiles.FindResolvedPeer(ctx, profile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No resolved peer yet; stay pending and retry later.
			return profile, nil
		}
		return models.StudentProfile{}, err
	}

	if err := s.profiles.ResolveClass(ctx, profile.ID, *peer.ClassID); err != nil {
		return models.StudentProfile{}, err
	}

	profile.ClassID = peer.ClassID
	profile.PendingMapping = false
	observability.ReconciliationsResolved().Inc()

	s.logger.Info().
		Uint("student_id", studentID).
		Uint("class_id", *peer.ClassID).
		Str("branch", profile.Branch).
		Int("semester", profile.Semester).
		Str("section", profile.Section).
		Msg("pending class mapping resolved from cohort peer")

	return profile, nil
}
