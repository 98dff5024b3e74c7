package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/feedback-go-api/internal/models"
	"github.com/noah-isme/feedback-go-api/internal/repository"
)

// SeedService installs the fixed rating catalog on first boot. The
// five questions are the system-wide evaluation criteria; changing
// them after feedback exists requires a deliberate migration, so the
// seeder refuses to touch a non-empty catalog.
type SeedService interface {
	EnsureRatingCatalog(ctx context.Context) error
}

type seedService struct {
	parameters repository.RatingParameterRepository
	logger     zerolog.Logger
}

// NewSeedService constructs a SeedService instance.
func NewSeedService(parameters repository.RatingParameterRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		parameters: parameters,
		logger:     logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) EnsureRatingCatalog(ctx context.Context) error {
	count, err := s.parameters.Count(ctx)
	if err != nil {
		return err
	}

	if count == models.ActiveParameterCount {
		return nil
	}
	if count != 0 {
		return fmt.Errorf("rating catalog has %d parameters, expected 0 or %d", count, models.ActiveParameterCount)
	}

	questions := []struct {
		id   string
		text string
	}{
		{"PUNCTUALITY", "Rate the faculty's punctuality."},
		{"KNOWLEDGE", "Rate the faculty's subject knowledge."},
		{"ENGAGEMENT", "Rate the faculty's engagement with students."},
		{"CLARITY", "Rate the clarity of the faculty's explanations."},
		{"SUPPORT", "Rate the support provided by the faculty outside of class."},
	}

	catalog := make([]models.RatingParameter, 0, len(questions))
	for i, question := range questions {
		catalog = append(catalog, models.RatingParameter{
			ParameterID:  question.id,
			QuestionText: question.text,
			DisplayOrder: i + 1,
			IsActive:     true,
		})
	}

	if err := s.parameters.CreateAll(ctx, catalog); err != nil {
		return err
	}

	s.logger.Info().Int("parameters", len(catalog)).Msg("rating catalog seeded")

	return nil
}
