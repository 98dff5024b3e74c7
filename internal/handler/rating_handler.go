package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/feedback-go-api/internal/service"
	"github.com/noah-isme/feedback-go-api/internal/utils"
)

// RatingHandler serves the aggregated ratings projections.
type RatingHandler struct {
	ratings service.RatingService
	logger  zerolog.Logger
}

// NewRatingHandler builds a rating handler instance.
func NewRatingHandler(ratings service.RatingService, logger zerolog.Logger) *RatingHandler {
	return &RatingHandler{
		ratings: ratings,
		logger:  logger.With().Str("component", "rating_handler").Logger(),
	}
}

// RegisterStudent attaches the ratings lookup available to students.
func (h *RatingHandler) RegisterStudent(router fiber.Router) {
	router.Get("/faculty-ratings/:facultyId", h.facultyRatings)
}

// RegisterFaculty attaches the self-view for instructors.
func (h *RatingHandler) RegisterFaculty(router fiber.Router) {
	router.Get("/ratings", h.ownRatings)
}

func (h *RatingHandler) facultyRatings(c *fiber.Ctx) error {
	facultyID, err := parseUintParam(c, "facultyId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	return h.respond(c, facultyID)
}

func (h *RatingHandler) ownRatings(c *fiber.Ctx) error {
	facultyID, ok := currentUserID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "faculty identity missing")
	}

	return h.respond(c, facultyID)
}

func (h *RatingHandler) respond(c *fiber.Ctx, facultyID uint) error {
	periodID, err := parseQueryUint(c, "period_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.ratings.FacultyRatings(c.Context(), facultyID, periodID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "faculty ratings retrieved", response)
}

func (h *RatingHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFacultyNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPeriodNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
