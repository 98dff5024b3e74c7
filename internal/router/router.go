package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/feedback-go-api/internal/config"
	"github.com/noah-isme/feedback-go-api/internal/handler"
	"github.com/noah-isme/feedback-go-api/internal/middleware"
	"github.com/noah-isme/feedback-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	FeedbackHandler *handler.FeedbackHandler
	RatingHandler   *handler.RatingHandler
	PeriodHandler   *handler.PeriodHandler
	JWTMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Student surface (pending assignments, submission, status, ratings lookup)
	if deps.FeedbackHandler != nil {
		student := api.Group("/student", jwtMiddleware, middleware.RequireRole("student"))
		student.Use(middleware.RateLimit("student_feedback", 30, time.Minute))
		deps.FeedbackHandler.Register(student)

		if deps.RatingHandler != nil {
			deps.RatingHandler.RegisterStudent(student)
		}
	}

	// Faculty self-view
	if deps.RatingHandler != nil {
		faculty := api.Group("/faculty", jwtMiddleware, middleware.RequireRole("faculty"))
		deps.RatingHandler.RegisterFaculty(faculty)
	}

	// Administrative period management
	if deps.PeriodHandler != nil {
		admin := api.Group("/admin/feedback-periods", jwtMiddleware, middleware.RequireRole("admin"))
		deps.PeriodHandler.Register(admin)
	}
}
