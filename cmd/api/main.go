package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/feedback-go-api/internal/config"
	"github.com/noah-isme/feedback-go-api/internal/database"
	"github.com/noah-isme/feedback-go-api/internal/handler"
	"github.com/noah-isme/feedback-go-api/internal/middleware"
	"github.com/noah-isme/feedback-go-api/internal/models"
	"github.com/noah-isme/feedback-go-api/internal/repository"
	"github.com/noah-isme/feedback-go-api/internal/router"
	"github.com/noah-isme/feedback-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.RatingParameter{},
		&models.FeedbackPeriod{},
		&models.Class{},
		&models.Subject{},
		&models.Faculty{},
		&models.StudentProfile{},
		&models.TeachingAssignment{},
		&models.FeedbackSubmissionStatus{},
		&models.AggregatedRating{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var eventsConn *nats.Conn
	if cfg.NATSURL != "" {
		eventsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("event publishing disabled, nats unreachable")
			eventsConn = nil
		} else {
			defer eventsConn.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	parameterRepo := repository.NewRatingParameterRepository(db)
	periodRepo := repository.NewFeedbackPeriodRepository(db)
	assignmentRepo := repository.NewTeachingAssignmentRepository(db)
	aggregateRepo := repository.NewAggregatedRatingRepository(db)
	ledgerRepo := repository.NewFeedbackSubmissionRepository(db)
	profileRepo := repository.NewStudentProfileRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)

	seedService := service.NewSeedService(parameterRepo, logger)
	if err := seedService.EnsureRatingCatalog(context.Background()); err != nil {
		log.Fatalf("failed to seed rating catalog: %v", err)
	}

	reconcileService := service.NewReconcileService(profileRepo, logger)
	feedbackService := service.NewFeedbackService(
		parameterRepo, periodRepo, assignmentRepo, aggregateRepo, ledgerRepo,
		reconcileService, validate, eventsConn, cfg.EventChannel, logger,
	)
	ratingService := service.NewRatingService(
		facultyRepo, parameterRepo, periodRepo, assignmentRepo, aggregateRepo,
		redisClient, cfg.RatingsCacheTTL, logger,
	)
	periodService := service.NewPeriodService(periodRepo, validate, logger)

	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	ratingHandler := handler.NewRatingHandler(ratingService, logger)
	periodHandler := handler.NewPeriodHandler(periodService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		FeedbackHandler: feedbackHandler,
		RatingHandler:   ratingHandler,
		PeriodHandler:   periodHandler,
		JWTMiddleware:   middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
