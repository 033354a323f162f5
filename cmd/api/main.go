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
	"github.com/rs/zerolog"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/config"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/database"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/handler"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/middleware"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/repository"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/router"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/service"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/pkg/judge"
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

	if err := db.AutoMigrate(&models.Test{}, &models.MCQQuestion{}, &models.MCQOption{}, &models.CodingQuestion{}, &models.TestCase{}, &models.CodingSubmission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	judgeClient, err := judge.New(judge.Config{
		Host:    cfg.JudgeHost,
		APIKey:  cfg.JudgeAPIKey,
		Timeout: cfg.JudgeTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create judge client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	testRepo := repository.NewTestRepository(db)
	authoringRepo := repository.NewAuthoringRepository(db)
	questionRepo := repository.NewCodingQuestionRepository(db)
	submissionRepo := repository.NewCodingSubmissionRepository(db)

	testService := service.NewTestService(testRepo, redisClient, cfg.TestCacheTTL, validate, logger)
	authoringService := service.NewAuthoringService(authoringRepo, testRepo, redisClient, validate, logger)
	gradingService := service.NewGradingService(questionRepo, submissionRepo, judgeClient, validate, logger)

	testHandler := handler.NewTestHandler(testService, validate, logger)
	questionHandler := handler.NewQuestionHandler(authoringService, validate, logger)
	submissionHandler := handler.NewSubmissionHandler(gradingService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		TestHandler:       testHandler,
		QuestionHandler:   questionHandler,
		SubmissionHandler: submissionHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
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
