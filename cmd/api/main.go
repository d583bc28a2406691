package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/handlers"
	applog "alfredoptarigan/resume-reviewer/internal/logger"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
	"alfredoptarigan/resume-reviewer/internal/views"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	applog.Init(applog.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info().Msg("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	// Initialize repositories
	evalRepo := repositories.NewEvaluationRepository(db)
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Redis unreachable, lookups will fall back to the database")
		}
		evalRepo = repositories.NewCachedEvaluationRepository(evalRepo, rdb, cfg.Redis.TTL)
		log.Info().Msg("✅ Redis cache enabled")
	}
	log.Info().Msg("✅ Repositories initialized successfully")

	// Initialize services
	storageService, err := services.NewStorageService(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize upload storage")
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}
	log.Info().Str("model", geminiService.Model()).Msg("✅ Gemini AI initialized successfully")

	evaluatorService := services.NewEvaluatorService(geminiService, services.NewMarkdownRenderer(), services.EvaluatorOptions{
		CallTimeout:       cfg.Gemini.Timeout,
		MaxRetries:        cfg.Generation.RetryMaxAttempts,
		RetryInitialDelay: cfg.Generation.RetryInitialDelay,
		MaxConcurrent:     cfg.Generation.MaxConcurrent,
		Parallel:          cfg.Generation.Parallel,
	})
	submissionService := services.NewSubmissionService(evaluatorService, storageService, evalRepo)
	log.Info().Msg("✅ Services initialized successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		services.NewExtractorService(),
		submissionService,
		cfg.Storage.MaxFileSize,
	)
	resultHandler := handlers.NewResultHandler(evalRepo)
	log.Info().Msg("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Reviewer",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		Views:        views.NewEngine(),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, uploadHandler, resultHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}
