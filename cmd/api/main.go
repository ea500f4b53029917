// @title Wiki Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes from English Wikipedia articles.
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "wiki-quiz/cmd/api/docs"
	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/wikipedia"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"
	"wiki-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// newApp builds the Fiber app with middleware, docs, metrics and quiz routes.
func newApp(serverCfg config.ServerConfig, quizHandler *handler.QuizHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "wiki-quiz",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		BodyLimit:    serverCfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: util.NewULID}))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(serverCfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)
	quizHandler.RegisterRoutes(app)
	return app
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewSQLXPostgresDB(ctx, cfg.GetDSN(), cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	var quizRepository domain.QuizRepository = repository.NewQuizRecordRepository(db)

	// Redis is optional: without it every lookup goes to Postgres.
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without quiz cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
			quizRepository = repository.NewCachedQuizRepository(quizRepository, cacheAdapter, cfg.Cache.QuizTTL)
			appLogger.Info("Quiz cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.Cache.QuizTTL))
		}
	}

	generator, err := quizgen.NewGeminiQuizGenerator(ctx, cfg.LLM, cfg.Quiz)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	appLogger.Info("Quiz generator initialized", zap.String("model", cfg.LLM.Model))

	pipeline := service.NewQuizPipeline(
		wikipedia.NewHTTPFetcher(cfg.Fetcher, nil),
		wikipedia.NewExtractor(),
		generator,
		cfg.Quiz.DefaultQuestions,
	)
	quizService := service.NewQuizService(quizRepository, pipeline)
	app := newApp(cfg.Server, handler.NewQuizHandler(quizService))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
